package types

// TextBackend identifies the tool used to pull the text layer out of a deck.
type TextBackend string

const (
	BackendPdftotext  TextBackend = "pdftotext"
	BackendMarkitdown TextBackend = "markitdown"
)

// ScanConfig holds settings for the scan stage.
type ScanConfig struct {
	// Backend selects the text extraction tool: pdftotext or markitdown.
	Backend TextBackend `json:"backend" yaml:"backend"`

	// PdftotextBin is the pdftotext binary name or path (default "pdftotext").
	PdftotextBin string `json:"pdftotext_bin,omitempty" yaml:"pdftotext_bin,omitempty"`

	// DecksDir is the base directory for decks (contains raw/, records/, index/).
	DecksDir string `json:"decks_dir" yaml:"decks_dir"`
}

// StoreConfig holds settings for the record store stage.
type StoreConfig struct {
	// DecksDir is the base directory for decks (contains records/, index/).
	DecksDir string `json:"decks_dir" yaml:"decks_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ExportFormat selects the export output format.
type ExportFormat string

const (
	ExportYAML ExportFormat = "yaml"
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Scan  ScanConfig  `json:"scan" yaml:"scan"`
	Store StoreConfig `json:"store" yaml:"store"`
}
