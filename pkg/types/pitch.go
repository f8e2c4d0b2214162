// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ScanStatus indicates whether usable text was obtained from a deck.
// Field-level misses do not change the status; only a missing or empty
// text layer marks a deck as failed.
type ScanStatus string

const (
	ScanSuccess ScanStatus = "success"
	ScanFailed  ScanStatus = "extraction_failed"
)

// UnknownCompany is the sentinel company name stored when no name pattern
// matches, and for decks whose text could not be acquired.
const UnknownCompany = "Unknown"

// PitchRecord holds the structured facts extracted from one pitch deck.
// A record is assembled in a single pass and never mutated afterward.
type PitchRecord struct {
	// DeckID is a slug derived from the deck filename (e.g. "acme-seed-2026").
	DeckID string `json:"deck_id" yaml:"deck_id"`

	// CompanyName is the best-guess legal or brand name, or UnknownCompany
	// when no pattern matched.
	CompanyName string `json:"company_name" yaml:"company_name"`

	// FundingSought lists every funding figure mentioned in the deck, in
	// order of appearance, normalized to millions of currency units. Nil
	// when no figure was found.
	FundingSought []float64 `json:"funding_sought,omitempty" yaml:"funding_sought,omitempty"`

	// Valuation is the first valuation mention, normalized to millions.
	// Nil when no mention was found.
	Valuation *float64 `json:"valuation,omitempty" yaml:"valuation,omitempty"`

	// Founders lists name+title matches from the team section, in order of
	// appearance. Duplicates are kept; nil when no team section was found.
	Founders []string `json:"founders,omitempty" yaml:"founders,omitempty"`

	// MarketSizeBillions is the first market-size mention, normalized to
	// billions. Nil when no mention was found.
	MarketSizeBillions *float64 `json:"market_size_billions,omitempty" yaml:"market_size_billions,omitempty"`

	// Status reports whether the deck yielded usable text.
	Status ScanStatus `json:"status" yaml:"status"`

	// PDFPath is the local filesystem path to the source deck.
	PDFPath string `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`

	// ScannedAt is when the deck was processed.
	ScannedAt time.Time `json:"scanned_at,omitempty" yaml:"scanned_at,omitempty"`
}
