package fields

import (
	"reflect"
	"testing"

	"github.com/pdiddy/pitch-engine/pkg/types"
)

// --- CompanyName ---

func TestCompanyName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "about cue",
			text: "About Acme Corp.\nWe build rockets.",
			want: "Acme Corp",
		},
		{
			name: "company label cue",
			text: "Company: DataForge Inc.\nSeries A overview.",
			want: "DataForge Inc",
		},
		{
			name: "about us cue",
			text: "About Us: Brightside Co.",
			want: "Brightside Co",
		},
		{
			name: "deck title form",
			text: "Beta Inc Pitch Deck",
			want: "Beta Inc",
		},
		{
			name: "presentation title form",
			text: "Helios Energy Corp Presentation",
			want: "Helios Energy Corp",
		},
		{
			name: "label cue beats deck title regardless of order",
			text: "Beta Inc Pitch Deck\nPrepared for investors.\nAbout Acme Corp.\nWe build rockets.",
			want: "Acme Corp",
		},
		{
			name: "no recognizable cue",
			text: "we are a tiny startup with no recognizable cues at all.",
			want: "",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompanyName(tt.text); got != tt.want {
				t.Errorf("CompanyName(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

// --- FundingAmounts ---

func TestFundingAmounts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []float64
	}{
		{
			name: "thousands normalize to millions",
			text: "We are seeking $500K to get started.",
			want: []float64{0.5},
		},
		{
			name: "millions pass through",
			text: "We are raising $2.5M this round.",
			want: []float64{2.5},
		},
		{
			name: "multiple mentions preserved in order",
			text: "We raised $1M last year, now raising $5M.",
			want: []float64{1, 5},
		},
		{
			name: "lowercase k",
			text: "investment of 750k",
			want: []float64{0.75},
		},
		{
			name: "word form thousand",
			text: "funding of $250 thousand to date",
			want: []float64{0.25},
		},
		{
			name: "MM unit",
			text: "looking for $3MM",
			want: []float64{3},
		},
		{
			name: "lead-in containing k does not trigger thousands branch",
			text: "looking for $5M",
			want: []float64{5},
		},
		{
			name: "bare figure without lead-in",
			text: "Use of funds: $10M for engineering.",
			want: []float64{10},
		},
		{
			name: "no figures",
			text: "We are bootstrapped and proud of it.",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FundingAmounts(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FundingAmounts(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// --- Valuation ---

func TestValuation(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   float64
		wantOK bool
	}{
		{
			name:   "billions scale to millions",
			text:   "The company is valued at $1.2 billion.",
			want:   1200,
			wantOK: true,
		},
		{
			name:   "millions pass through",
			text:   "Pre-money valuation of $10M.",
			want:   10,
			wantOK: true,
		},
		{
			name:   "worth cue",
			text:   "Analysts say the business is worth $2B today.",
			want:   2000,
			wantOK: true,
		},
		{
			name:   "cue and amount on different lines",
			text:   "Valuation\n(post round)\n$150 Million",
			want:   150,
			wantOK: true,
		},
		{
			name:   "first mention wins",
			text:   "valued at $5M in 2024, now worth $9B",
			want:   5,
			wantOK: true,
		},
		{
			name:   "amount without cue ignored",
			text:   "We spent $3M on servers.",
			wantOK: false,
		},
		{
			name:   "no mention",
			text:   "Numbers available on request.",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Valuation(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Valuation(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Valuation(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// --- Founders ---

func TestFounders(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "names inside bounded team section",
			text: "Team\nJane Smith, CEO\nBob Lee, CTO\nMarket\nOur market is huge",
			want: []string{"Jane Smith", "Bob Lee"},
		},
		{
			name: "name after section end excluded",
			text: "Team\nJane Smith, CEO\nMarket\nTom Jones, CTO",
			want: []string{"Jane Smith"},
		},
		{
			name: "three-word name",
			text: "Founders\nMary Jane Watson, CEO\nTraction",
			want: []string{"Mary Jane Watson"},
		},
		{
			name: "co-founder title",
			text: "Management\nAda King, Co-Founder\nFinancials",
			want: []string{"Ada King"},
		},
		{
			name: "duplicates kept",
			text: "Team\nJane Smith, CEO\nJane Smith, Founder\nProduct",
			want: []string{"Jane Smith", "Jane Smith"},
		},
		{
			name: "no team section",
			text: "Jane Smith, CEO built this alone.",
			want: nil,
		},
		{
			name: "unbounded section",
			text: "Team\nJane Smith, CEO and that is the whole slide",
			want: nil,
		},
		{
			name: "section with no name-title pairs",
			text: "Team\nhiring in progress\nProduct",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Founders(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Founders(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// --- MarketSize ---

func TestMarketSize(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   float64
		wantOK bool
	}{
		{
			name:   "trillions scale to billions",
			text:   "TAM of $3 trillion",
			want:   3000,
			wantOK: true,
		},
		{
			name:   "billions pass through",
			text:   "Market Size: $50B",
			want:   50,
			wantOK: true,
		},
		{
			name:   "long form cue",
			text:   "Total Addressable Market of $1.5 Billion",
			want:   1.5,
			wantOK: true,
		},
		{
			name:   "market opportunity cue across lines",
			text:   "Market Opportunity\ngrowing fast\n$12B by 2030",
			want:   12,
			wantOK: true,
		},
		{
			name:   "no cue",
			text:   "$4B in sales last year",
			wantOK: false,
		},
		{
			name:   "no amount",
			text:   "TAM is enormous, trust us",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MarketSize(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("MarketSize(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("MarketSize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// --- Extract ---

const sampleDeck = `Beta Inc Pitch Deck
About Acme Corp.
We are raising $2.5M at a pre-money valuation of $10M.
Previously raised $500K.
Team
Jane Smith, CEO
Bob Lee, CTO
Market
TAM of $3 trillion.`

func TestExtract(t *testing.T) {
	rec := Extract("acme-seed", sampleDeck)

	if rec.DeckID != "acme-seed" {
		t.Errorf("DeckID = %q, want %q", rec.DeckID, "acme-seed")
	}
	if rec.Status != types.ScanSuccess {
		t.Errorf("Status = %q, want %q", rec.Status, types.ScanSuccess)
	}
	if rec.CompanyName != "Acme Corp" {
		t.Errorf("CompanyName = %q, want %q", rec.CompanyName, "Acme Corp")
	}
	if want := []float64{2.5, 10, 0.5}; !reflect.DeepEqual(rec.FundingSought, want) {
		t.Errorf("FundingSought = %v, want %v", rec.FundingSought, want)
	}
	if rec.Valuation == nil || *rec.Valuation != 10 {
		t.Errorf("Valuation = %v, want 10", rec.Valuation)
	}
	if want := []string{"Jane Smith", "Bob Lee"}; !reflect.DeepEqual(rec.Founders, want) {
		t.Errorf("Founders = %v, want %v", rec.Founders, want)
	}
	if rec.MarketSizeBillions == nil || *rec.MarketSizeBillions != 3000 {
		t.Errorf("MarketSizeBillions = %v, want 3000", rec.MarketSizeBillions)
	}
}

func TestExtractEmptyText(t *testing.T) {
	rec := Extract("empty-deck", "")

	if rec.Status != types.ScanFailed {
		t.Errorf("Status = %q, want %q", rec.Status, types.ScanFailed)
	}
	if rec.CompanyName != types.UnknownCompany {
		t.Errorf("CompanyName = %q, want %q", rec.CompanyName, types.UnknownCompany)
	}
	if rec.FundingSought != nil || rec.Valuation != nil || rec.Founders != nil || rec.MarketSizeBillions != nil {
		t.Errorf("expected all fields absent, got %+v", rec)
	}
}

func TestExtractNoMatches(t *testing.T) {
	rec := Extract("plain", "we are a tiny startup with no recognizable cues at all.")

	if rec.Status != types.ScanSuccess {
		t.Errorf("Status = %q, want %q", rec.Status, types.ScanSuccess)
	}
	if rec.CompanyName != types.UnknownCompany {
		t.Errorf("CompanyName = %q, want %q", rec.CompanyName, types.UnknownCompany)
	}
	if rec.FundingSought != nil || rec.Valuation != nil || rec.Founders != nil || rec.MarketSizeBillions != nil {
		t.Errorf("expected all fields absent, got %+v", rec)
	}
}

func TestExtractDeterministic(t *testing.T) {
	a := Extract("acme-seed", sampleDeck)
	b := Extract("acme-seed", sampleDeck)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated extraction differs:\n%+v\n%+v", a, b)
	}
}
