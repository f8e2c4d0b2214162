// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fields locates structured business facts inside pitch deck text.
// Each extractor is a stateless pattern rule over the raw string; a miss is
// a normal "no data" outcome, never an error. All extractors read the same
// immutable text and none depends on another's output.
package fields

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/pitch-engine/pkg/types"
)

var (
	// companyRes is an ordered candidate list: a label cue ("About Acme
	// Corp") always beats the deck-title form ("Beta Inc Pitch Deck"),
	// regardless of where each appears in the text. Within a pattern the
	// leftmost match wins.
	companyRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:About|Company:?|About Us:?)\s+([A-Z][A-Za-z0-9\s]{2,30}(?:Inc\.?|LLC|Corp\.?|Co\.?)?)`),
		regexp.MustCompile(`([A-Z][A-Za-z0-9\s]{2,30}(?:Inc\.?|LLC|Corp\.?|Co\.?))\s+(?:Pitch|Deck|Presentation)`),
	}

	// fundingRe matches an optional lead-in phrase, an optional currency
	// symbol, a decimal number, and a scale unit. The lead-in is optional so
	// bare figures like "$500K" still match.
	fundingRe = regexp.MustCompile(`(?:raising|raise|seeking|investment of|funding of|looking for)?\s*\$?(\d+(?:\.\d+)?)\s*(M|MM|Million|million|K|k|thousand|Thousand)`)

	// valuationRe matches a valuation cue followed by the nearest amount,
	// allowing the span between cue and amount to cross line breaks.
	valuationRe = regexp.MustCompile(`(?is)(?:valuation|valued at|worth|post-money|pre-money).*?\$?(\d+(?:\.\d+)?)\s*(M|MM|Million|million|B|billion|Billion)`)

	// teamSectionRe bounds the team section: from the first team cue to the
	// next topic cue, inclusive.
	teamSectionRe = regexp.MustCompile(`(?is)(?:Team|Founders|Management).*?(?:Market|Product|Traction|Financials|Competition)`)

	// founderRe matches two or three capitalized words immediately followed
	// by a title token, with an optional separator between them.
	founderRe = regexp.MustCompile(`([A-Z][a-z]+(?:\s[A-Z][a-z]+){1,2})(?:,|\.|\n|\s)?\s*(?:CEO|CTO|CFO|COO|Founder|Co-Founder)`)

	// marketRe matches a market-size cue followed by the nearest
	// billion-or-trillion-scale amount.
	marketRe = regexp.MustCompile(`(?is)(?:TAM|Total Addressable Market|Market Size|Market Opportunity).*?\$?(\d+(?:\.\d+)?)\s*(B|billion|Billion|T|trillion|Trillion)`)
)

// CompanyName returns the company name from the first matching candidate
// pattern, trimmed of surrounding whitespace. Returns "" when neither
// pattern matches; callers substitute types.UnknownCompany in the record.
func CompanyName(text string) string {
	for _, re := range companyRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// FundingAmounts returns every funding figure in the text, in order of
// appearance, normalized to millions. Unit classification is a substring
// check on the lowercased unit token: any token containing "k" or
// "thousand" takes the thousands branch and divides by 1000.
func FundingAmounts(text string) []float64 {
	var amounts []float64
	for _, m := range fundingRe.FindAllStringSubmatch(text, -1) {
		amount, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		unit := strings.ToLower(m[2])
		if strings.Contains(unit, "k") || strings.Contains(unit, "thousand") {
			amount /= 1000
		}
		amounts = append(amounts, amount)
	}
	return amounts
}

// Valuation returns the first valuation mention normalized to millions.
// Billion-scale amounts multiply by 1000. Later mentions are ignored.
// The second return is false when no cue-plus-amount pair exists.
func Valuation(text string) (float64, bool) {
	m := valuationRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	unit := strings.ToLower(m[2])
	if strings.Contains(unit, "b") || strings.Contains(unit, "billion") {
		amount *= 1000
	}
	return amount, true
}

// Founders returns name+title matches from the team section, in order of
// appearance. Names outside the bounded span never match, even with a
// title. Returns nil when no bounded span exists or the span contains no
// name+title pairs. Duplicates are kept.
func Founders(text string) []string {
	section := teamSectionRe.FindString(text)
	if section == "" {
		return nil
	}
	var names []string
	for _, m := range founderRe.FindAllStringSubmatch(section, -1) {
		names = append(names, m[1])
	}
	return names
}

// MarketSize returns the first market-size mention normalized to billions.
// Trillion-scale amounts multiply by 1000. The second return is false when
// no cue-plus-amount pair exists.
func MarketSize(text string) (float64, bool) {
	m := marketRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	unit := strings.ToLower(m[2])
	if strings.Contains(unit, "t") || strings.Contains(unit, "trillion") {
		amount *= 1000
	}
	return amount, true
}

// Extract runs all five extractors over text and assembles a PitchRecord.
// Empty text is a terminal input: the record reports ScanFailed and no
// extractor runs. Identical text always yields an identical record.
func Extract(deckID, text string) types.PitchRecord {
	rec := types.PitchRecord{
		DeckID:      deckID,
		CompanyName: types.UnknownCompany,
		Status:      types.ScanFailed,
	}
	if text == "" {
		return rec
	}

	rec.Status = types.ScanSuccess
	if name := CompanyName(text); name != "" {
		rec.CompanyName = name
	}
	rec.FundingSought = FundingAmounts(text)
	if v, ok := Valuation(text); ok {
		rec.Valuation = &v
	}
	rec.Founders = Founders(text)
	if m, ok := MarketSize(text); ok {
		rec.MarketSizeBillions = &m
	}
	return rec
}
