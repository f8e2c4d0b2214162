// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan drives the per-deck pipeline: acquire text through a
// TextProvider, run the field extraction engine, and write one record file
// per deck. Results are caller-owned; nothing is accumulated in package
// state, so decks may be scanned in parallel by independent callers.
package scan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pitch-engine/internal/fields"
	"github.com/pdiddy/pitch-engine/pkg/types"
)

const (
	rawDir     = "raw"
	recordsDir = "records"
)

// now is stubbed in tests for deterministic record timestamps.
var now = time.Now

// BatchSummary holds counts from a batch scan run.
type BatchSummary struct {
	Scanned int
	Failed  int
	Skipped int
}

// Total returns the number of decks processed.
func (s BatchSummary) Total() int {
	return s.Scanned + s.Failed + s.Skipped
}

// HasFailures reports whether any decks failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// ScanDeck extracts text from one deck and runs the field engine. The deck
// ID is the filename without extension. A provider error or an empty text
// layer both produce a record with status ScanFailed; the error return is
// non-nil only for provider failures, so batch callers can report the
// cause while still keeping the failed record.
func ScanDeck(p TextProvider, pdfPath string) (types.PitchRecord, error) {
	deckID := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))

	text, err := p.Text(pdfPath)
	if err != nil {
		text = ""
	}

	rec := fields.Extract(deckID, text)
	rec.PDFPath = pdfPath
	rec.ScannedAt = now().UTC()
	return rec, err
}

// ScanBatch processes the given deck paths, writing one YAML record per
// deck to decksDir/records/ and per-file status lines to w. A failing deck
// does not stop the batch. Decks whose record file is newer than the PDF
// are skipped.
func ScanBatch(p TextProvider, pdfPaths []string, cfg types.ScanConfig, w io.Writer) (BatchSummary, error) {
	outDir := filepath.Join(cfg.DecksDir, recordsDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating records directory: %w", err)
	}

	var summary BatchSummary

	for _, pdfPath := range pdfPaths {
		deckID := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
		recPath := filepath.Join(outDir, deckID+".yaml")

		changed, err := hasChanged(pdfPath, recPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", deckID, err)
			summary.Failed++
			continue
		}
		if !changed {
			fmt.Fprintf(w, "skipped %s\n", deckID)
			summary.Skipped++
			continue
		}

		rec, scanErr := ScanDeck(p, pdfPath)

		if err := writeRecord(recPath, rec); err != nil {
			fmt.Fprintf(w, "failed  %s: write error: %v\n", deckID, err)
			summary.Failed++
			continue
		}

		switch {
		case scanErr != nil:
			fmt.Fprintf(w, "failed  %s: %v\n", deckID, scanErr)
			summary.Failed++
		case rec.Status == types.ScanFailed:
			fmt.Fprintf(w, "failed  %s: no text layer\n", deckID)
			summary.Failed++
		default:
			fmt.Fprintf(w, "scanned %s (company: %s)\n", deckID, rec.CompanyName)
			summary.Scanned++
		}
	}

	fmt.Fprintf(w, "\nscanned: %d, failed: %d, skipped: %d (total: %d)\n",
		summary.Scanned, summary.Failed, summary.Skipped, summary.Total())
	return summary, nil
}

// ScanDir processes every PDF in decksDir/raw/. The extension check is
// case-insensitive; non-PDF files are ignored.
func ScanDir(p TextProvider, cfg types.ScanConfig, w io.Writer) (BatchSummary, error) {
	inDir := filepath.Join(cfg.DecksDir, rawDir)
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("reading decks directory %s: %w", inDir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(inDir, entry.Name()))
	}

	return ScanBatch(p, paths, cfg, w)
}

// hasChanged reports whether the PDF is newer than its record file.
// Returns true when the record does not exist yet.
func hasChanged(pdfPath, recPath string) (bool, error) {
	pdfInfo, err := os.Stat(pdfPath)
	if err != nil {
		return false, fmt.Errorf("stat deck %s: %w", pdfPath, err)
	}

	recInfo, err := os.Stat(recPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat record %s: %w", recPath, err)
	}

	return pdfInfo.ModTime().After(recInfo.ModTime()), nil
}

// writeRecord marshals the PitchRecord to a YAML file.
func writeRecord(path string, rec types.PitchRecord) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
