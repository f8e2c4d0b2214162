// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pitch-engine/pkg/types"
)

const exportLimit = 100000

// exportHeaders is the column order shared by the CSV and XLSX exports.
var exportHeaders = []string{
	"deck_id",
	"company_name",
	"funding_sought_millions",
	"valuation_millions",
	"founders",
	"market_size_billions",
	"status",
}

// ExportYAML writes the deck database to decksDir/index/export.yaml.
// It supports the same filters as Retrieve.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(s.exportPath("export.yaml"), data, 0o644)
}

// ExportJSON writes the deck database to decksDir/index/export.json.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(s.exportPath("export.json"), data, 0o644)
}

// ExportCSV writes one row per deck to decksDir/index/export.csv, with
// funding figures and founders flattened into "; "-joined cells.
func (s *Store) ExportCSV(ctx context.Context, opts QueryOptions) error {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(s.exportPath("export.csv"))
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeaders); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(exportRow(rec)); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", rec.DeckID, err)
		}
	}
	w.Flush()
	return w.Error()
}

// ExportXLSX writes an XLSX workbook to decksDir/index/export.xlsx, one
// row per deck on a "Decks" sheet.
func (s *Store) ExportXLSX(ctx context.Context, opts QueryOptions) error {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	const sheet = "Decks"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for rowIdx, rec := range records {
		for colIdx, value := range exportRow(rec) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("writing row for %s: %w", rec.DeckID, err)
			}
		}
	}

	f.SetColWidth(sheet, "A", "B", 24)
	f.SetColWidth(sheet, "C", "C", 22)
	f.SetColWidth(sheet, "D", "D", 18)
	f.SetColWidth(sheet, "E", "E", 40)
	f.SetColWidth(sheet, "F", "G", 18)

	if err := f.SaveAs(s.exportPath("export.xlsx")); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func (s *Store) exportPath(name string) string {
	return filepath.Join(s.decksDir, indexDir, name)
}

func (s *Store) exportRecords(ctx context.Context, opts QueryOptions) ([]types.PitchRecord, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	records, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return records, nil
}

// exportRow flattens one record into the shared tabular column order.
// Absent amounts become empty cells, never zeros.
func exportRow(rec types.PitchRecord) []string {
	funding := make([]string, len(rec.FundingSought))
	for i, amount := range rec.FundingSought {
		funding[i] = formatAmount(amount)
	}

	valuation := ""
	if rec.Valuation != nil {
		valuation = formatAmount(*rec.Valuation)
	}
	marketSize := ""
	if rec.MarketSizeBillions != nil {
		marketSize = formatAmount(*rec.MarketSizeBillions)
	}

	return []string{
		rec.DeckID,
		rec.CompanyName,
		strings.Join(funding, "; "),
		valuation,
		strings.Join(rec.Founders, "; "),
		marketSize,
		string(rec.Status),
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
