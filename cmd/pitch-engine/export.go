// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pitch-engine/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the deck database to YAML, JSON, CSV, or XLSX",
	Long: `Export writes the full deck database (or a filtered subset) to
decks/index/export.<format>. CSV and XLSX exports flatten funding figures
and founders into "; "-joined cells. Supports the same filter flags as
retrieve for partial exports.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := queryOptsFromFlags(cmd, args)
	ctx := context.Background()

	switch types.ExportFormat(format) {
	case types.ExportYAML, "":
		err = s.ExportYAML(ctx, opts)
		format = "yaml"
	case types.ExportJSON:
		err = s.ExportJSON(ctx, opts)
	case types.ExportCSV:
		err = s.ExportCSV(ctx, opts)
	case types.ExportXLSX:
		err = s.ExportXLSX(ctx, opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml, json, csv, or xlsx", format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported to %s/index/export.%s\n", decksDir(cmd), format)
	return nil
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml, json, csv, or xlsx")
	exportCmd.Flags().String("query", "", "full-text search filter for partial export")
	exportCmd.Flags().String("status", "", "filter by scan status for partial export")
	exportCmd.Flags().Int("limit", 0, "maximum records to export (0 = all)")
	exportCmd.Flags().Int("max-results", 20, "maximum number of query results")

	rootCmd.AddCommand(exportCmd)
}
