// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pitch-engine/internal/container"
	"github.com/pdiddy/pitch-engine/internal/scan"
	"github.com/pdiddy/pitch-engine/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan [decks...]",
	Short: "Extract structured fields from pitch deck PDFs",
	Long: `Scan converts pitch deck PDFs to text and runs the field extraction
engine over them, writing one YAML record per deck to decks/records/.
Supports pdftotext and markitdown (container-based) backends.

With no arguments, every PDF in decks/raw/ is scanned. Decks whose record
is newer than the PDF are skipped.`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := scanConfig(cmd)

	p, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	var summary scan.BatchSummary
	if len(args) > 0 {
		summary, err = scan.ScanBatch(p, args, cfg, os.Stdout)
	} else {
		summary, err = scan.ScanDir(p, cfg, os.Stdout)
	}
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d deck(s) failed scanning", summary.Failed)
	}
	return nil
}

func scanConfig(cmd *cobra.Command) types.ScanConfig {
	return types.ScanConfig{
		Backend:      types.TextBackend(setting(cmd, "backend", "scan.backend")),
		PdftotextBin: setting(cmd, "pdftotext-bin", "scan.pdftotext_bin"),
		DecksDir:     decksDir(cmd),
	}
}

func buildProvider(cfg types.ScanConfig) (scan.TextProvider, error) {
	switch cfg.Backend {
	case types.BackendPdftotext, "":
		return scan.NewPdftotextProvider(cfg.PdftotextBin), nil
	case types.BackendMarkitdown:
		rt, err := container.Detect()
		if err != nil {
			return nil, err
		}
		return scan.NewMarkitdownProvider(rt)
	default:
		return nil, fmt.Errorf("unsupported backend %q: use pdftotext or markitdown", cfg.Backend)
	}
}

func init() {
	scanCmd.Flags().String("backend", "pdftotext", "text extraction backend: pdftotext or markitdown")
	scanCmd.Flags().String("pdftotext-bin", "", "path to the pdftotext binary (default: from PATH)")

	rootCmd.AddCommand(scanCmd)
}
