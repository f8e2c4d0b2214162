// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pitch-engine/internal/store"
	"github.com/pdiddy/pitch-engine/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Index scanned deck records into the deck database",
	Long: `Store reads record YAML files from decks/records/, ingests them into
a SQLite database with FTS5 indexing over company names and founders, and
refreshes the export file. Unchanged records are skipped on subsequent
runs.`,
	RunE: runStore,
}

func runStore(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d record(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*store.Store, error) {
	maxResults, _ := cmd.Flags().GetInt("max-results")

	cfg := types.StoreConfig{
		DecksDir:   decksDir(cmd),
		MaxResults: maxResults,
	}
	return store.NewStore(cfg)
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) store.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = args[0]
	}

	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		Query:      queryText,
		Status:     types.ScanStatus(status),
		MaxResults: limit,
	}
}

func init() {
	storeCmd.Flags().Int("max-results", 20, "maximum number of query results")

	rootCmd.AddCommand(storeCmd)
}
