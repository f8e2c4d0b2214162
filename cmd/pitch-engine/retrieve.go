// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pitch-engine/pkg/types"
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the deck database with full-text search and filters",
	Long: `Retrieve searches the deck database using FTS5 full-text search over
company names and founders, a scan status filter, or both. Full-text
results are ranked by relevance.`,
	RunE: runRetrieve,
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query or --status")
	}

	results, err := s.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []types.PitchRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-24s  %-18s  %-12s  %-30s  %s\n",
		"Rank", "Company", "Funding ($M)", "Val ($M)", "Founders", "Status")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 104))

	for i, r := range results {
		company := r.CompanyName
		if len(company) > 24 {
			company = company[:21] + "..."
		}
		founders := strings.Join(r.Founders, "; ")
		if len(founders) > 30 {
			founders = founders[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-24s  %-18s  %-12s  %-30s  %s\n",
			i+1, company, joinAmounts(r.FundingSought), amountCell(r.Valuation), founders, r.Status)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

func joinAmounts(amounts []float64) string {
	parts := make([]string, len(amounts))
	for i, a := range amounts {
		parts[i] = strconv.FormatFloat(a, 'g', -1, 64)
	}
	return strings.Join(parts, "; ")
}

func amountCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func init() {
	retrieveCmd.Flags().String("query", "", "full-text search query")
	retrieveCmd.Flags().String("status", "", "filter by scan status: success or extraction_failed")
	retrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	retrieveCmd.Flags().Int("max-results", 20, "maximum number of query results")
	retrieveCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(retrieveCmd)
}
