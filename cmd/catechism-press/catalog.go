// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwhitmore/catechism-press/internal/catalog"
	"github.com/mwhitmore/catechism-press/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the record search index (store, retrieve)",
	Long: `Catalog maintains a local SQLite index of the record corpus for
full-text search while proofreading. Use subcommands to index records
or query them.`,
}

// --- store subcommand ---

var catalogStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Index record files into the catalog",
	Long: `Store loads every record TOML file from the source directory and
upserts it into the catalog database with FTS5 indexing over the prompt
and answer text. Re-running after edits refreshes the changed records.`,
	RunE: runCatalogStore,
}

func runCatalogStore(cmd *cobra.Command, args []string) error {
	cfg, sourceDir := catalogConfig(cmd)

	store, err := catalog.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), sourceDir, classifierFromFlags(cmd), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d record(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var catalogRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the catalog with full-text search and filters",
	Long: `Retrieve searches the catalog using FTS5 full-text search over prompt
and answer text, optionally filtered by answer shape (plain, list,
hierarchical). Full-text results come back in relevance order.`,
	RunE: runCatalogRetrieve,
}

func runCatalogRetrieve(cmd *cobra.Command, args []string) error {
	cfg, _ := catalogConfig(cmd)
	store, err := catalog.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []catalog.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-8s  %-40s  %-50s  %s\n",
		"ID", "Question", "Answer", "Shape")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, r := range results {
		prompt := r.Prompt
		if len(prompt) > 40 {
			prompt = prompt[:37] + "..."
		}
		answer := r.Answer
		if len(answer) > 50 {
			answer = answer[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-8s  %-40s  %-50s  %s\n",
			r.ID, prompt, answer, r.Shape)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- shared helpers ---

func catalogConfig(cmd *cobra.Command) (types.CatalogConfig, string) {
	catalogDir, _ := cmd.Flags().GetString("catalog-dir")
	if catalogDir == "" {
		catalogDir = "catalog"
	}
	sourceDir, _ := cmd.Flags().GetString("source-dir")
	if sourceDir == "" {
		sourceDir = "src"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	cfg := types.CatalogConfig{
		CatalogDir: catalogDir,
		MaxResults: maxResults,
	}
	return cfg, sourceDir
}

func classifierFromFlags(cmd *cobra.Command) types.ClassifierConfig {
	hier, _ := cmd.Flags().GetInt("hierarchical-threshold")
	list, _ := cmd.Flags().GetInt("list-threshold")
	return types.ClassifierConfig{
		HierarchicalThreshold: hier,
		ListThreshold:         list,
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	shape, _ := cmd.Flags().GetString("shape")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Query:      queryText,
		Shape:      shape,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog-dir", "catalog", "base directory for the catalog (contains index/)")
	catalogCmd.PersistentFlags().String("source-dir", "src", "directory of record TOML files")
	catalogCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Store flags.
	catalogStoreCmd.Flags().Int("hierarchical-threshold", 0, "minimum numbered-argument fragments (0 = default 3)")
	catalogStoreCmd.Flags().Int("list-threshold", 0, "minimum enumerated fragments (0 = default 3)")

	// Retrieve flags.
	catalogRetrieveCmd.Flags().String("query", "", "full-text search query")
	catalogRetrieveCmd.Flags().String("shape", "", "filter by answer shape: plain, list, hierarchical")
	catalogRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	catalogCmd.AddCommand(catalogStoreCmd)
	catalogCmd.AddCommand(catalogRetrieveCmd)

	rootCmd.AddCommand(catalogCmd)
}
