// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperscope/internal/archive"
	"github.com/pdiddy/paperscope/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Browse fetch runs saved to the local archive",
	Long: `Archive manages the local SQLite database of saved fetch runs. Use
subcommands to list runs, show the papers of one run, search across all
archived papers, or export the archive to YAML or JSON.`,
}

// --- list subcommand ---

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs, newest first",
	RunE:  runArchiveList,
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No archived runs.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-16s  %6s  %s\n", "Run", "Created", "Papers", "Query")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-36s  %-16s  %6d  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.PaperCount, r.Query)
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

// --- show subcommand ---

var archiveShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show the papers of one archived run",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveShow,
}

func runArchiveShow(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	papers, err := store.Papers(context.Background(), args[0])
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatPapersOutput(papers, jsonOutput)
}

func formatPapersOutput(papers []types.Paper, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}

	if len(papers) == 0 {
		fmt.Println("No papers in this run.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-44s  %-12s  %-30s  %s\n",
		"PubmedID", "Title", "Date", "Companies", "Email")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 125))
	for _, p := range papers {
		fmt.Fprintf(os.Stdout, "%-10s  %-44s  %-12s  %-30s  %s\n",
			p.PubmedID, truncate(p.Title, 44), truncate(p.PubDate, 12),
			truncate(p.CompanyAffiliations, 30), p.CorrespondingEmail)
	}
	fmt.Fprintf(os.Stdout, "\n%d papers\n", len(papers))
	return nil
}

// --- search subcommand ---

var archiveSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search across archived papers",
	Long: `Search matches against archived paper titles and company affiliations,
ranked by relevance. Each hit names the run that produced it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runArchiveSearch,
}

func runArchiveSearch(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	hits, err := store.Search(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	if len(hits) == 0 {
		fmt.Println("No matches found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-40s  %-26s  %s\n", "PubmedID", "Title", "Companies", "Run")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 120))
	for _, h := range hits {
		fmt.Fprintf(os.Stdout, "%-10s  %-40s  %-26s  %s\n",
			h.PubmedID, truncate(h.Title, 40), truncate(h.CompanyAffiliations, 26), h.RunID)
	}
	fmt.Fprintf(os.Stdout, "\n%d matches\n", len(hits))
	return nil
}

// --- export subcommand ---

var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the archive to YAML or JSON",
	RunE:  runArchiveExport,
}

func runArchiveExport(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	archiveDir, _ := cmd.Flags().GetString("archive-dir")
	format, _ := cmd.Flags().GetString("format")

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background()); err != nil {
			return err
		}
		fmt.Println("Exported to", filepath.Join(archiveDir, "export.yaml"))
	case "json":
		if err := store.ExportJSON(context.Background()); err != nil {
			return err
		}
		fmt.Println("Exported to", filepath.Join(archiveDir, "export.json"))
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func openArchive(cmd *cobra.Command) (*archive.Store, error) {
	archiveDir, _ := cmd.Flags().GetString("archive-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return archive.NewStore(types.ArchiveConfig{
		ArchiveDir: archiveDir,
		MaxResults: maxResults,
	})
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	archiveCmd.PersistentFlags().String("archive-dir", "archive", "base directory for the archive database")
	archiveCmd.PersistentFlags().Int("max-results", 20, "maximum number of search results")

	// Show flags.
	archiveShowCmd.Flags().Bool("json", false, "output papers as JSON")

	// Search flags.
	archiveSearchCmd.Flags().Int("limit", 0, "maximum matches (0 = use default)")
	archiveSearchCmd.Flags().Bool("json", false, "output matches as JSON")

	// Export flags.
	archiveExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	// Wire subcommands.
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveSearchCmd)
	archiveCmd.AddCommand(archiveExportCmd)

	rootCmd.AddCommand(archiveCmd)
}
