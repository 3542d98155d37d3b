package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperscope/internal/archive"
	"github.com/pdiddy/paperscope/internal/enrich"
	"github.com/pdiddy/paperscope/internal/pubmed"
	"github.com/pdiddy/paperscope/internal/report"
	"github.com/pdiddy/paperscope/pkg/types"
)

const (
	defaultQuery      = "cancer AND immunotherapy"
	defaultFile       = "output.csv"
	defaultMaxResults = 20
	defaultTimeout    = 30 * time.Second
	defaultUserAgent  = "paperscope/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Search PubMed and write paper details to a CSV file",
	Long: `Fetch searches PubMed for the query, retrieves each matching record, and
writes one CSV row per paper: PubMed ID, title, publication date, authors
with non-academic affiliations, their companies, and a corresponding email.

A run can be replayed from a saved query file (--query-file), recorded to
one (--save-query), and appended to the local archive (--archive).`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("query", defaultQuery, "PubMed search query")
	fetchCmd.Flags().String("file", defaultFile, "output CSV filename")
	fetchCmd.Flags().Int("max-results", defaultMaxResults, "maximum number of search results")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	fetchCmd.Flags().String("query-file", "", "read the query from a saved query file")
	fetchCmd.Flags().String("save-query", "", "save the query and run summary to this file")
	fetchCmd.Flags().Bool("archive", false, "append the run to the local archive database")
	fetchCmd.Flags().String("archive-dir", "archive", "base directory for the archive database")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	file, _ := cmd.Flags().GetString("file")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	queryFilePath, _ := cmd.Flags().GetString("query-file")
	saveQuery, _ := cmd.Flags().GetString("save-query")
	toArchive, _ := cmd.Flags().GetBool("archive")

	if queryFilePath != "" {
		qf, err := pubmed.ReadQueryFile(queryFilePath)
		if err != nil {
			return err
		}
		query = qf.Query
		if qf.Config.MaxResults > 0 {
			maxResults = qf.Config.MaxResults
		}
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	cfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		MaxResults: maxResults,
		APIKey:     secretDefault("ncbi-api-key", viper.GetString("pubmed.api_key")),
		Tool:       viper.GetString("pubmed.tool"),
		Email:      secretDefault("pubmed-email", viper.GetString("pubmed.email")),
	}

	client := pubmed.NewClient(cfg)
	ctx := context.Background()

	logger.Info().Str("query", query).Msg("searching pubmed")
	logger.Debug().Str("file", file).Int("max_results", maxResults).Msg("fetch settings")

	ids, err := client.SearchIDs(ctx, query)
	if err != nil {
		return err
	}
	logger.Debug().Strs("pmids", ids).Msg("search results")
	logger.Info().Int("ids", len(ids)).Msg("fetching article details")

	papers, err := enrich.Papers(ctx, client, ids, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	logger.Info().Str("file", file).Int("papers", len(papers)).Msg("saving results")
	if err := report.WriteCSV(papers, file); err != nil {
		return err
	}

	if toArchive {
		archiveDir, _ := cmd.Flags().GetString("archive-dir")
		store, err := archive.NewStore(types.ArchiveConfig{
			ArchiveDir: archiveDir,
			MaxResults: maxResults,
		})
		if err != nil {
			return err
		}
		defer store.Close()

		runID, err := store.SaveRun(ctx, query, papers)
		if err != nil {
			return err
		}
		logger.Info().Str("run_id", runID).Msg("archived run")
	}

	if saveQuery != "" {
		if err := pubmed.WriteQueryFile(saveQuery, query, maxResults, len(ids), len(papers), file); err != nil {
			return err
		}
		logger.Info().Str("query_file", saveQuery).Msg("saved query file")
	}

	logger.Debug().Msg("fetch completed")
	return nil
}
