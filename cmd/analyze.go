// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/trending-analyzer/internal/config"
	"github.com/naka-gawa/trending-analyzer/internal/domain"
	"github.com/naka-gawa/trending-analyzer/internal/gateway"
	"github.com/naka-gawa/trending-analyzer/internal/report"
	"github.com/naka-gawa/trending-analyzer/internal/usecase"
)

const fileTimestampLayout = "20060102_150405"

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyzes trending repositories and writes text and JSON reports",
	Long: `Fetches a batch of trending-like repositories via the GitHub search API,
analyzes each one (README keyword signals, metadata, hot discussions), and
writes the result as <prefix>_<timestamp>.txt and <prefix>_<timestamp>.json.

Set GITHUB_TOKEN for authenticated requests; without it, calls fall under
GitHub's lower anonymous rate limit.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Map the root command's verbose flag onto the log level.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		level := log.WarnLevel
		if verbose {
			level = log.DebugLevel
		}
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Level:           level,
		})

		language, _ := cmd.Flags().GetString("language")
		since, _ := cmd.Flags().GetString("since")
		limit, _ := cmd.Flags().GetInt("limit")
		top, _ := cmd.Flags().GetInt("top")
		prefix, _ := cmd.Flags().GetString("prefix")
		dir, _ := cmd.Flags().GetString("dir")
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		// Flags override the configured trending heuristic.
		if since != "" {
			cfg.Trending.Since = since
		}
		if limit > 0 {
			cfg.Trending.Limit = limit
		}
		if _, err := cfg.Trending.WindowDays(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid --since value: %v\n", err)
			os.Exit(1)
		}

		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			logger.Warn("GITHUB_TOKEN is not set; using the anonymous rate limit")
		}

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		analyzer := usecase.NewAnalyzer(githubGateway, cfg, logger)

		repos, err := analyzer.TrendingRepos(ctx, language)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch trending repositories: %v\n", err)
			os.Exit(1)
		}
		if len(repos) == 0 {
			fmt.Println("No trending repositories found.")
			return
		}
		fmt.Printf("Found %d trending repositories\n", len(repos))

		if top > 0 && len(repos) > top {
			repos = repos[:top]
		}

		// Analyze sequentially; any fetch failure aborts the run.
		analyses := make([]domain.Analysis, 0, len(repos))
		for _, repo := range repos {
			analysis, err := analyzer.AnalyzeRepository(ctx, repo.Owner, repo.Name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to analyze %s: %v\n", repo.FullName, err)
				os.Exit(1)
			}
			analyses = append(analyses, *analysis)
		}

		timestamp := time.Now().Format(fileTimestampLayout)
		textPath := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", prefix, timestamp))
		jsonPath := filepath.Join(dir, fmt.Sprintf("%s_%s.json", prefix, timestamp))

		if err := writeReport(textPath, analyses, func(f *os.File) report.Writer {
			return report.NewTextWriter(f)
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write text report: %v\n", err)
			os.Exit(1)
		}
		if err := writeReport(jsonPath, analyses, func(f *os.File) report.Writer {
			return report.NewJSONWriter(f, report.WithPrettyPrint())
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write JSON report: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Analyzed %d repositories\n", len(analyses))
		fmt.Printf("Report saved to: %s\n", textPath)
		fmt.Printf("JSON data saved to: %s\n", jsonPath)
	},
}

// writeReport creates the file at path and renders the analyses into it with
// the writer produced by build.
func writeReport(path string, analyses []domain.Analysis, build func(*os.File) report.Writer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := build(f).Write(analyses); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("language", "l", "", "Programming language filter (empty for all)")
	analyzeCmd.Flags().StringP("since", "s", "", "Trending window: daily, weekly or monthly")
	analyzeCmd.Flags().Int("limit", 0, "Number of search results to fetch (single page)")
	analyzeCmd.Flags().Int("top", 0, "Analyze only the first N search results (0 for all)")
	analyzeCmd.Flags().String("prefix", "github_trending_analysis", "Output file name prefix")
	analyzeCmd.Flags().String("dir", ".", "Output directory")
	analyzeCmd.Flags().String("config", "", "Path to a YAML configuration file")
}
