// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/naka-gawa/trending-analyzer/internal/config"
	"github.com/naka-gawa/trending-analyzer/internal/domain"
	"github.com/naka-gawa/trending-analyzer/internal/gateway"
)

// Analyzer is the use case for analyzing trending repositories.
// It orchestrates fetching and turns raw repository data into analysis
// records. Execution is strictly sequential: one blocking call at a time.
type Analyzer struct {
	fetcher gateway.Fetcher
	cfg     *config.Config
	logger  *log.Logger
	now     func() time.Time
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer(fetcher gateway.Fetcher, cfg *config.Config, logger *log.Logger) *Analyzer {
	return &Analyzer{
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// TrendingRepos returns the current best-effort trending batch, ordered by
// stars descending. The selection criteria come from the trending section of
// the configuration.
func (a *Analyzer) TrendingRepos(ctx context.Context, language string) ([]domain.RepoSummary, error) {
	days, err := a.cfg.Trending.WindowDays()
	if err != nil {
		return nil, err
	}
	query := gateway.TrendingQuery{
		Language:     language,
		CreatedAfter: a.now().AddDate(0, 0, -days),
		MinStars:     a.cfg.Trending.MinStars,
		Limit:        a.cfg.Trending.Limit,
	}
	return a.fetcher.SearchTrending(ctx, query)
}

// AnalyzeRepository fetches one repository's details, README and recent
// issues and builds its analysis record. A missing README or an empty issue
// list degrades to empty/false signals; only a failed fetch is an error.
func (a *Analyzer) AnalyzeRepository(ctx context.Context, owner, repo string) (*domain.Analysis, error) {
	a.logger.Info("analyzing repository", "repo", owner+"/"+repo)

	summary, err := a.fetcher.FetchRepository(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository %s/%s: %w", owner, repo, err)
	}
	readme, err := a.fetcher.FetchReadme(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch readme for %s/%s: %w", owner, repo, err)
	}
	issues, err := a.fetcher.FetchIssues(ctx, owner, repo, "all", a.cfg.RecentIssues)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issues for %s/%s: %w", owner, repo, err)
	}

	return a.Analyze(summary, readme, issues), nil
}

// Analyze builds the analysis record for already-fetched inputs. Every signal
// is an independent, order-insensitive check over the same README text and
// metadata, so missing inputs simply yield their empty/false values.
func (a *Analyzer) Analyze(summary domain.RepoSummary, readme string, issues []domain.Issue) *domain.Analysis {
	lower := strings.ToLower(readme)
	kw := a.cfg.Keywords

	return &domain.Analysis{
		Repository: summary,
		ProblemDefinition: domain.ProblemDefinition{
			Description:         summary.Description,
			HasProblemStatement: containsAny(lower, kw.ProblemStatement),
			ReadmeLength:        len(readme),
		},
		ArchitectureTools: domain.ArchitectureTools{
			PrimaryLanguage:        summary.Language,
			DetectedTechnologies:   a.detectTechnologies(lower),
			HasArchitectureDiagram: containsAny(lower, kw.ArchitectureDiagram),
		},
		DataFlow: domain.DataFlow{
			MentionsAPI:      containsAny(lower, kw.API),
			MentionsDatabase: containsAny(lower, kw.Database),
			MentionsAsync:    containsAny(lower, kw.Async),
			HasFlowDiagram:   containsAny(lower, kw.FlowDiagram),
		},
		Documentation: domain.Documentation{
			HasReadme:       len(readme) > 0,
			ReadmeLength:    len(readme),
			HasInstallation: containsAny(lower, kw.Installation),
			HasUsage:        containsAny(lower, kw.Usage),
			HasContributing: containsAny(lower, kw.Contributing),
			HasLicense:      summary.HasLicense,
			OpenIssues:      summary.OpenIssues,
		},
		HotDiscussions: TopIssues(issues, a.cfg.TopIssues),
	}
}

// detectTechnologies returns the configured technology keywords present in
// the README, in configuration order, capped at MaxTechnologies.
func (a *Analyzer) detectTechnologies(lower string) []string {
	detected := []string{}
	for _, tech := range a.cfg.Keywords.Technologies {
		if strings.Contains(lower, strings.ToLower(tech)) {
			detected = append(detected, tech)
			if len(detected) == a.cfg.MaxTechnologies {
				break
			}
		}
	}
	return detected
}

// TopIssues selects the most commented issues. Pull requests returned by the
// issues endpoint are excluded, the remainder is sorted by comment count
// descending and truncated to limit. The sort is stable: ties keep their
// original relative order.
func TopIssues(issues []domain.Issue, limit int) []domain.Issue {
	discussions := make([]domain.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.IsPullRequest {
			continue
		}
		discussions = append(discussions, issue)
	}
	sort.SliceStable(discussions, func(i, j int) bool {
		return discussions[i].Comments > discussions[j].Comments
	})
	if limit >= 0 && len(discussions) > limit {
		discussions = discussions[:limit]
	}
	return discussions
}

// containsAny reports whether any keyword occurs in lower, which must already
// be lower-cased. Matching is plain substring matching.
func containsAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
