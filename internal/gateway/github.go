// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/trending-analyzer/internal/domain"
)

// FetchError reports a failed GitHub API call. StatusCode is the HTTP status
// of the response, or 0 when the request never received one. It wraps the
// underlying client error.
type FetchError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("github api: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("github api: %s", e.Message)
}

func (e *FetchError) Unwrap() error { return e.Err }

// TrendingQuery describes the best-effort trending search. GitHub has no
// trending endpoint, so the batch is approximated by a star-sorted search
// over recently created repositories. The exact criteria are a heuristic,
// configured by the caller rather than fixed here.
type TrendingQuery struct {
	Language     string
	CreatedAfter time.Time
	MinStars     int
	Limit        int
}

// String renders the query in GitHub search syntax.
func (q TrendingQuery) String() string {
	parts := []string{
		fmt.Sprintf("created:>=%s", q.CreatedAfter.Format("2006-01-02")),
		fmt.Sprintf("stars:>%d", q.MinStars),
	}
	if q.Language != "" {
		parts = append(parts, "language:"+q.Language)
	}
	return strings.Join(parts, " ")
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// SearchTrending returns up to query.Limit repositories matching the
	// trending heuristic, ordered by stars descending. Single page only.
	SearchTrending(ctx context.Context, query TrendingQuery) ([]domain.RepoSummary, error)
	// FetchRepository returns the metadata of one repository.
	FetchRepository(ctx context.Context, owner, repo string) (domain.RepoSummary, error)
	// FetchReadme returns the decoded README text. A repository without a
	// README is not an error; it yields an empty string.
	FetchReadme(ctx context.Context, owner, repo string) (string, error)
	// FetchIssues returns up to limit recent issues in the given state.
	// Entries for pull requests are included and flagged as such.
	FetchIssues(ctx context.Context, owner, repo, state string, limit int) ([]domain.Issue, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client *github.Client
	logger *log.Logger
}

// NewGitHubGateway creates a gateway backed by the GitHub REST API. The token
// is optional: without one, requests are unauthenticated and subject to the
// lower anonymous rate limit. Secondary rate limits are handled transparently
// by the transport; failed requests still propagate immediately.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	httpClient := &http.Client{Transport: rateLimitWaiter}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient.Transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		}
	}
	return &GitHubGateway{
		client: github.NewClient(httpClient),
		logger: logger,
	}, nil
}

func (g *GitHubGateway) SearchTrending(ctx context.Context, query TrendingQuery) ([]domain.RepoSummary, error) {
	q := query.String()
	g.logger.Debug("searching trending repositories", "query", q, "limit", query.Limit)
	opts := &github.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: query.Limit},
	}
	result, resp, err := g.client.Search.Repositories(ctx, q, opts)
	if err != nil {
		return nil, newFetchError("failed to search repositories", resp, err)
	}
	summaries := make([]domain.RepoSummary, 0, len(result.Repositories))
	for _, repo := range result.Repositories {
		summaries = append(summaries, summaryFromRepository(repo))
	}
	g.logger.Debug("search complete", "found", len(summaries))
	return summaries, nil
}

func (g *GitHubGateway) FetchRepository(ctx context.Context, owner, repo string) (domain.RepoSummary, error) {
	g.logger.Debug("fetching repository details", "repo", owner+"/"+repo)
	r, resp, err := g.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return domain.RepoSummary{}, newFetchError(fmt.Sprintf("failed to fetch repository %s/%s", owner, repo), resp, err)
	}
	return summaryFromRepository(r), nil
}

func (g *GitHubGateway) FetchReadme(ctx context.Context, owner, repo string) (string, error) {
	g.logger.Debug("fetching readme", "repo", owner+"/"+repo)
	content, resp, err := g.client.Repositories.GetReadme(ctx, owner, repo, nil)
	if err != nil {
		// A missing README is a normal condition, not a failure.
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", newFetchError(fmt.Sprintf("failed to fetch readme for %s/%s", owner, repo), resp, err)
	}
	text, err := content.GetContent()
	if err != nil {
		return "", &FetchError{Message: fmt.Sprintf("failed to decode readme content for %s/%s", owner, repo), Err: err}
	}
	return text, nil
}

func (g *GitHubGateway) FetchIssues(ctx context.Context, owner, repo, state string, limit int) ([]domain.Issue, error) {
	g.logger.Debug("fetching issues", "repo", owner+"/"+repo, "state", state, "limit", limit)
	opts := &github.IssueListByRepoOptions{
		State:       state,
		Sort:        "comments",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: limit},
	}
	issues, resp, err := g.client.Issues.ListByRepo(ctx, owner, repo, opts)
	if err != nil {
		return nil, newFetchError(fmt.Sprintf("failed to fetch issues for %s/%s", owner, repo), resp, err)
	}
	result := make([]domain.Issue, 0, len(issues))
	for _, is := range issues {
		result = append(result, domain.Issue{
			Number:        is.GetNumber(),
			Title:         is.GetTitle(),
			Comments:      is.GetComments(),
			State:         is.GetState(),
			URL:           is.GetHTMLURL(),
			CreatedAt:     is.GetCreatedAt().Time,
			IsPullRequest: is.IsPullRequest(),
		})
	}
	return result, nil
}

// newFetchError wraps a go-github error with the response status when one
// is available.
func newFetchError(message string, resp *github.Response, err error) *FetchError {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	return &FetchError{StatusCode: status, Message: message, Err: err}
}

func summaryFromRepository(r *github.Repository) domain.RepoSummary {
	return domain.RepoSummary{
		Owner:       r.GetOwner().GetLogin(),
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		URL:         r.GetHTMLURL(),
		OpenIssues:  r.GetOpenIssuesCount(),
		HasLicense:  r.GetLicense() != nil,
		CreatedAt:   r.GetCreatedAt().Time,
		UpdatedAt:   r.GetUpdatedAt().Time,
	}
}
