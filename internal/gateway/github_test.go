package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	client := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	gateway := &GitHubGateway{
		client: client,
		logger: log.New(io.Discard),
	}

	return gateway, server
}

func TestTrendingQuery_String(t *testing.T) {
	cutoff := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		query    TrendingQuery
		expected string
	}{
		{
			name:     "without language filter",
			query:    TrendingQuery{CreatedAfter: cutoff, MinStars: 100, Limit: 10},
			expected: "created:>=2024-05-01 stars:>100",
		},
		{
			name:     "with language filter",
			query:    TrendingQuery{Language: "go", CreatedAfter: cutoff, MinStars: 50, Limit: 5},
			expected: "created:>=2024-05-01 stars:>50 language:go",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.query.String())
		})
	}
}

func TestGitHubGateway_SearchTrending(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expectError    bool
		expectedStatus int
		expectedRepos  int
	}{
		{
			name: "happy path - returns repository summaries",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.String(), "/search/repositories")
				assert.Contains(t, r.URL.RawQuery, "sort=stars")
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{"total_count": 2, "items": [
					{"name": "repo-a", "full_name": "org/repo-a", "owner": {"login": "org"}, "stargazers_count": 500, "forks_count": 42, "language": "Go", "html_url": "https://github.com/org/repo-a", "open_issues_count": 3, "license": {"key": "mit"}},
					{"name": "repo-b", "full_name": "org/repo-b", "owner": {"login": "org"}, "stargazers_count": 200, "forks_count": 7}
				]}`)
			},
			expectedRepos: 2,
		},
		{
			name: "error case - GitHub API returns an error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectError:    true,
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			query := TrendingQuery{CreatedAfter: time.Now().AddDate(0, 0, -1), MinStars: 100, Limit: 10}
			repos, err := gateway.SearchTrending(context.Background(), query)

			if tc.expectError {
				require.Error(t, err)
				var fetchErr *FetchError
				require.True(t, errors.As(err, &fetchErr))
				assert.Equal(t, tc.expectedStatus, fetchErr.StatusCode)
				return
			}
			require.NoError(t, err)
			require.Len(t, repos, tc.expectedRepos)
			assert.Equal(t, "org", repos[0].Owner)
			assert.Equal(t, "repo-a", repos[0].Name)
			assert.Equal(t, 500, repos[0].Stars)
			assert.Equal(t, 42, repos[0].Forks)
			assert.True(t, repos[0].HasLicense)
			assert.False(t, repos[1].HasLicense)
		})
	}
}

func TestGitHubGateway_FetchRepository(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.String(), "/repos/org/repo-a")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"name": "repo-a", "full_name": "org/repo-a", "owner": {"login": "org"}, "description": "a tool", "stargazers_count": 123, "forks_count": 4, "language": "Go", "html_url": "https://github.com/org/repo-a", "open_issues_count": 9}`)
	})
	gateway, server := setupTestGateway(t, handler)
	defer server.Close()

	summary, err := gateway.FetchRepository(context.Background(), "org", "repo-a")

	require.NoError(t, err)
	// Metadata values pass through unchanged.
	assert.Equal(t, "org/repo-a", summary.FullName)
	assert.Equal(t, "a tool", summary.Description)
	assert.Equal(t, 123, summary.Stars)
	assert.Equal(t, 4, summary.Forks)
	assert.Equal(t, 9, summary.OpenIssues)
	assert.Equal(t, "Go", summary.Language)
}

func TestGitHubGateway_FetchReadme(t *testing.T) {
	testCases := []struct {
		name            string
		handlerFunc     func(w http.ResponseWriter, r *http.Request)
		expectedContent string
		expectError     bool
	}{
		{
			name: "happy path - decodes base64 content",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.String(), "/repos/org/repo-a/readme")
				w.WriteHeader(http.StatusOK)
				// "Hello World" in base64.
				fmt.Fprint(w, `{"type": "file", "encoding": "base64", "content": "SGVsbG8gV29ybGQ="}`)
			},
			expectedContent: "Hello World",
		},
		{
			name: "missing readme - 404 is not an error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectedContent: "",
		},
		{
			name: "error case - server failure propagates",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectError: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			content, err := gateway.FetchReadme(context.Background(), "org", "repo-a")

			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedContent, content)
		})
	}
}

func TestGitHubGateway_FetchIssues(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.String(), "/repos/org/repo-a/issues")
		assert.Contains(t, r.URL.RawQuery, "state=all")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `[
			{"number": 1, "title": "bug report", "comments": 12, "state": "open", "html_url": "https://github.com/org/repo-a/issues/1"},
			{"number": 2, "title": "a pull request", "comments": 3, "state": "open", "html_url": "https://github.com/org/repo-a/pull/2", "pull_request": {"url": "https://api.github.com/repos/org/repo-a/pulls/2"}}
		]`)
	})
	gateway, server := setupTestGateway(t, handler)
	defer server.Close()

	issues, err := gateway.FetchIssues(context.Background(), "org", "repo-a", "all", 10)

	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, 1, issues[0].Number)
	assert.Equal(t, "bug report", issues[0].Title)
	assert.Equal(t, 12, issues[0].Comments)
	assert.False(t, issues[0].IsPullRequest)
	assert.True(t, issues[1].IsPullRequest)
}
