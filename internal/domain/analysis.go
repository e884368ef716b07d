// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// RepoSummary holds the metadata of a single repository as returned by the
// GitHub API. Fields are copied through unchanged from the API response and
// are immutable once fetched.
type RepoSummary struct {
	Owner       string    `json:"owner"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	URL         string    `json:"url"`
	OpenIssues  int       `json:"open_issues"`
	HasLicense  bool      `json:"has_license"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Issue is one repository issue. IsPullRequest marks entries the issues
// endpoint returns for pull requests; those never appear in an analysis
// record, so the flag is not serialized.
type Issue struct {
	Number        int       `json:"number"`
	Title         string    `json:"title"`
	Comments      int       `json:"comments"`
	State         string    `json:"state"`
	URL           string    `json:"url"`
	CreatedAt     time.Time `json:"created_at"`
	IsPullRequest bool      `json:"-"`
}

// ProblemDefinition captures whether the README states the problem the
// project solves.
type ProblemDefinition struct {
	Description         string `json:"description"`
	HasProblemStatement bool   `json:"has_problem_statement"`
	ReadmeLength        int    `json:"readme_length"`
}

// ArchitectureTools captures the tech stack mentioned in the README.
type ArchitectureTools struct {
	PrimaryLanguage        string   `json:"primary_language"`
	DetectedTechnologies   []string `json:"detected_technologies"`
	HasArchitectureDiagram bool     `json:"has_architecture_diagram"`
}

// DataFlow captures how the README describes data movement.
type DataFlow struct {
	MentionsAPI      bool `json:"mentions_api"`
	MentionsDatabase bool `json:"mentions_database"`
	MentionsAsync    bool `json:"mentions_async"`
	HasFlowDiagram   bool `json:"has_flow_diagram"`
}

// Documentation captures documentation quality signals.
type Documentation struct {
	HasReadme       bool `json:"has_readme"`
	ReadmeLength    int  `json:"readme_length"`
	HasInstallation bool `json:"has_installation"`
	HasUsage        bool `json:"has_usage"`
	HasContributing bool `json:"has_contributing"`
	HasLicense      bool `json:"has_license"`
	OpenIssues      int  `json:"open_issues"`
}

// Analysis holds the result of analyzing a single repository.
// It is the core domain entity of this application: created once per
// analysis call and never mutated afterwards. Each signal group is computed
// independently from the same inputs (README text, metadata, issue list).
type Analysis struct {
	Repository        RepoSummary       `json:"repository"`
	ProblemDefinition ProblemDefinition `json:"problem_definition"`
	ArchitectureTools ArchitectureTools `json:"architecture_tools"`
	DataFlow          DataFlow          `json:"data_flow"`
	Documentation     Documentation     `json:"documentation"`
	HotDiscussions    []Issue           `json:"hot_discussions"`
}
