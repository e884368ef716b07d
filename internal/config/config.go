// Package config holds the analyzer configuration: the trending search
// heuristic and every keyword set the analyzer scans for. All values have
// built-in defaults; an optional YAML file overrides them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Window presets for the trending search.
const (
	SinceDaily   = "daily"
	SinceWeekly  = "weekly"
	SinceMonthly = "monthly"
)

// Trending controls how the best-effort trending batch is selected. There is
// no real trending endpoint, so these criteria are a heuristic, not a
// contract.
type Trending struct {
	// Since is the creation-time window preset: daily, weekly or monthly.
	Since string `yaml:"since"`
	// MinStars excludes repositories at or below this star count.
	MinStars int `yaml:"min_stars"`
	// Limit caps the number of search results (single page).
	Limit int `yaml:"limit"`
}

// WindowDays maps the Since preset to a number of days.
func (t Trending) WindowDays() (int, error) {
	switch t.Since {
	case SinceDaily:
		return 1, nil
	case SinceWeekly:
		return 7, nil
	case SinceMonthly:
		return 30, nil
	default:
		return 0, fmt.Errorf("unknown trending window %q (want daily, weekly or monthly)", t.Since)
	}
}

// Keywords holds the keyword sets behind every README-derived signal.
// All matching is case-insensitive substring matching.
type Keywords struct {
	ProblemStatement    []string `yaml:"problem_statement"`
	Technologies        []string `yaml:"technologies"`
	ArchitectureDiagram []string `yaml:"architecture_diagram"`
	API                 []string `yaml:"api"`
	Database            []string `yaml:"database"`
	Async               []string `yaml:"async"`
	FlowDiagram         []string `yaml:"flow_diagram"`
	Installation        []string `yaml:"installation"`
	Usage               []string `yaml:"usage"`
	Contributing        []string `yaml:"contributing"`
}

// Config is the full analyzer configuration.
type Config struct {
	Trending Trending `yaml:"trending"`
	Keywords Keywords `yaml:"keywords"`
	// MaxTechnologies caps the detected-technologies list per repository.
	MaxTechnologies int `yaml:"max_technologies"`
	// RecentIssues is how many issues to fetch per repository.
	RecentIssues int `yaml:"recent_issues"`
	// TopIssues is how many hot discussions to keep per analysis.
	TopIssues int `yaml:"top_issues"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Trending: Trending{
			Since:    SinceDaily,
			MinStars: 100,
			Limit:    10,
		},
		Keywords: Keywords{
			ProblemStatement: []string{"problem", "solution", "use case"},
			Technologies: []string{
				"react", "vue", "angular", "python", "javascript", "typescript",
				"docker", "kubernetes", "aws", "gcp", "azure", "tensorflow",
				"pytorch", "mongodb", "postgresql", "redis", "node.js", "go",
				"rust", "java", "spring", "django", "flask", "fastapi",
			},
			ArchitectureDiagram: []string{"architecture", "diagram"},
			API:                 []string{"api"},
			Database:            []string{"database", "db"},
			Async:               []string{"async", "asynchronous"},
			FlowDiagram:         []string{"flow", "pipeline"},
			Installation:        []string{"install"},
			Usage:               []string{"usage", "example"},
			Contributing:        []string{"contribut"},
		},
		MaxTechnologies: 10,
		RecentIssues:    10,
		TopIssues:       5,
	}
}

// Load returns the default configuration overlaid with the YAML file at path.
// An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if _, err := cfg.Trending.WindowDays(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}
