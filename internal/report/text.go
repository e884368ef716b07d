package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/trending-analyzer/internal/domain"
)

const separator = "================================================================================"

// TextWriter outputs human-readable text reports. The layout is fixed: a
// header with the generation timestamp, one section per repository with the
// four signal groups and the hot-discussions list, and a closing summary
// block with batch star statistics.
type TextWriter struct {
	baseWriter
	now func() time.Time
}

// TextOption configures a TextWriter.
type TextOption func(*TextWriter)

// WithClock overrides the timestamp source. With a fixed clock the output is
// fully deterministic, which the tests rely on.
func WithClock(now func() time.Time) TextOption {
	return func(w *TextWriter) {
		w.now = now
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the analyses as a formatted text report.
func (w *TextWriter) Write(analyses []domain.Analysis) (int, error) {
	var b strings.Builder

	b.WriteString("GitHub Trending Repository Analysis Report\n")
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", w.now().Format("2006-01-02 15:04:05"))

	for i, analysis := range analyses {
		writeRepository(&b, i+1, analysis)
	}

	writeSummary(&b, analyses)

	b.WriteString("\n" + separator + "\n")
	b.WriteString("Report generated by trending-analyzer\n")
	b.WriteString(separator + "\n")

	return io.WriteString(w.output, b.String())
}

func writeRepository(b *strings.Builder, index int, analysis domain.Analysis) {
	repo := analysis.Repository

	b.WriteString("\n" + separator + "\n")
	fmt.Fprintf(b, "Repository %d: %s\n", index, repo.FullName)
	b.WriteString(separator + "\n\n")

	b.WriteString("Basic Information\n")
	fmt.Fprintf(b, "  Stars:       %d\n", repo.Stars)
	fmt.Fprintf(b, "  Forks:       %d\n", repo.Forks)
	fmt.Fprintf(b, "  Language:    %s\n", orNA(repo.Language))
	fmt.Fprintf(b, "  Description: %s\n", repo.Description)
	fmt.Fprintf(b, "  URL:         %s\n\n", repo.URL)

	prob := analysis.ProblemDefinition
	b.WriteString("#1 Problem Definition\n")
	fmt.Fprintf(b, "  - Has clear problem statement: %s\n", yesNo(prob.HasProblemStatement))
	fmt.Fprintf(b, "  - README length: %d characters\n\n", prob.ReadmeLength)

	arch := analysis.ArchitectureTools
	b.WriteString("#2 Architecture & Tools\n")
	fmt.Fprintf(b, "  - Primary language: %s\n", orNA(arch.PrimaryLanguage))
	if len(arch.DetectedTechnologies) > 0 {
		fmt.Fprintf(b, "  - Detected technologies: %s\n", strings.Join(arch.DetectedTechnologies, ", "))
	}
	fmt.Fprintf(b, "  - Has architecture diagram: %s\n\n", yesNo(arch.HasArchitectureDiagram))

	flow := analysis.DataFlow
	b.WriteString("#3 Data Flow\n")
	fmt.Fprintf(b, "  - Mentions API: %s\n", yesNo(flow.MentionsAPI))
	fmt.Fprintf(b, "  - Mentions database: %s\n", yesNo(flow.MentionsDatabase))
	fmt.Fprintf(b, "  - Mentions async: %s\n", yesNo(flow.MentionsAsync))
	fmt.Fprintf(b, "  - Has flow diagram: %s\n\n", yesNo(flow.HasFlowDiagram))

	docs := analysis.Documentation
	b.WriteString("#4 Documentation\n")
	fmt.Fprintf(b, "  - Has README: %s\n", yesNo(docs.HasReadme))
	fmt.Fprintf(b, "  - Has installation guide: %s\n", yesNo(docs.HasInstallation))
	fmt.Fprintf(b, "  - Has usage examples: %s\n", yesNo(docs.HasUsage))
	fmt.Fprintf(b, "  - Has contributing guide: %s\n", yesNo(docs.HasContributing))
	fmt.Fprintf(b, "  - Has license: %s\n", yesNo(docs.HasLicense))
	fmt.Fprintf(b, "  - Open issues: %d\n", docs.OpenIssues)

	if len(analysis.HotDiscussions) > 0 {
		b.WriteString("\nHot Discussions\n")
		for j, issue := range analysis.HotDiscussions {
			fmt.Fprintf(b, "  %d. %s\n", j+1, issue.Title)
			fmt.Fprintf(b, "     Issue #%d | %d comments | %s\n", issue.Number, issue.Comments, issue.State)
			fmt.Fprintf(b, "     %s\n", issue.URL)
		}
	}
}

// writeSummary renders batch-level star statistics. Skipped for an empty
// batch since mean and median are undefined there.
func writeSummary(b *strings.Builder, analyses []domain.Analysis) {
	if len(analyses) == 0 {
		return
	}
	starCounts := make([]float64, 0, len(analyses))
	for _, analysis := range analyses {
		starCounts = append(starCounts, float64(analysis.Repository.Stars))
	}
	mean, err := stats.Mean(starCounts)
	if err != nil {
		return
	}
	median, err := stats.Median(starCounts)
	if err != nil {
		return
	}

	b.WriteString("\n" + separator + "\n")
	b.WriteString("Summary\n")
	fmt.Fprintf(b, "  Repositories analyzed: %d\n", len(analyses))
	fmt.Fprintf(b, "  Mean stars:   %.1f\n", mean)
	fmt.Fprintf(b, "  Median stars: %.1f\n", median)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
