// Package report renders an AnalysisDigest for humans. An external report
// writer can be plugged in as an opaque text transformer; when it is absent
// or fails, a deterministic built-in renderer produces the report instead.
// Score computation never depends on the writer.
package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"seolens/models"
)

// Writer turns the serialized digest into a finished report. Implementations
// may call out to anything; failures are recoverable.
type Writer func(digestText string) (string, error)

// Generate renders the digest through the writer, falling back to the
// built-in renderer when the writer is nil or fails.
func Generate(digest *models.AnalysisDigest, writer Writer, logger *slog.Logger) string {
	if writer != nil {
		text, err := json.MarshalIndent(digest, "", "  ")
		if err == nil {
			report, werr := writer(string(text))
			if werr == nil && strings.TrimSpace(report) != "" {
				return report
			}
			if werr != nil {
				logger.Warn("report writer failed, using built-in renderer", "error", werr)
			}
		} else {
			logger.Warn("digest serialization failed, using built-in renderer", "error", err)
		}
	}
	return Fallback(digest)
}

// Fallback is the deterministic built-in report. Pages are listed worst
// score first so problems surface at the top.
func Fallback(digest *models.AnalysisDigest) string {
	var b strings.Builder

	stats := digest.Stats()
	fmt.Fprintf(&b, "# SEO Analysis: %s\n\n", digest.Domain)
	fmt.Fprintf(&b, "Pages analyzed: %d\n", len(digest.Pages))
	if len(digest.Pages) > 0 {
		fmt.Fprintf(&b, "Comprehensive score: avg %.1f, min %.0f, max %.0f (of 100)\n", stats.Avg, stats.Min, stats.Max)
	}
	b.WriteString("\n")

	writeSummary(&b, &digest.Summary)
	writeMetaCoverage(&b, len(digest.Pages), digest.Meta)
	if digest.Contextual != nil {
		writeContextual(&b, digest.TargetURL, digest.Contextual)
	}
	writePages(&b, digest.Pages)
	writeSiteIssues(&b, digest.Pages)

	return b.String()
}

func writeSummary(b *strings.Builder, summary *models.SiteStructureSummary) {
	b.WriteString("## Site structure\n\n")
	depths := make([]int, 0, len(summary.DepthDistribution))
	for d := range summary.DepthDistribution {
		depths = append(depths, d)
	}
	sort.Ints(depths)
	for _, d := range depths {
		fmt.Fprintf(b, "- depth %d: %d page(s)\n", d, summary.DepthDistribution[d])
	}
	if len(summary.TopKeywords) > 0 {
		names := make([]string, len(summary.TopKeywords))
		for i, kw := range summary.TopKeywords {
			names[i] = fmt.Sprintf("%s (%d)", kw.Keyword, kw.Count)
		}
		fmt.Fprintf(b, "- top URL keywords: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(b, "- avg internal links per page: %.1f\n", summary.AvgInternalLinks)
	fmt.Fprintf(b, "- avg main-content characters: %.0f\n\n", summary.AvgBodyChars)
}

// writeMetaCoverage lists informational metadata gaps. These never affect
// scores; they are surfaced so a site owner can decide whether they matter.
func writeMetaCoverage(b *strings.Builder, pageCount int, mc models.MetaCoverage) {
	gaps := []struct {
		label string
		count int
	}{
		{"Open Graph tags", mc.MissingOGP},
		{"Twitter Card tags", mc.MissingTwitterCard},
		{"structured data", mc.MissingStructuredData},
		{"canonical URL", mc.MissingCanonical},
		{"viewport meta", mc.MissingViewport},
	}
	var lines []string
	for _, g := range gaps {
		if g.count > 0 {
			lines = append(lines, fmt.Sprintf("- %d/%d page(s) missing %s\n", g.count, pageCount, g.label))
		}
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString("## Metadata coverage (informational)\n\n")
	for _, line := range lines {
		b.WriteString(line)
	}
	b.WriteString("\n")
}

func writeContextual(b *strings.Builder, targetURL string, eval *models.ContextualEvaluation) {
	fmt.Fprintf(b, "## Contextual evaluation: %s\n\n", targetURL)
	fmt.Fprintf(b, "Base score %.0f, contextual score %.0f\n", eval.BaseScore, eval.ContextualScore)
	if len(eval.Adjustments) > 0 {
		keys := make([]string, 0, len(eval.Adjustments))
		for k := range eval.Adjustments {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(b, "- %s: %+.0f\n", k, eval.Adjustments[k])
		}
	}
	for _, s := range eval.Suggestions {
		fmt.Fprintf(b, "- suggestion: %s\n", s)
	}
	b.WriteString("\n")
}

func writePages(b *strings.Builder, pages []models.PageAnalysis) {
	b.WriteString("## Pages (lowest score first)\n\n")
	ordered := make([]models.PageAnalysis, len(pages))
	copy(ordered, pages)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score.ComprehensiveScore < ordered[j].Score.ComprehensiveScore
	})

	for _, p := range ordered {
		fmt.Fprintf(b, "### %s (%.0f/100)\n\n", p.Signals.URL, p.Score.ComprehensiveScore)
		for _, cat := range []models.CategoryName{models.CategoryTechnical, models.CategoryContent, models.CategoryPlanning} {
			cs := p.Score.CategoryScores[cat]
			fmt.Fprintf(b, "- %s: %.0f/%.0f\n", cat, cs.Score, cs.Max)
		}
		if failed := failedChecks(p.Score.CheckResults); len(failed) > 0 {
			fmt.Fprintf(b, "- failed checks: %s\n", strings.Join(failed, ", "))
		}
		if p.Enrichment != nil {
			if p.Enrichment.Byline != "" {
				fmt.Fprintf(b, "- byline: %s\n", p.Enrichment.Byline)
			}
			if p.Enrichment.PublishedTime != "" {
				fmt.Fprintf(b, "- published: %s\n", p.Enrichment.PublishedTime)
			}
		}
		b.WriteString("\n")
	}
}

// writeSiteIssues aggregates the checks that fail on more than half of the
// analyzed pages, pointing at site-wide patterns rather than per-page noise.
func writeSiteIssues(b *strings.Builder, pages []models.PageAnalysis) {
	if len(pages) < 2 {
		return
	}
	failCounts := make(map[models.CheckID]int)
	for _, p := range pages {
		for id, ok := range p.Score.CheckResults {
			if !ok {
				failCounts[id]++
			}
		}
	}
	var widespread []string
	for id, n := range failCounts {
		if n*2 > len(pages) {
			widespread = append(widespread, fmt.Sprintf("%s (%d/%d pages)", id, n, len(pages)))
		}
	}
	if len(widespread) == 0 {
		return
	}
	sort.Strings(widespread)
	b.WriteString("## Site-wide issues\n\n")
	for _, issue := range widespread {
		fmt.Fprintf(b, "- %s\n", issue)
	}
	b.WriteString("\n")
}

func failedChecks(results map[models.CheckID]bool) []string {
	var failed []string
	for id, ok := range results {
		if !ok {
			failed = append(failed, string(id))
		}
	}
	sort.Strings(failed)
	return failed
}
