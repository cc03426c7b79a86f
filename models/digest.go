package models

// PageAnalysis pairs one page's extracted signals with its rubric score.
type PageAnalysis struct {
	Signals    PageSignals     `json:"signals"`
	Score      ScoreResult     `json:"score"`
	Enrichment *PageEnrichment `json:"enrichment,omitempty"`
}

// AnalysisDigest is the structured output handed to the external
// report-writer collaborator. It is fully recomputable from the signals it
// carries; no score in it depends on the report writer.
type AnalysisDigest struct {
	Domain     string                `json:"domain"`
	Pages      []PageAnalysis        `json:"pages"`
	Summary    SiteStructureSummary  `json:"summary"`
	Meta       MetaCoverage          `json:"meta_coverage"`
	Contextual *ContextualEvaluation `json:"contextual,omitempty"` // set for single-page analysis
	TargetURL  string                `json:"target_url,omitempty"`
}

// MetaCoverage counts pages missing the informational metadata captures.
// None of these carry scoring weight.
type MetaCoverage struct {
	MissingOGP            int `json:"missing_ogp"`
	MissingTwitterCard    int `json:"missing_twitter_card"`
	MissingStructuredData int `json:"missing_structured_data"`
	MissingCanonical      int `json:"missing_canonical"`
	MissingViewport       int `json:"missing_viewport"`
}

// CoverageOf tallies the metadata gaps across a page set.
func CoverageOf(pages []PageAnalysis) MetaCoverage {
	var mc MetaCoverage
	for _, p := range pages {
		if len(p.Signals.OGPFields) == 0 {
			mc.MissingOGP++
		}
		if len(p.Signals.TwitterFields) == 0 {
			mc.MissingTwitterCard++
		}
		if len(p.Signals.StructuredDataTypes) == 0 {
			mc.MissingStructuredData++
		}
		if p.Signals.CanonicalURL == "" {
			mc.MissingCanonical++
		}
		if p.Signals.ViewportMeta == "" {
			mc.MissingViewport++
		}
	}
	return mc
}

// ScoreStats are batch-level statistics over comprehensive scores.
type ScoreStats struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Stats computes the average, minimum and maximum comprehensive score.
func (d *AnalysisDigest) Stats() ScoreStats {
	if len(d.Pages) == 0 {
		return ScoreStats{}
	}
	stats := ScoreStats{
		Min: d.Pages[0].Score.ComprehensiveScore,
		Max: d.Pages[0].Score.ComprehensiveScore,
	}
	var total float64
	for _, p := range d.Pages {
		s := p.Score.ComprehensiveScore
		total += s
		if s < stats.Min {
			stats.Min = s
		}
		if s > stats.Max {
			stats.Max = s
		}
	}
	stats.Avg = total / float64(len(d.Pages))
	return stats
}
