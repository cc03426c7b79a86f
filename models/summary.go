package models

// KeywordCount is one ranked keyword from the site-wide frequency table.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// SiteStructureSummary aggregates one crawl batch. It is built once when the
// batch completes and is read-only afterwards. No scoring weight attaches to
// these aggregates directly; they exist to contextualize single-page
// evaluation.
type SiteStructureSummary struct {
	PageCount         int            `json:"page_count"`
	DepthDistribution map[int]int    `json:"depth_distribution"`
	TopKeywords       []KeywordCount `json:"top_keywords"`
	AvgInternalLinks  float64        `json:"avg_internal_links"`
	AvgBodyChars      float64        `json:"avg_body_chars"`
}

// ContextualEvaluation adjusts one page's base score using site-wide
// statistics. ContextualScore is always clamped to [0,100].
type ContextualEvaluation struct {
	BaseScore       float64            `json:"base_score"`
	ContextualScore float64            `json:"contextual_score"`
	Adjustments     map[string]float64 `json:"adjustments"`
	Suggestions     []string           `json:"suggestions"`
}
