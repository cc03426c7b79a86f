package models

// CategoryName identifies one of the three fixed rubric categories.
type CategoryName string

const (
	CategoryTechnical CategoryName = "technical"
	CategoryContent   CategoryName = "content"
	CategoryPlanning  CategoryName = "planning"
)

// CheckID identifies one binary rubric check. Each check result is retained
// individually so a caller can explain why a score was earned.
type CheckID string

const (
	// Technical (max 40)
	CheckIndexable         CheckID = "indexable"
	CheckCanonical         CheckID = "canonical"
	CheckURLShallow        CheckID = "url_shallow"
	CheckHeadingsHierarchy CheckID = "headings_hierarchy"
	CheckInternalLinks     CheckID = "internal_links"

	// Content (max 40)
	CheckBodyLength    CheckID = "body_length"
	CheckTitleH1Align  CheckID = "title_h1_align"
	CheckReadability   CheckID = "readability_blocks"
	CheckAltCoverage   CheckID = "alt_coverage"
	CheckH1Present     CheckID = "h1_present"

	// Planning (max 20)
	CheckPlanningBlocks CheckID = "howto_faq_toc"
	CheckFreshness      CheckID = "freshness"
)

// CategoryScore is the earned/max breakdown for one category.
type CategoryScore struct {
	Score      float64 `json:"score"`
	Max        float64 `json:"max"`
	Percentage float64 `json:"percentage"`
}

// ScoreResult is the fixed-rubric evaluation of one PageSignals. It is a
// pure derivation: the same signals always produce the same result.
type ScoreResult struct {
	ComprehensiveScore float64                        `json:"comprehensive_score"`
	CategoryScores     map[CategoryName]CategoryScore `json:"category_scores"`
	CheckResults       map[CheckID]bool               `json:"check_results"`
}
