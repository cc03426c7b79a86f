// Package models defines the data structures shared across the crawl,
// extraction, scoring and reporting stages.
package models

// HeadingSet holds the H1-H3 headings captured from a page.
type HeadingSet struct {
	H1 []string `json:"h1"`
	H2 []string `json:"h2"`
	H3 []string `json:"h3"`
}

// ImageRef points at one image with a problematic alt attribute.
type ImageRef struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// ImageStats summarizes alt-attribute coverage over a page's images.
// Only "content images" count toward Evaluable/WithoutAlt: images inside
// navigation regions, logo/decorative images and anchor-wrapped images are
// excluded before evaluation.
type ImageStats struct {
	Total           int        `json:"total"`
	Evaluable       int        `json:"evaluable"`
	WithoutAlt      int        `json:"without_alt"`
	PoorAltExamples []ImageRef `json:"poor_alt_examples,omitempty"`
}

// LinkStats summarizes the internal links found inside the main content
// region. Navigation links never contribute here.
type LinkStats struct {
	Count           int      `json:"count"`
	AnchorDiversity float64  `json:"anchor_diversity"`
	AnchorTexts     []string `json:"anchor_texts,omitempty"`
	RelevanceScore  float64  `json:"relevance_score"`
}

// LangLink is one hreflang alternate declaration.
type LangLink struct {
	Href     string `json:"href"`
	Hreflang string `json:"hreflang"`
}

// PageSignals is the immutable record of everything extracted from one
// crawled page. It is created once per successful fetch and never mutated
// afterwards; scores are derived views over it.
//
// BodyCharCount and InternalLinks are computed only over the detected main
// content region. That exclusion is load-bearing for every downstream score.
type PageSignals struct {
	URL             string            `json:"url"`
	Title           string            `json:"title"`
	MetaDescription string            `json:"meta_description"`
	MetaKeywords    []string          `json:"meta_keywords,omitempty"`
	Headings        HeadingSet        `json:"headings"`
	MainContentText string            `json:"main_content_text"`
	ContentSource   string            `json:"content_source"` // which strategy detected the main content
	BodyCharCount   int               `json:"body_char_count"`
	Images          ImageStats        `json:"images"`
	InternalLinks   LinkStats         `json:"internal_links"`
	DiscoveredLinks []string          `json:"discovered_links,omitempty"` // same-domain links for the frontier

	RobotsMeta   string `json:"robots_meta"`
	CanonicalURL string `json:"canonical_url"`
	ViewportMeta string `json:"viewport_meta"`
	IsSecure     bool   `json:"is_secure"`

	HreflangLinks       []LangLink        `json:"hreflang_links,omitempty"`
	HTMLLang            string            `json:"html_lang,omitempty"`
	Language            string            `json:"language,omitempty"` // detected ISO 639-1 code
	OGPFields           map[string]string `json:"ogp_fields,omitempty"`
	TwitterFields       map[string]string `json:"twitter_fields,omitempty"`
	StructuredDataTypes []string          `json:"structured_data_types,omitempty"`

	HasOrderedList   bool `json:"has_ordered_list"`
	HasUnorderedList bool `json:"has_unordered_list"`
	HasTable         bool `json:"has_table"`
	HasCode          bool `json:"has_code"`
	FAQLike          bool `json:"faq_like"`
	HowToLike        bool `json:"howto_like"`
	TOCLike          bool `json:"toc_like"`
	UpdatedMention   bool `json:"updated_mention"`
	// UpdatedDate is the normalized (YYYY-MM-DD) form of the matched update
	// mention when it parses as a date. Informational only.
	UpdatedDate string `json:"updated_date,omitempty"`

	TitleH1Similarity float64 `json:"title_h1_similarity"`
}

// PageEnrichment carries readability-derived metadata used in report
// digests only. Nothing here carries scoring weight.
type PageEnrichment struct {
	Byline        string `json:"byline,omitempty"`
	Excerpt       string `json:"excerpt,omitempty"`
	SiteName      string `json:"site_name,omitempty"`
	PublishedTime string `json:"published_time,omitempty"`
}
