// Package lexicon holds the keyword and pattern tables used by signal
// extraction. The tables are versioned so the rubric can evolve without
// touching extraction logic, and can be overridden from a YAML file.
package lexicon

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Tables is one versioned set of extraction vocabularies. The defaults carry
// both English and Japanese terms.
type Tables struct {
	Version string `yaml:"version"`

	// Navigation classification
	NavigationTags     []string `yaml:"navigation_tags"`
	NavigationRoles    []string `yaml:"navigation_roles"`
	NavigationKeywords []string `yaml:"navigation_keywords"`

	// Image classification
	LogoKeywords       []string `yaml:"logo_keywords"`
	DecorativeKeywords []string `yaml:"decorative_keywords"`
	HomeHrefs          []string `yaml:"home_hrefs"`

	// Main-content candidates
	ContentClasses []string `yaml:"content_classes"`

	// Planning signals
	FAQKeywords   []string `yaml:"faq_keywords"`
	HowToKeywords []string `yaml:"howto_keywords"`
	TOCKeywords   []string `yaml:"toc_keywords"`

	// Tokens ignored when comparing anchor texts against page keywords
	StopWords []string `yaml:"stop_words"`

	// Patterns (compiled lazily, cached)
	PoorAltPatterns []string `yaml:"poor_alt_patterns"`
	UpdatedPattern  string   `yaml:"updated_pattern"`

	poorAltRegexps []*regexp.Regexp
	updatedRegexp  *regexp.Regexp
}

// Default returns the built-in v1 tables.
func Default() *Tables {
	return &Tables{
		Version: "v1",

		NavigationTags:  []string{"header", "footer", "nav"},
		NavigationRoles: []string{"navigation", "banner", "contentinfo", "complementary"},
		NavigationKeywords: []string{
			"header", "footer", "nav", "menu", "navigation",
			"sidebar", "aside", "side", "breadcrumb", "gnav", "global-nav",
			"hamburger", "drawer", "top-menu", "bottom-menu",
		},

		LogoKeywords: []string{
			"logo", "brand", "site-logo", "site-brand", "company-logo",
			"ロゴ", "ブランド", "サイトロゴ",
		},
		DecorativeKeywords: []string{
			"icon", "decoration", "bg", "background", "banner", "hero",
			"thumbnail", "avatar", "profile-pic", "spacer", "separator",
			"アイコン", "装飾", "背景", "バナー",
		},
		HomeHrefs: []string{"/", "/index.html", "/index.php", "/home", ""},

		ContentClasses: []string{
			"entry-content", "post-content", "article-content",
			"blog-content", "content-body", "main-content",
		},

		StopWords: []string{
			"a", "an", "the", "for", "of", "to", "and", "or", "in", "on",
			"at", "by", "with", "is", "are", "was", "be",
			"の", "が", "を", "に", "へ", "と", "は", "で", "も",
		},

		FAQKeywords:   []string{"faq", "よくある質問", "q&a", "質問", "回答"},
		HowToKeywords: []string{"手順", "方法", "やり方", "ステップ", "やること", "how to", "step-by-step"},
		TOCKeywords:   []string{"目次", "contents", "table of contents"},

		PoorAltPatterns: []string{
			`^(画像|image|img|photo|写真|ブログ画像|記事画像)$`,
			`^(画像|image|img|photo)\d+$`,
			`^(fig|figure|pic|picture)\d*$`,
			`^\w+\.(jpg|jpeg|png|gif|webp|svg)$`,
			`^(dsc|img|image)_?\d+$`,
			`^(untitled|名称未設定|noname|no_name|unnamed)$`,
			`^(\s*|xxx|aaa|test|sample|サンプル)$`,
			`^.{1,2}$`,
		},
		UpdatedPattern: `(更新日|最終更新|last\s*updated|updated|更新:?)\s*[：: ]?\s*(\d{4}[./-]\d{1,2}[./-]\d{1,2})`,
	}
}

// LoadFile reads a YAML table file and merges it over the defaults: empty
// fields keep their default value.
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	override := &Tables{}
	if err := yaml.Unmarshal(data, override); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	merged := Default()
	merged.merge(override)
	if err := merged.Compile(); err != nil {
		return nil, err
	}
	return merged, nil
}

func (t *Tables) merge(o *Tables) {
	if o.Version != "" {
		t.Version = o.Version
	}
	if len(o.NavigationTags) > 0 {
		t.NavigationTags = o.NavigationTags
	}
	if len(o.NavigationRoles) > 0 {
		t.NavigationRoles = o.NavigationRoles
	}
	if len(o.NavigationKeywords) > 0 {
		t.NavigationKeywords = o.NavigationKeywords
	}
	if len(o.LogoKeywords) > 0 {
		t.LogoKeywords = o.LogoKeywords
	}
	if len(o.DecorativeKeywords) > 0 {
		t.DecorativeKeywords = o.DecorativeKeywords
	}
	if len(o.HomeHrefs) > 0 {
		t.HomeHrefs = o.HomeHrefs
	}
	if len(o.ContentClasses) > 0 {
		t.ContentClasses = o.ContentClasses
	}
	if len(o.FAQKeywords) > 0 {
		t.FAQKeywords = o.FAQKeywords
	}
	if len(o.HowToKeywords) > 0 {
		t.HowToKeywords = o.HowToKeywords
	}
	if len(o.TOCKeywords) > 0 {
		t.TOCKeywords = o.TOCKeywords
	}
	if len(o.StopWords) > 0 {
		t.StopWords = o.StopWords
	}
	if len(o.PoorAltPatterns) > 0 {
		t.PoorAltPatterns = o.PoorAltPatterns
	}
	if o.UpdatedPattern != "" {
		t.UpdatedPattern = o.UpdatedPattern
	}
}

// Compile pre-compiles the regexp tables. It is idempotent.
func (t *Tables) Compile() error {
	t.poorAltRegexps = t.poorAltRegexps[:0]
	for _, p := range t.PoorAltPatterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return fmt.Errorf("invalid poor-alt pattern %q: %w", p, err)
		}
		t.poorAltRegexps = append(t.poorAltRegexps, re)
	}
	re, err := regexp.Compile(`(?i)` + t.UpdatedPattern)
	if err != nil {
		return fmt.Errorf("invalid updated pattern: %w", err)
	}
	t.updatedRegexp = re
	return nil
}

// PoorAltRegexps returns the compiled poor-alt patterns, compiling defaults
// on first use.
func (t *Tables) PoorAltRegexps() []*regexp.Regexp {
	if t.poorAltRegexps == nil {
		if err := t.Compile(); err != nil {
			return nil
		}
	}
	return t.poorAltRegexps
}

// UpdatedRegexp returns the compiled updated-mention pattern.
func (t *Tables) UpdatedRegexp() *regexp.Regexp {
	if t.updatedRegexp == nil {
		if err := t.Compile(); err != nil {
			return nil
		}
	}
	return t.updatedRegexp
}
