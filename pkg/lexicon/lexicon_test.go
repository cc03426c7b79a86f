package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCompiles(t *testing.T) {
	tables := Default()
	require.NoError(t, tables.Compile())
	assert.Len(t, tables.PoorAltRegexps(), len(tables.PoorAltPatterns))
	assert.NotNil(t, tables.UpdatedRegexp())
}

func TestPoorAltPatterns(t *testing.T) {
	tables := Default()
	tests := []struct {
		alt  string
		poor bool
	}{
		{"image", true},
		{"IMG_1234", true},
		{"photo3", true},
		{"sunset.jpg", true},
		{"untitled", true},
		{"ブログ画像", true},
		{"a golden retriever catching a frisbee", false},
		{"チームの集合写真です", false},
	}
	for _, tt := range tests {
		matched := false
		for _, re := range tables.PoorAltRegexps() {
			if re.MatchString(tt.alt) {
				matched = true
				break
			}
		}
		assert.Equal(t, tt.poor, matched, "alt %q", tt.alt)
	}
}

func TestUpdatedPattern(t *testing.T) {
	re := Default().UpdatedRegexp()
	tests := []struct {
		text     string
		match    bool
		wantDate string
	}{
		{"最終更新: 2024/03/15", true, "2024/03/15"},
		{"Last updated 2023-01-02", true, "2023-01-02"},
		{"更新日：2024.1.5", true, "2024.1.5"},
		{"published long ago", false, ""},
	}
	for _, tt := range tests {
		m := re.FindStringSubmatch(tt.text)
		if !tt.match {
			assert.Nil(t, m, "text %q", tt.text)
			continue
		}
		require.NotNil(t, m, "text %q", tt.text)
		assert.Equal(t, tt.wantDate, m[len(m)-1])
	}
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	yaml := "version: custom\nnavigation_keywords:\n  - topbar\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	tables, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "custom", tables.Version)
	assert.Equal(t, []string{"topbar"}, tables.NavigationKeywords)
	// Untouched fields keep their defaults.
	assert.NotEmpty(t, tables.ContentClasses)
	assert.NotEmpty(t, tables.PoorAltPatterns)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
