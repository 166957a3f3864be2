package catalog

import "testing"

func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := len(c.Categories); got != 24 {
		t.Errorf("len(Categories) = %d, want 24", got)
	}
	if c.CategoryKeys()[0] != "generalKnowledge" {
		t.Errorf("first category = %q, want generalKnowledge", c.CategoryKeys()[0])
	}
	if c.LanguageCodes()[0] != "en" {
		t.Errorf("first language = %q, want en", c.LanguageCodes()[0])
	}

	tests := []struct {
		key, want string
	}{
		{"technology", "Technology"},
		{"businessAndFinance", "Business & Finance"},
		{"scienceAndNature", "Science & Nature"},
		{"unknownTopic", "General Knowledge"},
		{"", "General Knowledge"},
	}
	for _, tt := range tests {
		if got := c.EnglishLabel(tt.key); got != tt.want {
			t.Errorf("EnglishLabel(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}

	if got := c.LanguageName("fr"); got != "French" {
		t.Errorf("LanguageName(fr) = %q, want French", got)
	}
	if got := c.LanguageName("xx"); got != "English" {
		t.Errorf("LanguageName(xx) = %q, want English", got)
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	tests := map[string]string{
		"empty":          ``,
		"no languages":   "categories:\n  - key: a\n    label: A\n",
		"dup category":   "categories:\n  - key: a\n    label: A\n  - key: a\n    label: B\nlanguages:\n  - code: en\n    name: English\n",
		"blank label":    "categories:\n  - key: a\n    label: \"\"\nlanguages:\n  - code: en\n    name: English\n",
		"malformed yaml": "categories: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Error("Parse() error = nil, want error")
			}
		})
	}
}
