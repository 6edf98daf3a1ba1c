package services

import "testing"

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Knife Skills Basics", "knife-skills-basics"},
		{"Sauces & Stocks", "sauces-stocks"},
		{"  Baking 101!  ", "baking-101"},
		{"UPPER case", "upper-case"},
		{"many   spaces -- and dashes", "many-spaces-and-dashes"},
		{"already-a-slug", "already-a-slug"},
		{"trailing punctuation?!", "trailing-punctuation"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := GenerateSlug(tt.title); got != tt.want {
				t.Errorf("GenerateSlug(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
