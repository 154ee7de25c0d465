package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Practice Areas",
			expected: "practice-areas",
		},
		{
			name:     "with special characters",
			input:    "Personal Injury, Explained!",
			expected: "personal-injury-explained",
		},
		{
			name:     "with accents",
			input:    "José Muñoz",
			expected: "jose-munoz",
		},
		{
			name:     "with multiple spaces",
			input:    "Car   Accidents",
			expected: "car-accidents",
		},
		{
			name:     "with hyphens",
			input:    "Slip - and - Fall",
			expected: "slip-and-fall",
		},
		{
			name:     "all special characters",
			input:    "!@#$%^&*()",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"jane-doe", "overview", "faq-2"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}

	invalid := []string{"", "-leading", "trailing-", "double--hyphen", "Upper", "with space"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
