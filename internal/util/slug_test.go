package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple email",
			input:    "jane@example.com",
			expected: "jane-example-com",
		},
		{
			name:     "email with dots and plus",
			input:    "jane.doe+solar@example.com",
			expected: "jane-doe-solar-example-com",
		},
		{
			name:     "with spaces",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "with accents",
			input:    "Café résumé",
			expected: "cafe-resume",
		},
		{
			name:     "german umlauts",
			input:    "Über München",
			expected: "uber-munchen",
		},
		{
			name:     "multiple separators collapse",
			input:    "a..b__c  d",
			expected: "a-b-c-d",
		},
		{
			name:     "all special characters",
			input:    "!#$%^&*()",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}
