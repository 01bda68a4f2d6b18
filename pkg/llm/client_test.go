package llm

import "testing"

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"tags":["IPO"]}`,
			want:  `{"tags":["IPO"]}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"tags\":[\"IPO\"]}\n```",
			want:  `{"tags":["IPO"]}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"tags\":[\"IPO\"]}\n```",
			want:  `{"tags":["IPO"]}`,
		},
		{
			name:  "slices prose around JSON",
			input: `Here is the classification: {"sentiment":"neutral"} Hope this helps!`,
			want:  `{"sentiment":"neutral"}`,
		},
		{
			name:  "trims surrounding whitespace",
			input: "  {\"score\":80}  ",
			want:  `{"score":80}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsDailyLimit(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"Rate limit reached for tokens per day (TPD)", true},
		{"you have exceeded your quota per day", true},
		{"TPD limit hit", true},
		{"Rate limit reached for requests per minute", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isDailyLimit(tt.message); got != tt.want {
			t.Errorf("isDailyLimit(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}
