package service

import (
	"strings"
	"testing"
)

func TestBotReply(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    string
	}{
		{"tracking question", "Where is my package right now?", "MM-LX-XXXXX"},
		{"delay question", "my delivery is LATE", "open a support ticket"},
		{"address change", "I need to change my address", "new address"},
		{"pricing", "what does shipping cost?", "weight, category and route"},
		{"handoff", "let me talk to a human please", "human agent"},
		{"fallback", "xyzzy", botFallbackReply},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := botReply(tc.message)
			if !strings.Contains(got, tc.want) {
				t.Errorf("botReply(%q) = %q, want it to contain %q", tc.message, got, tc.want)
			}
		})
	}
}

func TestBotReply_FirstMatchWins(t *testing.T) {
	// mentions both tracking and delay keywords; tracking is checked first
	got := botReply("where is it, it is so late")
	if !strings.Contains(got, "MM-LX-XXXXX") {
		t.Errorf("got %q, want the tracking answer", got)
	}
}
