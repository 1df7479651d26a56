package analytics

import (
	"reflect"
	"testing"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/calls"
)

func TestAnalyzeSentiment(t *testing.T) {
	cases := []struct {
		transcript string
		want       Sentiment
	}{
		{"great excellent perfect wonderful", SentimentPositive},
		{"bad terrible awful horrible", SentimentNegative},
		{"it was fine", SentimentNeutral},
		{"great excellent", SentimentNeutral}, // score 2 is not > 2
		{"", SentimentNeutral},
		// trailing punctuation sticks to the token and misses the keyword list
		{"great! excellent! perfect! wonderful!", SentimentNeutral},
		{"GREAT EXCELLENT PERFECT wonderful", SentimentPositive},
		{"great bad excellent terrible perfect", SentimentNeutral}, // 3 - 2 = 1
	}
	for _, c := range cases {
		if got := AnalyzeSentiment(c.transcript); got != c.want {
			t.Errorf("AnalyzeSentiment(%q) = %q, want %q", c.transcript, got, c.want)
		}
	}
}

func TestFollowUpRequired(t *testing.T) {
	cases := []struct {
		transcript string
		want       bool
	}{
		{"please call me back tomorrow", true},
		{"I need to think about it", true},
		{"I'll discuss with my wife", true},
		{"Send Me Information about the hybrid", true},
		{"thanks, that answered everything", false},
		{"", false},
	}
	for _, c := range cases {
		if got := FollowUpRequired(c.transcript); got != c.want {
			t.Errorf("FollowUpRequired(%q) = %v, want %v", c.transcript, got, c.want)
		}
	}
}

func TestAnalyze_PassThroughFields(t *testing.T) {
	call := calls.CallData{
		CallID:         "conv_123",
		Duration:       185,
		Transcript:     "great excellent perfect wonderful, call me back",
		Intent:         "vehicle_inquiry",
		ToolsTriggered: []string{calls.ToolInventorySearch},
		Resolution:     true,
	}

	a := Analyze(call)
	if a.CallID != "conv_123" || a.Duration != 185 {
		t.Fatalf("pass-through mismatch: %+v", a)
	}
	if a.CustomerSentiment != SentimentPositive {
		t.Fatalf("got sentiment %q", a.CustomerSentiment)
	}
	if !a.FollowUpRequired {
		t.Fatalf("expected follow-up required")
	}
	if a.IntentDetected != "vehicle_inquiry" || !a.ResolutionStatus {
		t.Fatalf("pass-through mismatch: %+v", a)
	}
	if !reflect.DeepEqual(a.ToolsUsed, call.ToolsTriggered) {
		t.Fatalf("tools mismatch: %v", a.ToolsUsed)
	}

	// ToolsUsed is a copy, not an alias
	a.ToolsUsed[0] = "mutated"
	if call.ToolsTriggered[0] != calls.ToolInventorySearch {
		t.Fatalf("Analyze must not alias the input slice")
	}
}

func TestAnalyze_EmptyTranscript(t *testing.T) {
	a := Analyze(calls.CallData{CallID: "conv_empty"})
	if a.CustomerSentiment != SentimentNeutral || a.FollowUpRequired {
		t.Fatalf("empty transcript must be neutral with no follow-up: %+v", a)
	}
}
