// Package analytics computes the post-call analytics record.
//
// Like the extractors, everything here is pure and total: an empty or
// missing transcript yields a neutral, no-follow-up record.
package analytics

import (
	"strings"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/calls"
)

// Sentiment is the keyword-count classification of a transcript.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Analytics is the derived, read-only record for one completed call.
type Analytics struct {
	CallID   string `json:"call_id"`
	Duration int    `json:"duration"`

	CustomerSentiment Sentiment `json:"customer_sentiment"`

	// IntentDetected is a pass-through from the platform.
	IntentDetected string `json:"intent_detected,omitempty"`

	ToolsUsed []string `json:"tools_used"`

	ResolutionStatus bool `json:"resolution_status"`

	FollowUpRequired bool `json:"follow_up_required"`
}

var positiveWords = map[string]struct{}{
	"great": {}, "excellent": {}, "perfect": {}, "wonderful": {}, "amazing": {}, "helpful": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "terrible": {}, "awful": {}, "horrible": {}, "disappointed": {}, "frustrated": {},
}

// followUpTriggers are scanned as case-folded substrings.
var followUpTriggers = []string{
	"call me back",
	"follow up",
	"get back to me",
	"need to think",
	"discuss with",
	"send me information",
}

// AnalyzeSentiment counts keyword hits over whitespace tokens.
// Tokens are matched whole, so trailing punctuation on a word prevents a
// hit ("great!" does not count). The score is not normalized by length;
// short transcripts swing hard.
func AnalyzeSentiment(transcript string) Sentiment {
	score := 0
	for _, word := range strings.Fields(strings.ToLower(transcript)) {
		if _, ok := positiveWords[word]; ok {
			score++
		}
		if _, ok := negativeWords[word]; ok {
			score--
		}
	}

	switch {
	case score > 2:
		return SentimentPositive
	case score < -2:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// FollowUpRequired reports whether the caller asked for a follow-up.
func FollowUpRequired(transcript string) bool {
	lower := strings.ToLower(transcript)
	for _, trigger := range followUpTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

// Analyze builds the analytics record for a completed call.
func Analyze(call calls.CallData) Analytics {
	return Analytics{
		CallID:            call.CallID,
		Duration:          call.Duration,
		CustomerSentiment: AnalyzeSentiment(call.Transcript),
		IntentDetected:    call.Intent,
		ToolsUsed:         append([]string(nil), call.ToolsTriggered...),
		ResolutionStatus:  call.Resolution,
		FollowUpRequired:  FollowUpRequired(call.Transcript),
	}
}
