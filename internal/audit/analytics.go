package audit

import (
	"sort"
	"time"
)

// Summary aggregates a window of audit events
type Summary struct {
	TotalCalls         int             `json:"total_calls"`
	SuccessfulOps      int             `json:"successful_ops"`
	FailedOps          int             `json:"failed_ops"`
	SuccessRate        float64         `json:"success_rate"`
	AvgDurationMs      float64         `json:"avg_duration_ms"`
	OperationBreakdown map[string]int  `json:"operation_breakdown"`
	ErrorPatterns      []*ErrorPattern `json:"error_patterns"`
	FirstActivity      *time.Time      `json:"first_activity,omitempty"`
	LastActivity       *time.Time      `json:"last_activity,omitempty"`
}

// ErrorPattern counts failures sharing the same message
type ErrorPattern struct {
	Message  string    `json:"message"`
	Count    int       `json:"count"`
	LastSeen time.Time `json:"last_seen"`
}

// Summarize computes call counts, success rate and recurring errors.
// Error patterns are ordered by count, most frequent first.
func Summarize(events []*Event) *Summary {
	summary := &Summary{
		OperationBreakdown: make(map[string]int),
		ErrorPatterns:      []*ErrorPattern{},
	}
	if len(events) == 0 {
		return summary
	}

	errorMap := make(map[string]*ErrorPattern)
	var totalDuration int64

	for _, event := range events {
		summary.TotalCalls++
		summary.OperationBreakdown[event.Operation]++
		totalDuration += event.DurationMs

		if event.Success {
			summary.SuccessfulOps++
		} else {
			summary.FailedOps++

			pattern, exists := errorMap[event.ErrorMsg]
			if !exists {
				pattern = &ErrorPattern{Message: event.ErrorMsg}
				errorMap[event.ErrorMsg] = pattern
			}
			pattern.Count++
			if event.Timestamp.After(pattern.LastSeen) {
				pattern.LastSeen = event.Timestamp
			}
		}

		ts := event.Timestamp
		if summary.FirstActivity == nil || ts.Before(*summary.FirstActivity) {
			summary.FirstActivity = &ts
		}
		if summary.LastActivity == nil || ts.After(*summary.LastActivity) {
			summary.LastActivity = &ts
		}
	}

	summary.SuccessRate = float64(summary.SuccessfulOps) / float64(summary.TotalCalls)
	summary.AvgDurationMs = float64(totalDuration) / float64(summary.TotalCalls)

	for _, pattern := range errorMap {
		summary.ErrorPatterns = append(summary.ErrorPatterns, pattern)
	}
	sort.Slice(summary.ErrorPatterns, func(i, j int) bool {
		a, b := summary.ErrorPatterns[i], summary.ErrorPatterns[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Message < b.Message
	})

	return summary
}
