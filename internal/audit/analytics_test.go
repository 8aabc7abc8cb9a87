package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	assert.Zero(t, summary.TotalCalls)
	assert.Zero(t, summary.SuccessRate)
	assert.Empty(t, summary.ErrorPatterns)
	assert.Nil(t, summary.FirstActivity)
}

func TestSummarize(t *testing.T) {
	base := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

	failed := func(msg string, at time.Time) *Event {
		event := newEvent("create_rental", at)
		event.Success = false
		event.StatusCode = 409
		event.ErrorMsg = msg
		return event
	}

	events := []*Event{
		newEvent("create_rental", base),
		newEvent("finish_rental", base.Add(time.Minute)),
		failed("The user already have a rental!", base.Add(2*time.Minute)),
		failed("The user already have a rental!", base.Add(3*time.Minute)),
		failed("Movie already in a rental.", base.Add(-time.Minute)),
	}
	events[0].DurationMs = 10
	events[1].DurationMs = 20

	summary := Summarize(events)

	assert.Equal(t, 5, summary.TotalCalls)
	assert.Equal(t, 2, summary.SuccessfulOps)
	assert.Equal(t, 3, summary.FailedOps)
	assert.InDelta(t, 0.4, summary.SuccessRate, 1e-9)
	assert.InDelta(t, 6.0, summary.AvgDurationMs, 1e-9)
	assert.Equal(t, map[string]int{"create_rental": 4, "finish_rental": 1}, summary.OperationBreakdown)

	require.Len(t, summary.ErrorPatterns, 2)
	assert.Equal(t, "The user already have a rental!", summary.ErrorPatterns[0].Message)
	assert.Equal(t, 2, summary.ErrorPatterns[0].Count)
	assert.Equal(t, base.Add(3*time.Minute), summary.ErrorPatterns[0].LastSeen)

	require.NotNil(t, summary.FirstActivity)
	assert.Equal(t, base.Add(-time.Minute), *summary.FirstActivity)
	assert.Equal(t, base.Add(3*time.Minute), *summary.LastActivity)
}

func TestRecorderSummary(t *testing.T) {
	ctx := context.Background()
	rec := NewRecorder(NewInMemoryStore())

	require.NoError(t, rec.Record(ctx, newEvent("list_rentals", time.Now())))

	summary, err := rec.Summary(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalCalls)
	assert.Equal(t, 1.0, summary.SuccessRate)
}
