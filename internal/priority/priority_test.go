package priority

import (
	"taskmanager/internal/clock"
	"taskmanager/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = domain.NewDate(2025, time.January, 5)

func newClassifier() *Classifier {
	return NewClassifier(clock.Fixed(today))
}

func TestCalculatePriority_Scenarios(t *testing.T) {
	c := newClassifier()

	cases := []struct {
		name string
		due  string
		want domain.Priority
	}{
		{"overdue", "2025-01-01", domain.PriorityHigh},
		{"yesterday", today.AddDays(-1).String(), domain.PriorityHigh},
		{"today", today.String(), domain.PriorityHigh},
		{"tomorrow", today.AddDays(1).String(), domain.PriorityHigh},
		{"in two days", today.AddDays(2).String(), domain.PriorityMedium},
		{"in five days", today.AddDays(5).String(), domain.PriorityMedium},
		{"in a week", today.AddDays(7).String(), domain.PriorityMedium},
		{"in eight days", today.AddDays(8).String(), domain.PriorityLow},
		{"in thirty days", today.AddDays(30).String(), domain.PriorityLow},
		{"timestamp input", "2025-01-06T22:00:00Z", domain.PriorityHigh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.CalculatePriority(tc.due)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculatePriority_InvalidInput(t *testing.T) {
	c := newClassifier()

	for _, in := range []string{"", "next friday", "2025-13-01"} {
		_, err := c.CalculatePriority(in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", in)
	}
}

func TestEvaluate_ReturnsParsedDate(t *testing.T) {
	c := newClassifier()

	due, p, err := c.Evaluate("2025-01-06T22:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(2025, time.January, 6), due)
	assert.Equal(t, domain.PriorityHigh, p)

	due, p, err = c.Evaluate("someday")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.True(t, due.IsZero())
	assert.Empty(t, p)
}

func TestClassify_Properties(t *testing.T) {
	for offset := -60; offset <= 60; offset++ {
		got := Classify(today.AddDays(offset), today)

		switch {
		case offset < 0:
			assert.Equal(t, domain.PriorityHigh, got, "offset %d", offset)
		case offset <= 1:
			assert.Equal(t, domain.PriorityHigh, got, "offset %d", offset)
		case offset <= 7:
			assert.Equal(t, domain.PriorityMedium, got, "offset %d", offset)
		default:
			assert.Equal(t, domain.PriorityLow, got, "offset %d", offset)
		}
	}
}

type countingClock struct {
	day   domain.Date
	calls int
}

func (c *countingClock) Today() domain.Date {
	c.calls++
	return c.day
}

func TestCalculatePriority_ReadsClockOnce(t *testing.T) {
	cc := &countingClock{day: today}
	c := NewClassifier(cc)

	_, err := c.CalculatePriority("2025-02-01")
	require.NoError(t, err)
	assert.Equal(t, 1, cc.calls)
}

func TestColor(t *testing.T) {
	assert.Equal(t, "#EF4444", Color(domain.PriorityHigh))
	assert.Equal(t, "#F59E0B", Color(domain.PriorityMedium))
	assert.Equal(t, "#10B981", Color(domain.PriorityLow))
	assert.Equal(t, "#6B7280", Color(domain.Priority("unknown")))
	assert.Equal(t, "#6B7280", Color(""))
}

func TestWeight(t *testing.T) {
	assert.Equal(t, 3, Weight(domain.PriorityHigh))
	assert.Equal(t, 2, Weight(domain.PriorityMedium))
	assert.Equal(t, 1, Weight(domain.PriorityLow))
	assert.Equal(t, 0, Weight(domain.Priority("unknown")))
}

func TestRank(t *testing.T) {
	tasks := []domain.Task{
		{ID: 1, Priority: domain.PriorityLow, DueDate: today},
		{ID: 2, Priority: domain.PriorityHigh},
		{ID: 3, Priority: domain.PriorityHigh, DueDate: today.AddDays(3)},
		{ID: 4, Priority: domain.PriorityMedium, DueDate: today},
		{ID: 5, Priority: domain.PriorityHigh, DueDate: today.AddDays(-2)},
		{ID: 6, Priority: domain.Priority("bogus")},
	}

	Rank(tasks)

	ids := make([]int64, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []int64{5, 3, 2, 4, 1, 6}, ids)
}
