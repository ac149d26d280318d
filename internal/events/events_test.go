package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"taskmanager/internal/domain"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/charmbracelet/log"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func sampleEvent() Event {
	task := domain.Task{ID: 7, Title: "Pay rent", UserID: 1, Priority: domain.PriorityHigh}
	return New(KindCreated, task, time.Date(2025, time.January, 5, 9, 0, 0, 0, time.UTC))
}

func TestNew(t *testing.T) {
	e := sampleEvent()
	assert.Equal(t, KindCreated, e.Kind)
	assert.Equal(t, int64(7), e.TaskID)
	assert.Equal(t, "Pay rent", e.Title)
	assert.Equal(t, domain.PriorityHigh, e.Priority)
	assert.Empty(t, e.PreviousPriority)
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel, Formatter: log.LogfmtFormatter})
	h := NewLogHandler(logger)

	changed := sampleEvent()
	changed.Kind = KindPriorityChanged
	changed.PreviousPriority = domain.PriorityLow

	require.NoError(t, h.Handle(context.Background(), sampleEvent()))
	require.NoError(t, h.Handle(context.Background(), changed))
	require.NoError(t, h.Handle(context.Background(), Event{Kind: "task.archived"}))

	out := buf.String()
	assert.Contains(t, out, "task created")
	assert.Contains(t, out, "task_id=7")
	assert.Contains(t, out, "old_priority=low")
	assert.Contains(t, out, "new_priority=high")
	assert.Contains(t, out, "unknown task event")
}

func TestQueuePublisher_Enqueues(t *testing.T) {
	s := startMiniRedis(t)
	redis := asynq.RedisClientOpt{Addr: s.Addr()}

	pub := NewQueuePublisher(redis, "events")
	defer pub.Close()

	require.NoError(t, pub.Publish(context.Background(), sampleEvent()))

	inspector := asynq.NewInspector(redis)
	defer inspector.Close()

	pending, err := inspector.ListPendingTasks("events")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, TypeTaskEvent, pending[0].Type)

	var got Event
	require.NoError(t, json.Unmarshal(pending[0].Payload, &got))
	assert.Equal(t, int64(7), got.TaskID)
	assert.Equal(t, KindCreated, got.Kind)
}

func TestProcessor_BadPayloadSkipsRetry(t *testing.T) {
	p := &Processor{handler: HandlerFunc(func(context.Context, Event) error {
		t.Fatalf("handler should not be called")
		return nil
	})}

	err := p.process(context.Background(), asynq.NewTask(TypeTaskEvent, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestProcessor_Integration(t *testing.T) {
	s := startMiniRedis(t)
	redis := asynq.RedisClientOpt{Addr: s.Addr()}

	received := make(chan Event, 1)
	processor := NewProcessor(redis, HandlerFunc(func(_ context.Context, e Event) error {
		received <- e
		return nil
	}), ProcessorConfig{Concurrency: 1, Queue: "events"})
	require.NoError(t, processor.Start())
	defer processor.Shutdown()

	pub := NewQueuePublisher(redis, "events")
	defer pub.Close()
	require.NoError(t, pub.Publish(context.Background(), sampleEvent()))

	select {
	case e := <-received:
		assert.Equal(t, int64(7), e.TaskID)
		assert.Equal(t, "Pay rent", e.Title)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for event to be processed")
	}
}
