package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeTaskEvent is the asynq task type carrying an encoded Event.
const TypeTaskEvent = "task:event"

const defaultQueue = "default"

// QueuePublisher enqueues events into Redis through asynq.
type QueuePublisher struct {
	client *asynq.Client
	queue  string
}

func NewQueuePublisher(redisOpt asynq.RedisClientOpt, queue string) *QueuePublisher {
	if queue == "" {
		queue = defaultQueue
	}
	return &QueuePublisher{
		client: asynq.NewClient(redisOpt),
		queue:  queue,
	}
}

func (p *QueuePublisher) Publish(ctx context.Context, e Event) error {
	if p.client == nil {
		return errors.New("nil asynq client")
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	t := asynq.NewTask(TypeTaskEvent, payload)
	if _, err := p.client.EnqueueContext(ctx, t, asynq.Queue(p.queue), asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("enqueue %s: %w", e.Kind, err)
	}
	return nil
}

func (p *QueuePublisher) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

type ProcessorConfig struct {
	Concurrency int
	Queue       string
}

// Processor consumes queued events and hands them to a Handler.
type Processor struct {
	server  *asynq.Server
	handler Handler
}

func NewProcessor(redisOpt asynq.RedisClientOpt, handler Handler, cfg ProcessorConfig) *Processor {
	con := cfg.Concurrency
	if con <= 0 {
		con = 2
	}
	q := cfg.Queue
	if q == "" {
		q = defaultQueue
	}
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: con,
		Queues:      map[string]int{q: 1},
		LogLevel:    asynq.WarnLevel,
	})
	return &Processor{server: server, handler: handler}
}

// Start begins processing in the background.
func (p *Processor) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeTaskEvent, p.process)
	return p.server.Start(mux)
}

func (p *Processor) Shutdown() { p.server.Shutdown() }

func (p *Processor) process(ctx context.Context, t *asynq.Task) error {
	var e Event
	if err := json.Unmarshal(t.Payload(), &e); err != nil {
		// a malformed payload will never decode; don't retry it
		return fmt.Errorf("decode event: %v: %w", err, asynq.SkipRetry)
	}
	return p.handler.Handle(ctx, e)
}
