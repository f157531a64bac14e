package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/ActionEngine_Go/internal/logger"
)

type retryItem struct {
	event    Event
	attempts int
	lastErr  error
}

// ResilientPublisher wraps a Bus with bounded retries and a dead-letter file.
// Publishing never fails from the caller's point of view.
type ResilientPublisher struct {
	inner      Bus
	maxRetries int
	baseDelay  time.Duration
	deadLetter *DeadLetterWriter
	queue      chan retryItem
	quit       chan struct{}
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

// NewResilientPublisher starts the retry worker
func NewResilientPublisher(inner Bus, maxRetries int, baseDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dlw, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	p := &ResilientPublisher{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		deadLetter: dlw,
		queue:      make(chan retryItem, RetryQueueBufferSize),
		quit:       make(chan struct{}),
	}
	p.wg.Add(1)
	go p.retryWorker()
	return p, nil
}

// Publish implements Bus. Failures are retried in the background.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// PublishWithRetry publishes once inline and queues a retry on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return
	}
	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", event.Type, "error", err)
	p.enqueue(retryItem{event: event, attempts: 1, lastErr: err})
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) enqueue(item retryItem) {
	select {
	case <-p.quit:
		p.writeDeadLetter(item)
		return
	default:
	}
	select {
	case p.queue <- item:
	default:
		logger.FromContext(context.Background()).Error(LogMsgRetryQueueFull, "event_type", item.event.Type)
		p.writeDeadLetter(item)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()
	for {
		select {
		case item := <-p.queue:
			if !p.retry(item) {
				p.drain()
				return
			}
		case <-p.quit:
			p.drain()
			return
		}
	}
}

// retry waits out the backoff and publishes again. It returns false when the
// publisher shut down while waiting.
func (p *ResilientPublisher) retry(item retryItem) bool {
	timer := time.NewTimer(CalculateRetryDelay(p.baseDelay, item.attempts))
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-p.quit:
		p.writeDeadLetter(item)
		return false
	}

	ctx := context.Background()
	log := logger.FromContext(ctx)
	err := p.inner.Publish(ctx, item.event)
	if err == nil {
		log.Info(LogMsgEventRetrySucceeded, "event_type", item.event.Type, "attempt", item.attempts)
		return true
	}

	item.attempts++
	item.lastErr = err
	if item.attempts > p.maxRetries {
		log.Error(LogMsgEventRetryExhausted, "event_type", item.event.Type, "attempts", item.attempts)
		p.writeDeadLetter(item)
		return true
	}
	log.Warn(LogMsgEventRetryFailed, "event_type", item.event.Type, "attempt", item.attempts, "error", err)
	p.enqueue(item)
	return true
}

func (p *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case item := <-p.queue:
			p.writeDeadLetter(item)
			drained++
		default:
			if drained > 0 {
				logger.FromContext(context.Background()).Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (p *ResilientPublisher) writeDeadLetter(item retryItem) {
	if err := p.deadLetter.Write(item.event, item.attempts, item.lastErr); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown stops the retry worker. Pending retries go to the dead-letter file.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	var err error
	p.closeOnce.Do(func() {
		close(p.quit)
		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			err = ctx.Err()
			return
		}
		err = p.deadLetter.Close()
	})
	return err
}
