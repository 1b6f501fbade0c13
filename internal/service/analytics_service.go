package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/estate-navigator/internal/config"
	"github.com/spec-kit/estate-navigator/internal/events"
)

// Publisher sends an encoded event to a channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// AnalyticsService forwards session events to a pub/sub channel. Events are
// queued by the dispatcher handler and drained by Run so that publishing never
// blocks a session.
type AnalyticsService struct {
	dispatcher events.Dispatcher
	publisher  Publisher
	logger     *zap.Logger
	channel    string
	queue      chan events.Event
}

// NewAnalyticsService creates the service. A nil publisher turns it into a logger only.
func NewAnalyticsService(dispatcher events.Dispatcher, publisher Publisher, logger *zap.Logger, cfg config.AnalyticsConfig) *AnalyticsService {
	size := cfg.BufferSize
	if size <= 0 {
		size = 1
	}
	return &AnalyticsService{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		channel:    cfg.Channel,
		queue:      make(chan events.Event, size),
	}
}

// RegisterHandlers subscribes to every session event.
func (a *AnalyticsService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, t := range events.AllTypes() {
		a.dispatcher.Subscribe(t, a.handleEvent)
	}
}

func (a *AnalyticsService) handleEvent(_ context.Context, event events.Event) error {
	a.logger.Debug(string(event.Type),
		zap.String("session_id", event.SessionID),
		zap.String("role", string(event.Role)),
		zap.Any("payload", event.Payload))
	if a.publisher == nil {
		return nil
	}
	select {
	case a.queue <- event:
	default:
		a.logger.Warn("analytics queue full; dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("session_id", event.SessionID))
	}
	return nil
}

// Run drains the queue until ctx is cancelled.
func (a *AnalyticsService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-a.queue:
			if err := a.publish(ctx, event); err != nil {
				a.logger.Warn("publish analytics event", zap.String("event_type", string(event.Type)), zap.Error(err))
			}
		}
	}
}

func (a *AnalyticsService) publish(ctx context.Context, event events.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return a.publisher.Publish(ctx, a.channel, body)
}
