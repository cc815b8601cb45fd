// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package event

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	EventQueueSize         = 20
	AsyncQueueSize         = 1000
	DefaultAsyncWorkerPool = 4
)

type EventType string

type SubscriberID int

type HandlerFunc func(Event)

type Event struct {
	Timestamp time.Time
	Data      any
	Type      EventType
}

func NewEvent(eventType EventType, data any) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

type busMetrics struct {
	subscribers    *prometheus.GaugeVec
	eventsTotal    *prometheus.CounterVec
	deliveryErrors *prometheus.CounterVec
}

func newBusMetrics(reg prometheus.Registerer) *busMetrics {
	factory := promauto.With(reg)
	return &busMetrics{
		subscribers: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pollgram_event_subscribers",
			Help: "Number of active event subscribers",
		}, []string{"type"}),
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pollgram_events_total",
			Help: "Number of events published",
		}, []string{"type"}),
		deliveryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pollgram_event_delivery_errors_total",
			Help: "Number of events that could not be delivered",
		}, []string{"type", "reason"}),
	}
}

// Bus is an in-process publish/subscribe hub. Publish delivers to every
// subscriber of the event type before returning; PublishAsync hands the
// event to a worker pool.
type Bus struct {
	subscribers map[EventType]map[SubscriberID]*subscriber
	lastSubID   SubscriberID
	mu          sync.RWMutex
	metrics     *busMetrics
	logger      *slog.Logger

	asyncQueue chan Event
	asyncWg    sync.WaitGroup
	handlerWg  sync.WaitGroup
	stopCh     chan struct{}
	stopped    bool
	stopMu     sync.RWMutex
}

// NewBus creates a Bus and starts workers async delivery goroutines.
// reg and logger may be nil.
func NewBus(reg prometheus.Registerer, logger *slog.Logger, workers int) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = DefaultAsyncWorkerPool
	}
	b := &Bus{
		subscribers: make(map[EventType]map[SubscriberID]*subscriber),
		logger:      logger,
		asyncQueue:  make(chan Event, AsyncQueueSize),
		stopCh:      make(chan struct{}),
	}
	if reg != nil {
		b.metrics = newBusMetrics(reg)
	}
	for range workers {
		b.asyncWg.Add(1)
		go b.asyncWorker()
	}
	return b
}

func (b *Bus) asyncWorker() {
	defer b.asyncWg.Done()
	for {
		select {
		case <-b.stopCh:
			return
		case evt := <-b.asyncQueue:
			b.Publish(evt)
		}
	}
}

// subscriber is a channel-backed delivery target. Deliver blocks while the
// buffer is full.
type subscriber struct {
	ch     chan Event
	mu     sync.RWMutex
	closed bool
}

func (s *subscriber) deliver(evt Event) (err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("deliver panic: %v", r)
		}
	}()
	s.ch <- evt
	return nil
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// Subscribe returns a channel receiving events of the given type
func (b *Bus) Subscribe(eventType EventType) (SubscriberID, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub := &subscriber{ch: make(chan Event, EventQueueSize)}
	b.lastSubID++
	id := b.lastSubID
	if _, ok := b.subscribers[eventType]; !ok {
		b.subscribers[eventType] = make(map[SubscriberID]*subscriber)
	}
	b.subscribers[eventType][id] = sub
	if b.metrics != nil {
		b.metrics.subscribers.WithLabelValues(string(eventType)).Inc()
	}
	return id, sub.ch
}

// SubscribeFunc runs handler for each event of the given type on a
// dedicated goroutine. The goroutine exits on Unsubscribe or Stop.
func (b *Bus) SubscribeFunc(eventType EventType, handler HandlerFunc) SubscriberID {
	id, ch := b.Subscribe(eventType)
	b.handlerWg.Add(1)
	go func() {
		defer b.handlerWg.Done()
		for evt := range ch {
			b.safeHandle(handler, evt)
		}
	}()
	return id
}

func (b *Bus) safeHandle(handler HandlerFunc, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panic", "type", evt.Type, "panic", r)
			if b.metrics != nil {
				b.metrics.deliveryErrors.WithLabelValues(string(evt.Type), "panic").Inc()
			}
		}
	}()
	handler(evt)
}

// Unsubscribe stops delivery to an existing subscriber
func (b *Bus) Unsubscribe(eventType EventType, id SubscriberID) {
	b.mu.Lock()
	var sub *subscriber
	if subs, ok := b.subscribers[eventType]; ok {
		if s, ok := subs[id]; ok {
			sub = s
			delete(subs, id)
			if len(subs) == 0 {
				delete(b.subscribers, eventType)
			}
			if b.metrics != nil {
				b.metrics.subscribers.WithLabelValues(string(eventType)).Dec()
			}
		}
	}
	b.mu.Unlock()

	if sub != nil {
		sub.close()
	}
}

// Publish delivers evt to all current subscribers of its type
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	subs := make([]*subscriber, 0, len(b.subscribers[evt.Type]))
	for _, s := range b.subscribers[evt.Type] {
		subs = append(subs, s)
	}
	b.mu.RUnlock()

	for _, s := range subs {
		if err := s.deliver(evt); err != nil {
			b.logger.Debug("event delivery error", "type", evt.Type, "error", err)
			if b.metrics != nil {
				b.metrics.deliveryErrors.WithLabelValues(string(evt.Type), "deliver").Inc()
			}
		}
	}
	if b.metrics != nil {
		b.metrics.eventsTotal.WithLabelValues(string(evt.Type)).Inc()
	}
}

// PublishAsync enqueues evt for delivery by the worker pool. It returns
// false if the bus is stopped or the queue is full.
func (b *Bus) PublishAsync(evt Event) bool {
	b.stopMu.RLock()
	defer b.stopMu.RUnlock()
	if b.stopped {
		return false
	}

	select {
	case b.asyncQueue <- evt:
		return true
	default:
		b.logger.Warn("async event queue full, dropping event", "type", evt.Type)
		if b.metrics != nil {
			b.metrics.deliveryErrors.WithLabelValues(string(evt.Type), "queue-full").Inc()
		}
		return false
	}
}

// Stop drains queued async events, stops the workers and closes every
// subscriber. Handler goroutines have returned when Stop returns.
func (b *Bus) Stop() {
	b.stopMu.Lock()
	if b.stopped {
		b.stopMu.Unlock()
		return
	}
	b.stopped = true
	b.stopMu.Unlock()

	b.drain()
	close(b.stopCh)
	b.asyncWg.Wait()

	b.mu.Lock()
	subs := b.subscribers
	b.subscribers = make(map[EventType]map[SubscriberID]*subscriber)
	b.mu.Unlock()

	for _, byID := range subs {
		for _, s := range byID {
			s.close()
		}
	}
	if b.metrics != nil {
		b.metrics.subscribers.Reset()
	}
	b.handlerWg.Wait()
}

func (b *Bus) drain() {
	for {
		select {
		case evt := <-b.asyncQueue:
			b.Publish(evt)
		default:
			return
		}
	}
}
