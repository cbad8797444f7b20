package events

import (
	"context"
	"sync"
	"time"
)

// Kind names what changed in the market data
type Kind string

const (
	KindTopCoins   Kind = "top_coins"
	KindGlobal     Kind = "global"
	KindHistorical Kind = "historical"
)

// Event is emitted after new market data was persisted
type Event struct {
	Kind  Kind      `json:"kind"`
	Count int       `json:"count"`
	At    time.Time `json:"at"`
}

// ISubscription defines the contract for subscription objects
type ISubscription interface {
	// Chan returns a read-only channel for self-handling events
	Chan() <-chan Event
	// Cancel unsubscribes and closes the channel. Safe for repeated calls
	Cancel()
	// Watch starts a goroutine that calls cb on each event
	// When parentCtx finishes, the subscription is automatically cancelled
	Watch(parentCtx context.Context, cb func(Event)) ISubscription
}

// ISubscriptionManager defines the contract for managing subscriptions
type ISubscriptionManager interface {
	// Subscribe creates a subscription. With no kinds it receives every event.
	Subscribe(kinds ...Kind) ISubscription
	// Emit delivers the event to matching subscribers without blocking
	Emit(ctx context.Context, event Event)
}

type Subscription struct {
	ch     chan Event
	kinds  map[Kind]struct{}
	mgr    *SubscriptionManager
	cancel context.CancelFunc
	mu     sync.Mutex
	once   sync.Once
}

func (s *Subscription) Chan() <-chan Event { return s.ch }

func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.mu.Lock()
		cancel := s.cancel
		s.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		s.mgr.unsubscribe(s)
	})
}

func (s *Subscription) Watch(parentCtx context.Context, cb func(Event)) ISubscription {
	ctx, cancel := context.WithCancel(parentCtx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		defer s.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-s.ch:
				if !ok {
					return
				}
				cb(event)
			}
		}
	}()

	return s
}

func (s *Subscription) wants(kind Kind) bool {
	if len(s.kinds) == 0 {
		return true
	}
	_, ok := s.kinds[kind]
	return ok
}

type SubscriptionManager struct {
	mu          sync.RWMutex
	subscribers map[*Subscription]struct{}
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subscribers: make(map[*Subscription]struct{}),
	}
}

func (m *SubscriptionManager) Subscribe(kinds ...Kind) ISubscription {
	sub := &Subscription{
		ch:    make(chan Event, 1),
		kinds: make(map[Kind]struct{}, len(kinds)),
		mgr:   m,
	}
	for _, k := range kinds {
		sub.kinds[k] = struct{}{}
	}

	m.mu.Lock()
	m.subscribers[sub] = struct{}{}
	m.mu.Unlock()

	return sub
}

func (m *SubscriptionManager) unsubscribe(sub *Subscription) {
	m.mu.Lock()
	if _, ok := m.subscribers[sub]; ok {
		delete(m.subscribers, sub)
		close(sub.ch)
	}
	m.mu.Unlock()
}

// Emit sends the event to every matching subscriber. A subscriber that has not
// consumed its previous event misses this one.
func (m *SubscriptionManager) Emit(ctx context.Context, event Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for sub := range m.subscribers {
		if !sub.wants(event.Kind) {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case sub.ch <- event:
		default:
		}
	}
}
