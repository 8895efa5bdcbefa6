package viewer

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/service"
)

// OwnerTransactions is the owner-scoped transaction API the engine's collaborators bind to.
type OwnerTransactions interface {
	ListTransactions(ctx context.Context, owner uuid.UUID, filter service.TransactionFilter) ([]service.Transaction, error)
	UpdateTransaction(ctx context.Context, owner, id uuid.UUID, patch service.TransactionPatch) (*service.Transaction, error)
	DeleteTransaction(ctx context.Context, owner, id uuid.UUID) error
}

// OwnerScope binds OwnerTransactions to one owner, making it a Fetcher and a Mutator.
type OwnerScope struct {
	Owner        uuid.UUID
	Transactions OwnerTransactions
}

func (o OwnerScope) FetchTransactions(ctx context.Context, filter service.TransactionFilter) ([]service.Transaction, error) {
	return o.Transactions.ListTransactions(ctx, o.Owner, filter)
}

func (o OwnerScope) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return o.Transactions.DeleteTransaction(ctx, o.Owner, id)
}

func (o OwnerScope) UpdateTransaction(ctx context.Context, id uuid.UUID, patch service.TransactionPatch) (*service.Transaction, error) {
	return o.Transactions.UpdateTransaction(ctx, o.Owner, id, patch)
}

// EngineFactory builds the engine for a new session, rendering into view.
type EngineFactory func(owner uuid.UUID, view *View) *Engine

// NewEngineFactory builds engines backed by the transaction service.
func NewEngineFactory(transactions OwnerTransactions, logger *logrus.Logger, pageSize int) EngineFactory {
	return func(owner uuid.UUID, view *View) *Engine {
		scope := OwnerScope{Owner: owner, Transactions: transactions}
		return NewEngine(Config{
			Fetcher:  scope,
			Mutator:  scope,
			Renderer: view,
			Notifier: view,
			Logger:   logger,
			PageSize: pageSize,
		})
	}
}

// Session is one owner's engine and the view it renders into.
type Session struct {
	Owner  uuid.UUID
	Engine *Engine
	View   *View

	loadMutex sync.Mutex
	loaded    bool
}

func (s *Session) ensureLoaded(ctx context.Context) error {
	s.loadMutex.Lock()
	defer s.loadMutex.Unlock()

	if s.loaded {
		return nil
	}
	if err := s.Engine.Reload(ctx); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

// Sessions keeps one session per owner and forgets it after ttl without access.
type Sessions struct {
	cache   *cache.Cache
	factory EngineFactory
	mutex   sync.Mutex
}

func NewSessions(factory EngineFactory, ttl time.Duration) *Sessions {
	return &Sessions{
		cache:   cache.New(ttl, ttl),
		factory: factory,
	}
}

// Get returns the owner's session, creating it and loading the unfiltered result set on first use.
func (s *Sessions) Get(ctx context.Context, owner uuid.UUID) (*Session, error) {
	key := owner.String()

	s.mutex.Lock()
	session, ok := s.lookup(key)
	if !ok {
		view := NewView()
		session = &Session{Owner: owner, Engine: s.factory(owner, view), View: view}
	}
	// Re-setting on every access makes expiry count from the last use.
	s.cache.SetDefault(key, session)
	s.mutex.Unlock()

	if err := session.ensureLoaded(ctx); err != nil {
		s.forgetUnloaded(key, session)
		return nil, err
	}
	return session, nil
}

// forgetUnloaded removes a session whose first load failed, so the next Get starts afresh.
func (s *Sessions) forgetUnloaded(key string, session *Session) {
	session.loadMutex.Lock()
	loaded := session.loaded
	session.loadMutex.Unlock()
	if loaded {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if cached, ok := s.lookup(key); ok && cached == session {
		s.cache.Delete(key)
	}
}

// Refresh reloads the owner's session if one is live. Used after writes made outside the engine.
func (s *Sessions) Refresh(ctx context.Context, owner uuid.UUID) error {
	s.mutex.Lock()
	session, ok := s.lookup(owner.String())
	s.mutex.Unlock()
	if !ok {
		return nil
	}

	session.loadMutex.Lock()
	loaded := session.loaded
	session.loadMutex.Unlock()
	if !loaded {
		return nil
	}
	return session.Engine.Reload(ctx)
}

func (s *Sessions) Drop(owner uuid.UUID) {
	s.cache.Delete(owner.String())
}

func (s *Sessions) Len() int {
	return s.cache.ItemCount()
}

func (s *Sessions) lookup(key string) (*Session, bool) {
	cached, found := s.cache.Get(key)
	if !found {
		return nil, false
	}
	session, ok := cached.(*Session)
	return session, ok
}
