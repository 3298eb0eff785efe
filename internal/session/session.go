// Package session remembers the last search of each conversation so that
// results can be paginated later.
package session

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/lepinkainen/reelbot/internal/errors"
	"github.com/lepinkainen/reelbot/internal/media"
)

// Query is the remembered free-text search of one conversation.
type Query struct {
	Text string
	// Kinds are the catalogs the search spans, in merge order. Empty means all.
	Kinds []media.Kind
}

// NewQuery builds a Query, defaulting to every kind.
func NewQuery(text string, kinds ...media.Kind) Query {
	if len(kinds) == 0 {
		kinds = media.All
	}
	return Query{Text: strings.TrimSpace(text), Kinds: slices.Clone(kinds)}
}

// SearchKinds returns the kinds to search, defaulting to every kind.
func (q Query) SearchKinds() []media.Kind {
	if len(q.Kinds) == 0 {
		return media.All
	}
	return q.Kinds
}

// Store keeps one Query per conversation.
type Store interface {
	// Set replaces the remembered query of a conversation.
	Set(ctx context.Context, conversationID int64, q Query) error
	// Get returns the remembered query, or *errors.NoActiveSessionError.
	Get(ctx context.Context, conversationID int64) (Query, error)
}

// MemoryStore is a process-lifetime Store. Entries never expire and are lost
// on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	queries map[int64]Query
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{queries: make(map[int64]Query)}
}

var _ Store = (*MemoryStore)(nil)

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, conversationID int64, q Query) error {
	q.Kinds = slices.Clone(q.Kinds)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries[conversationID] = q
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, conversationID int64) (Query, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.queries[conversationID]
	if !ok {
		return Query{}, errors.NewNoActiveSessionError(conversationID)
	}
	q.Kinds = slices.Clone(q.Kinds)
	return q, nil
}

// Len returns the number of remembered conversations.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.queries)
}
