package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	m "inkfolio/internal/models"
)

// MemoryStore is an insertion-ordered in-memory Store implementation. It backs
// the service unit tests and mirrors the SQL stores' semantics: fresh uuid on
// create, ErrNotFound on absent ids, last-write-wins on concurrent updates.
type MemoryStore[T any] struct {
	mu    sync.RWMutex
	rows  map[string]T
	order []string
	getID func(T) string
	setID func(T, string, time.Time) T
}

func NewMemoryStore[T any](getID func(T) string, setID func(T, string, time.Time) T) *MemoryStore[T] {
	return &MemoryStore[T]{
		rows:  make(map[string]T),
		getID: getID,
		setID: setID,
	}
}

func (s *MemoryStore[T]) List(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))

	for _, id := range s.order {
		out = append(out, s.rows[id])
	}

	return out, nil
}

func (s *MemoryStore[T]) Get(ctx context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]

	if !ok {
		var zero T
		return zero, fmt.Errorf("record %s: %w", id, m.ErrNotFound)
	}

	return row, nil
}

func (s *MemoryStore[T]) Create(ctx context.Context, draft T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	record := s.setID(draft, id, time.Now())

	s.rows[id] = record
	s.order = append(s.order, id)

	return record, nil
}

func (s *MemoryStore[T]) Update(ctx context.Context, id string, record T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		var zero T
		return zero, fmt.Errorf("record %s: %w", id, m.ErrNotFound)
	}

	record = s.setID(record, id, time.Now())
	s.rows[id] = record

	return record, nil
}

func (s *MemoryStore[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return fmt.Errorf("record %s: %w", id, m.ErrNotFound)
	}

	delete(s.rows, id)

	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return nil
}

// MemoryUserStore adds the name lookup the login path needs.
type MemoryUserStore struct {
	*MemoryStore[m.User]
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		MemoryStore: NewMemoryStore(
			func(u m.User) string { return u.ID },
			func(u m.User, id string, now time.Time) m.User {
				u.ID = id

				if u.CreatedAt.IsZero() {
					u.CreatedAt = now
				}

				u.UpdatedAt = now
				return u
			},
		),
	}
}

func (s *MemoryUserStore) GetByName(ctx context.Context, name string) (m.User, error) {
	users, _ := s.List(ctx)

	for _, user := range users {
		if user.Name == name {
			return user, nil
		}
	}

	return m.User{}, fmt.Errorf("user %q: %w", name, m.ErrNotFound)
}

func NewMemoryTattooStore() *MemoryStore[m.Tattoo] {
	return NewMemoryStore(
		func(t m.Tattoo) string { return t.ID },
		func(t m.Tattoo, id string, now time.Time) m.Tattoo {
			t.ID = id

			if t.CreatedAt.IsZero() {
				t.CreatedAt = now
			}

			t.UpdatedAt = now
			return t
		},
	)
}
