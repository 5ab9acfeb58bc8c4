package t212

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Session caches the Book of a Source for the duration of an interactive
// session. The Book is loaded on first use, and kept until Invalidate or
// Reload.
//
// A Session is safe for concurrent use.
type Session struct {
	source Source
	loc    *time.Location

	mu         sync.Mutex
	book       *Book
	err        error // error of the last load, if any.
	generation uuid.UUID
	loadedAt   time.Time
	refresh    bool // the next load must bypass the source caches.
}

// NewSession returns a Session over source, bucketing days and hours in loc.
func NewSession(source Source, loc *time.Location) *Session {
	return &Session{source: source, loc: loc}
}

// Book returns the cached Book, loading it if needed.
//
// When the source fails, the Book holds whatever orders were retrieved and
// the error is returned alongside. The partial Book stays cached: the error
// is a warning to report, use Reload to try again.
// A load interrupted by ctx itself is returned but not cached.
func (s *Session) Book(ctx context.Context) (*Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.book == nil {
		return s.load(ctx)
	}
	return s.book, s.err
}

// Invalidate drops the cached Book, the next call to Book loads it again.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.book, s.err = nil, nil
	s.refresh = true
	log.Debug("session cache invalidated")
}

// Reload loads the Book again, bypassing the source caches, and replaces the
// cached one. When ctx interrupts it, the cached Book is kept.
func (s *Session) Reload(ctx context.Context) (*Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = true
	return s.load(ctx)
}

// Generation identifies the currently cached Book. It changes on every load.
func (s *Session) Generation() (id uuid.UUID, loadedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation, s.loadedAt
}

// Err returns the error of the last load, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) load(ctx context.Context) (*Book, error) {
	if s.refresh {
		ctx = Refresh(ctx)
	}
	orders, err := s.source.Orders(ctx)
	b := NewBook(orders, s.loc)
	if err != nil && ctx.Err() != nil {
		log.Warnf("load interrupted after %d orders, not cached: %v", len(orders), err)
		return b, err
	}
	if err != nil {
		log.Warnf("loaded %d orders with error: %v", len(orders), err)
	} else {
		log.Debugf("loaded %d orders", len(orders))
	}
	s.book = b
	s.err = err
	s.refresh = false
	s.generation = uuid.New()
	s.loadedAt = time.Now()
	return s.book, s.err
}
