// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"postdesk/internal/store"
)

// DefaultIdleTTL is how long an untouched form session is kept.
const DefaultIdleTTL = 30 * time.Minute

type entry[T any] struct {
	form     T
	lastUsed time.Time
}

// sessions is a uuid-keyed table of forms with idle expiry.
type sessions[T any] struct {
	mu    sync.Mutex
	forms map[string]*entry[T]
}

func newSessions[T any]() *sessions[T] {
	return &sessions[T]{forms: make(map[string]*entry[T])}
}

func (s *sessions[T]) open(form T, now time.Time) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.forms[id] = &entry[T]{form: form, lastUsed: now}
	s.mu.Unlock()
	return id
}

func (s *sessions[T]) get(id string, now time.Time) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.forms[id]
	if !ok {
		var zero T
		return zero, ErrUnknownForm
	}
	e.lastUsed = now
	return e.form, nil
}

func (s *sessions[T]) close(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.forms[id]
	delete(s.forms, id)
	return ok
}

func (s *sessions[T]) each(fn func(T)) {
	s.mu.Lock()
	forms := make([]T, 0, len(s.forms))
	for _, e := range s.forms {
		forms = append(forms, e.form)
	}
	s.mu.Unlock()

	for _, f := range forms {
		fn(f)
	}
}

func (s *sessions[T]) sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.forms {
		if e.lastUsed.Before(cutoff) {
			delete(s.forms, id)
			n++
		}
	}
	return n
}

func (s *sessions[T]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forms)
}

// Manager hands out form sessions to API clients. Each session owns its own
// form, so the in-flight guard is per client and not global.
type Manager struct {
	posts *store.PostStore
	cats  *store.CategoryStore
	gen   SummaryGenerator

	postForms *sessions[*PostForm]
	catForms  *sessions[*CategoryForm]

	ttl    time.Duration
	now    func() time.Time
	stopCh chan struct{}
	once   sync.Once
}

// NewManager creates a Manager and starts a background goroutine that drops
// sessions idle for longer than ttl. A ttl of zero uses DefaultIdleTTL.
func NewManager(posts *store.PostStore, cats *store.CategoryStore, gen SummaryGenerator, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	m := &Manager{
		posts:     posts,
		cats:      cats,
		gen:       gen,
		postForms: newSessions[*PostForm](),
		catForms:  newSessions[*CategoryForm](),
		ttl:       ttl,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(m.sweepInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := m.Sweep(); n > 0 {
					slog.Debug("idle forms dropped", "dropped", n, "open", m.Open())
				}
			case <-m.stopCh:
				return
			}
		}
	}()

	return m
}

func (m *Manager) sweepInterval() time.Duration {
	if d := m.ttl / 2; d < 5*time.Minute {
		return max(d, time.Second)
	}
	return 5 * time.Minute
}

// Stop terminates the background sweeper.
func (m *Manager) Stop() {
	m.once.Do(func() { close(m.stopCh) })
}

// OpenPost starts a new post form session.
func (m *Manager) OpenPost() (string, *PostForm) {
	f := NewPostForm(m.posts, m.gen)
	return m.postForms.open(f, m.now()), f
}

// Post returns the post form for session id.
func (m *Manager) Post(id string) (*PostForm, error) {
	return m.postForms.get(id, m.now())
}

// ClosePost discards a post form session.
func (m *Manager) ClosePost(id string) bool {
	return m.postForms.close(id)
}

// OpenCategory starts a new category form session.
func (m *Manager) OpenCategory() (string, *CategoryForm) {
	f := NewCategoryForm(m.cats)
	return m.catForms.open(f, m.now()), f
}

// Category returns the category form for session id.
func (m *Manager) Category(id string) (*CategoryForm, error) {
	return m.catForms.get(id, m.now())
}

// CloseCategory discards a category form session.
func (m *Manager) CloseCategory(id string) bool {
	return m.catForms.close(id)
}

// PostDeleted resets every post form editing id.
func (m *Manager) PostDeleted(id int64) {
	m.postForms.each(func(f *PostForm) { f.ResetIfTarget(id) })
}

// CategoryDeleted resets every category form editing id.
func (m *Manager) CategoryDeleted(id int64) {
	m.catForms.each(func(f *CategoryForm) { f.ResetIfTarget(id) })
}

// Sweep drops idle sessions and returns how many were removed.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.ttl)
	return m.postForms.sweep(cutoff) + m.catForms.sweep(cutoff)
}

// Open returns the number of live sessions.
func (m *Manager) Open() int {
	return m.postForms.len() + m.catForms.len()
}
