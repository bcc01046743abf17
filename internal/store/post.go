// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"postdesk/internal/kv"
	"postdesk/internal/models"
)

// PostStore owns all post drafts.
type PostStore struct {
	mu    sync.RWMutex
	kv    *kv.Store
	posts []models.Post // newest insert first
	ids   idSource
	now   func() time.Time
}

// NewPostStore loads posts from kvs, starting from the seed drafts when the
// key is absent or unreadable. The seed is not written back until the first
// change, so a transient read failure never overwrites stored data.
func NewPostStore(ctx context.Context, kvs *kv.Store) *PostStore {
	s := &PostStore{kv: kvs, now: time.Now}

	var posts []models.Post
	if !kvs.Load(ctx, PostsKey, &posts) || posts == nil {
		posts = seedPosts(s.now())
		slog.Info("posts initialised from seed", "count", len(posts))
	}
	s.posts = posts
	for _, p := range posts {
		s.ids.observe(p.ID)
	}
	return s
}

// seedPosts returns the drafts shown on first run.
func seedPosts(now time.Time) []models.Post {
	day := 24 * time.Hour
	return []models.Post{
		{
			ID:        1,
			Title:     "Front-end geliştiriciler için AI destekli blog stratejisi",
			Summary:   "Teknik içerikleri, kariyer hikâyelerini ve GitHub projelerini yapay zeka yardımıyla nasıl daha görünür hale getirebileceğini anlatan bir rehber.",
			CreatedAt: now.Add(-2 * day),
		},
		{
			ID:        2,
			Title:     "Portfolyo odaklı içerik üretimi",
			Summary:   "LinkedIn, GitHub ve kişisel web siteni aynı hikâye etrafında birleştiren, sürdürülebilir bir içerik sistemi kurma fikri.",
			CreatedAt: now.Add(-day),
		},
	}
}

// List returns all posts, most recent first. Posts with equal timestamps keep
// their collection order.
func (s *PostStore) List() []models.Post {
	s.mu.RLock()
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Get returns a post by id.
func (s *PostStore) Get(id int64) (models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.posts[i], nil
	}
	return models.Post{}, ErrNotFound
}

// Count returns the number of posts.
func (s *PostStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// Create validates f, prepends a new post and persists the collection.
func (s *PostStore) Create(ctx context.Context, f models.PostFields) (models.Post, error) {
	title, summary, err := validatePost(f)
	if err != nil {
		return models.Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := models.Post{
		ID:        s.ids.next(now),
		Title:     title,
		Summary:   summary,
		CreatedAt: now,
	}
	s.posts = append([]models.Post{p}, s.posts...)
	s.persist(ctx)
	return p, nil
}

// Update replaces the title and summary of post id. ID and CreatedAt never change.
func (s *PostStore) Update(ctx context.Context, id int64, f models.PostFields) (models.Post, error) {
	title, summary, err := validatePost(f)
	if err != nil {
		return models.Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Post{}, ErrNotFound
	}
	s.posts[i].Title = title
	s.posts[i].Summary = summary
	s.persist(ctx)
	return s.posts[i], nil
}

// Delete removes post id if present and reports whether it existed.
// The collection is persisted either way.
func (s *PostStore) Delete(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i >= 0 {
		s.posts = append(s.posts[:i:i], s.posts[i+1:]...)
	}
	s.persist(ctx)
	return i >= 0
}

// indexOf must be called with s.mu held.
func (s *PostStore) indexOf(id int64) int {
	for i, p := range s.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with s.mu held. Write failures are logged by kv.
func (s *PostStore) persist(ctx context.Context) {
	_ = s.kv.Save(ctx, PostsKey, s.posts)
}

// SummaryTitle trims a title sent for summary generation and checks it
// against the post title rules.
func SummaryTitle(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", &ValidationError{Field: "title", Message: "enter a title first"}
	}
	return requireText("title", s, maxTitleLen)
}

func validatePost(f models.PostFields) (title, summary string, err error) {
	if title, err = requireText("title", f.Title, maxTitleLen); err != nil {
		return "", "", err
	}
	if summary, err = optionalText("summary", f.Summary, maxSummaryLen); err != nil {
		return "", "", err
	}
	return title, summary, nil
}
