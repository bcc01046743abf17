// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"context"
	"sync"

	"postdesk/internal/models"
	"postdesk/internal/store"
)

// PostState is a snapshot of a PostForm.
type PostState struct {
	Title      string                  `json:"title"`
	Summary    string                  `json:"summary"`
	EditingID  *int64                  `json:"editingId"`
	Busy       bool                    `json:"busy"`
	LastSource models.GenerationSource `json:"lastSource,omitempty"`
}

// PostPatch carries the fields a client changed. Nil fields are left alone.
type PostPatch struct {
	Title   *string `json:"title,omitempty"`
	Summary *string `json:"summary,omitempty"`
}

// PostForm is the post editor. With no edit target Save creates a post,
// otherwise it updates the target.
type PostForm struct {
	mu    sync.Mutex
	posts *store.PostStore
	gen   SummaryGenerator

	title      string
	summary    string
	target     *int64
	busy       bool
	generation uint64
	lastSource models.GenerationSource
}

// NewPostForm returns an empty form in create mode.
func NewPostForm(posts *store.PostStore, gen SummaryGenerator) *PostForm {
	return &PostForm{posts: posts, gen: gen}
}

// State returns a copy of the current form state.
func (f *PostForm) State() PostState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

func (f *PostForm) stateLocked() PostState {
	return PostState{
		Title:      f.title,
		Summary:    f.summary,
		EditingID:  cloneID(f.target),
		Busy:       f.busy,
		LastSource: f.lastSource,
	}
}

// Apply sets the non-nil fields of p.
func (f *PostForm) Apply(p PostPatch) PostState {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p.Title != nil {
		f.title = *p.Title
	}
	if p.Summary != nil {
		f.summary = *p.Summary
	}
	return f.stateLocked()
}

// Edit loads post id into the form.
func (f *PostForm) Edit(id int64) (PostState, error) {
	p, err := f.posts.Get(id)
	if err != nil {
		return PostState{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.title = p.Title
	f.summary = p.Summary
	f.target = &p.ID
	f.lastSource = ""
	f.generation++
	return f.stateLocked(), nil
}

// Reset clears the fields and the edit target. A summary still in flight
// will be discarded when it arrives.
func (f *PostForm) Reset() PostState {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
	return f.stateLocked()
}

func (f *PostForm) resetLocked() {
	f.title = ""
	f.summary = ""
	f.target = nil
	f.lastSource = ""
	f.generation++
}

// Save creates or updates a post from the form fields and resets the form
// on success. On failure the form is left untouched.
func (f *PostForm) Save(ctx context.Context) (models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fields := models.PostFields{Title: f.title, Summary: f.summary}

	var (
		p   models.Post
		err error
	)
	if f.target == nil {
		p, err = f.posts.Create(ctx, fields)
	} else {
		p, err = f.posts.Update(ctx, *f.target, fields)
	}
	if err != nil {
		return models.Post{}, err
	}

	f.resetLocked()
	return p, nil
}

// Delete removes post id and resets the form if it was being edited.
func (f *PostForm) Delete(ctx context.Context, id int64) bool {
	existed := f.posts.Delete(ctx, id)
	f.ResetIfTarget(id)
	return existed
}

// GenerateSummary asks the generator for a summary of the current title and
// stores it in the form. Only one request per form may be outstanding. If
// the form is reset or retargeted before the answer arrives, the answer is
// returned with ErrStaleResult and not applied.
func (f *PostForm) GenerateSummary(ctx context.Context) (models.GenerationResult, error) {
	f.mu.Lock()
	title, err := store.SummaryTitle(f.title)
	if err != nil {
		f.mu.Unlock()
		return models.GenerationResult{}, err
	}
	if f.busy {
		f.mu.Unlock()
		return models.GenerationResult{}, ErrGenerationInFlight
	}
	f.busy = true
	started := f.generation
	f.mu.Unlock()

	res := f.gen.Generate(ctx, title)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false

	if f.generation != started {
		return res, ErrStaleResult
	}
	f.summary = res.Summary
	f.lastSource = res.Source
	return res, nil
}

// ResetIfTarget resets the form when it is editing id. Used when the entity
// is deleted outside this form.
func (f *PostForm) ResetIfTarget(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.target == nil || *f.target != id {
		return false
	}
	f.resetLocked()
	return true
}
