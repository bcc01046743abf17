// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"postdesk/internal/editor"
	"postdesk/internal/models"
)

// formSession is returned when a form is opened.
type formSession[S any] struct {
	ID    string `json:"id"`
	State S      `json:"state"`
}

// savedEntity is returned by a successful form save.
type savedEntity[E, S any] struct {
	Saved E `json:"saved"`
	State S `json:"state"`
}

// deletedEntity is returned by a form delete.
type deletedEntity[S any] struct {
	Deleted bool `json:"deleted"`
	State   S    `json:"state"`
}

// --- Post forms ---

func (a *API) postForm(w http.ResponseWriter, r *http.Request) (*editor.PostForm, bool) {
	f, err := a.forms.Post(chi.URLParam(r, "sid"))
	if err != nil {
		writeDomainError(w, r, err)
		return nil, false
	}
	return f, true
}

// OpenPostForm starts a post form session in create mode.
func (a *API) OpenPostForm(w http.ResponseWriter, r *http.Request) {
	id, f := a.forms.OpenPost()
	writeJSON(w, http.StatusCreated, formSession[editor.PostState]{ID: id, State: f.State()})
}

// GetPostForm returns the form state.
func (a *API) GetPostForm(w http.ResponseWriter, r *http.Request) {
	if f, ok := a.postForm(w, r); ok {
		writeJSON(w, http.StatusOK, f.State())
	}
}

// PatchPostForm sets the supplied fields.
func (a *API) PatchPostForm(w http.ResponseWriter, r *http.Request) {
	f, ok := a.postForm(w, r)
	if !ok {
		return
	}
	var p editor.PostPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	writeJSON(w, http.StatusOK, f.Apply(p))
}

// EditPostForm loads post {id} into the form.
func (a *API) EditPostForm(w http.ResponseWriter, r *http.Request) {
	f, ok := a.postForm(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	st, err := f.Edit(id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// SavePostForm creates or updates the post and resets the form.
func (a *API) SavePostForm(w http.ResponseWriter, r *http.Request) {
	f, ok := a.postForm(w, r)
	if !ok {
		return
	}
	p, err := f.Save(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, savedEntity[models.Post, editor.PostState]{Saved: p, State: f.State()})
}

// ResetPostForm clears the form.
func (a *API) ResetPostForm(w http.ResponseWriter, r *http.Request) {
	if f, ok := a.postForm(w, r); ok {
		writeJSON(w, http.StatusOK, f.Reset())
	}
}

// GeneratePostSummary fills the summary field from the current title.
func (a *API) GeneratePostSummary(w http.ResponseWriter, r *http.Request) {
	f, ok := a.postForm(w, r)
	if !ok {
		return
	}
	if _, err := f.GenerateSummary(r.Context()); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f.State())
}

// DeletePostForm deletes post {id} from the form's list. The form and every
// other form editing the post are reset.
func (a *API) DeletePostForm(w http.ResponseWriter, r *http.Request) {
	f, ok := a.postForm(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	deleted := f.Delete(r.Context(), id)
	if deleted {
		slog.Info("post deleted", "id", id)
	}
	a.previews.Invalidate(id)
	a.forms.PostDeleted(id)
	writeJSON(w, http.StatusOK, deletedEntity[editor.PostState]{Deleted: deleted, State: f.State()})
}

// ClosePostForm discards the session.
func (a *API) ClosePostForm(w http.ResponseWriter, r *http.Request) {
	if !a.forms.ClosePost(chi.URLParam(r, "sid")) {
		writeDomainError(w, r, editor.ErrUnknownForm)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Category forms ---

func (a *API) categoryForm(w http.ResponseWriter, r *http.Request) (*editor.CategoryForm, bool) {
	f, err := a.forms.Category(chi.URLParam(r, "sid"))
	if err != nil {
		writeDomainError(w, r, err)
		return nil, false
	}
	return f, true
}

// OpenCategoryForm starts a category form session in create mode.
func (a *API) OpenCategoryForm(w http.ResponseWriter, r *http.Request) {
	id, f := a.forms.OpenCategory()
	writeJSON(w, http.StatusCreated, formSession[editor.CategoryState]{ID: id, State: f.State()})
}

// GetCategoryForm returns the form state.
func (a *API) GetCategoryForm(w http.ResponseWriter, r *http.Request) {
	if f, ok := a.categoryForm(w, r); ok {
		writeJSON(w, http.StatusOK, f.State())
	}
}

// PatchCategoryForm sets the supplied fields. A name change re-derives the
// slug unless the slug was typed by hand or an entity is being edited.
func (a *API) PatchCategoryForm(w http.ResponseWriter, r *http.Request) {
	f, ok := a.categoryForm(w, r)
	if !ok {
		return
	}
	var p editor.CategoryPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	writeJSON(w, http.StatusOK, f.Apply(p))
}

// EditCategoryForm loads category {id} into the form.
func (a *API) EditCategoryForm(w http.ResponseWriter, r *http.Request) {
	f, ok := a.categoryForm(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	st, err := f.Edit(id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// SaveCategoryForm creates or updates the category and resets the form.
func (a *API) SaveCategoryForm(w http.ResponseWriter, r *http.Request) {
	f, ok := a.categoryForm(w, r)
	if !ok {
		return
	}
	c, err := f.Save(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, savedEntity[models.Category, editor.CategoryState]{Saved: c, State: f.State()})
}

// DeleteCategoryForm deletes category {id} from the form's list. The form
// and every other form editing the category are reset.
func (a *API) DeleteCategoryForm(w http.ResponseWriter, r *http.Request) {
	f, ok := a.categoryForm(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	deleted := f.Delete(r.Context(), id)
	if deleted {
		slog.Info("category deleted", "id", id)
	}
	a.forms.CategoryDeleted(id)
	writeJSON(w, http.StatusOK, deletedEntity[editor.CategoryState]{Deleted: deleted, State: f.State()})
}

// ResetCategoryForm clears the form.
func (a *API) ResetCategoryForm(w http.ResponseWriter, r *http.Request) {
	if f, ok := a.categoryForm(w, r); ok {
		writeJSON(w, http.StatusOK, f.Reset())
	}
}

// CloseCategoryForm discards the session.
func (a *API) CloseCategoryForm(w http.ResponseWriter, r *http.Request) {
	if !a.forms.CloseCategory(chi.URLParam(r, "sid")) {
		writeDomainError(w, r, editor.ErrUnknownForm)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
