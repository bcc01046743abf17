// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"postdesk/internal/models"
)

// recentPostsLimit bounds the post list embedded in the dashboard.
const recentPostsLimit = 5

// dashboardView is everything the dashboard header and stat cards show.
type dashboardView struct {
	Settings      models.Settings `json:"settings"`
	PostCount     int             `json:"postCount"`
	CategoryCount int             `json:"categoryCount"`
	RecentPosts   []models.Post   `json:"recentPosts"`
	AIRemote      bool            `json:"aiRemote"`
}

// Dashboard returns the profile, stat counters and the latest posts.
func (a *API) Dashboard(w http.ResponseWriter, r *http.Request) {
	posts := a.posts.List()
	if len(posts) > recentPostsLimit {
		posts = posts[:recentPostsLimit]
	}
	writeJSON(w, http.StatusOK, dashboardView{
		Settings:      a.settings.Current(),
		PostCount:     a.posts.Count(),
		CategoryCount: a.cats.Count(),
		RecentPosts:   posts,
		AIRemote:      a.summary != nil && a.summary.Remote(),
	})
}
