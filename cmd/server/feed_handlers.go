package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"example.com/yatube/internal/feed"
	"example.com/yatube/internal/middleware"
	"example.com/yatube/internal/store"
	"github.com/gorilla/mux"
)

// indexHandler serves the home feed. The rendered body is cached per page
// number for a short window; within it the snapshot is returned as-is,
// even when posts changed underneath. Staleness here is deliberate.
func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	page := feed.ParsePage(r.URL.Query().Get("page"))
	key := fmt.Sprintf("index:page:%d", page)

	if body, ok := s.pages.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	pg, err := s.feeds.Index(page)
	if err != nil {
		logg.Error("http/index", "Failed to assemble index feed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	body, err := json.Marshal(IndexPage{Page: pg})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.pages.Set(r.Context(), key, body, s.cacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func (s *Server) groupHandler(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	group, err := s.store.GroupBySlug(slug)
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "group not found")
			return
		}
		logg.Error("http/group", "Failed to load group", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	pg, err := s.feeds.Group(slug, feed.ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		logg.Error("http/group", "Failed to assemble group feed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, GroupPage{Group: group, Page: pg})
}

func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	author, err := s.store.UserByUsername(username)
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		logg.Error("http/profile", "Failed to load profile user", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	pg, err := s.feeds.Profile(author.ID, feed.ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		logg.Error("http/profile", "Failed to assemble profile feed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// The following flag is only meaningful for an authenticated viewer.
	following := false
	if viewerID, ok := middleware.UserIDFromContext(r.Context()); ok {
		following, _ = s.store.IsFollowing(viewerID, author.ID)
	}

	writeJSON(w, http.StatusOK, ProfilePage{Author: author, Following: following, Page: pg})
}

func (s *Server) postDetailHandler(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["post_id"]

	post, err := s.store.PostByID(postID)
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		logg.Error("http/post", "Failed to load post", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	comments, err := s.store.CommentsByPost(postID)
	if err != nil {
		logg.Error("http/post", "Failed to load comments", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, PostDetailPage{Post: post, Comments: comments})
}

// followIndexHandler serves the personalized feed of followed authors.
func (s *Server) followIndexHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	pg, err := s.feeds.Following(userID, feed.ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		logg.Error("http/follow", "Failed to assemble follow feed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, FollowFeedPage{Page: pg})
}
