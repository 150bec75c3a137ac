package server

import (
	"encoding/json"
	"net/http"

	"example.com/yatube/internal/middleware"
	"example.com/yatube/internal/models"
	"example.com/yatube/internal/store"
	"github.com/gorilla/mux"
)

// Groups are managed administratively, not by regular users.

func (s *Server) createGroupHandler(w http.ResponseWriter, r *http.Request) {
	username, _ := middleware.UsernameFromContext(r.Context())
	if !s.isAdmin(username) {
		writeError(w, http.StatusForbidden, "administrator access required")
		return
	}

	var g models.Group
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	if g.Slug == "" || g.Title == "" {
		writeError(w, http.StatusBadRequest, "slug and title are required")
		return
	}

	if err := s.store.CreateGroup(g); err != nil {
		logg.Error("http/groups", "Failed to create group", err)
		writeError(w, http.StatusInternalServerError, "failed to create group")
		return
	}

	logg.Info("http/groups", "Group created: "+g.Slug)
	writeJSON(w, http.StatusCreated, g)
}

// deleteGroupHandler removes a group. Its posts stay, with the group
// reference cleared by the store.
func (s *Server) deleteGroupHandler(w http.ResponseWriter, r *http.Request) {
	username, _ := middleware.UsernameFromContext(r.Context())
	if !s.isAdmin(username) {
		writeError(w, http.StatusForbidden, "administrator access required")
		return
	}

	slug := mux.Vars(r)["slug"]
	if err := s.store.DeleteGroup(slug); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "group not found")
			return
		}
		logg.Error("http/groups", "Failed to delete group", err)
		writeError(w, http.StatusInternalServerError, "failed to delete group")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
