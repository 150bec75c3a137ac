package server

import (
	"net/http"

	"example.com/yatube/internal/middleware"
	"example.com/yatube/internal/store"
	"github.com/gorilla/mux"
)

// followHandler creates a follow edge from the requester to the named
// author. Following an already-followed author stays a single edge;
// following yourself is rejected.
func (s *Server) followHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	username := mux.Vars(r)["username"]
	author, err := s.store.UserByUsername(username)
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := s.store.CreateFollow(userID, author.ID); err != nil {
		if err == store.ErrSelfFollow {
			writeError(w, http.StatusBadRequest, "you cannot follow yourself")
			return
		}
		logg.Error("http/follow", "Failed to create follow relationship", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.metrics.FollowRequests.Inc()
	logg.Info("http/follow", "Follow edge created")
	http.Redirect(w, r, "/profiles/"+username, http.StatusFound)
}

// unfollowHandler removes the follow edge; removing a missing edge is a
// silent no-op.
func (s *Server) unfollowHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	username := mux.Vars(r)["username"]
	author, err := s.store.UserByUsername(username)
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := s.store.DeleteFollow(userID, author.ID); err != nil {
		logg.Error("http/follow", "Failed to delete follow relationship", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.metrics.UnfollowRequests.Inc()
	http.Redirect(w, r, "/profiles/"+username, http.StatusFound)
}
