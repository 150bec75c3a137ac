package server

import (
	"encoding/json"
	"net/http"

	"example.com/yatube/internal/feed"
	"example.com/yatube/internal/models"
)

// View models: one explicit struct per page type, serialized as JSON.

type IndexPage struct {
	Page feed.Page `json:"page"`
}

type GroupPage struct {
	Group models.Group `json:"group"`
	Page  feed.Page    `json:"page"`
}

type ProfilePage struct {
	Author    models.User `json:"author"`
	Following bool        `json:"following"`
	Page      feed.Page   `json:"page"`
}

type PostDetailPage struct {
	Post     models.Post      `json:"post"`
	Comments []models.Comment `json:"comments"`
}

type FollowFeedPage struct {
	Page feed.Page `json:"page"`
}

// FormErrorPage re-renders a rejected submission: the message plus the
// submitted values, so the client can show the form again.
type FormErrorPage struct {
	Error string `json:"error"`
	Text  string `json:"text,omitempty"`
	Group string `json:"group,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
