package server

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"example.com/yatube/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// signupHandler registers a user and hands back a token right away.
func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	if len(body.Username) == 0 || len(body.Username) > 50 {
		writeError(w, http.StatusBadRequest, "username must be 1-50 characters")
		return
	}
	if len(body.Password) < 6 {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, err := s.store.CreateUser(body.Username, string(hash))
	if err != nil {
		if err == store.ErrUsernameTaken {
			writeError(w, http.StatusBadRequest, "username already taken")
			return
		}
		logg.Error("http/auth", "Failed to create user", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := issueToken(user.ID, user.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	logg.Info("http/auth", "User registered: "+user.Username)
	writeJSON(w, http.StatusOK, authResponse{UserID: user.ID, Username: user.Username, Token: token})
}

// loginHandler exchanges credentials for a token. GET names the login
// flow for redirected unauthenticated writes.
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		writeJSON(w, http.StatusOK, map[string]string{
			"detail": "authentication required",
			"next":   r.URL.Query().Get("next"),
		})
		return
	}

	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	user, err := s.store.UserByUsername(body.Username)
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PWHash), []byte(body.Password)) != nil {
		logg.Info("http/auth", "Login rejected: bad password")
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := issueToken(user.ID, user.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{UserID: user.ID, Username: user.Username, Token: token})
}

func issueToken(userID, username string) (string, error) {
	secret := []byte(os.Getenv("JWT_SECRET"))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	return token.SignedString(secret)
}
