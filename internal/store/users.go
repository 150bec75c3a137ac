package store

import (
	"time"

	"example.com/yatube/internal/models"
	"github.com/gocql/gocql"
)

// UserByUsername returns the user registered under username.
// Unknown usernames yield ErrNotFound.
func (s *Store) UserByUsername(username string) (models.User, error) {
	var u models.User
	err := s.Session.Query(
		`SELECT user_id, username, pw_hash, joined FROM users_by_username WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username, &u.PWHash, &u.Joined)
	if err != nil {
		if err == gocql.ErrNotFound {
			return models.User{}, ErrNotFound
		}
		logg.Error("store", "Failed to query user by username", err)
		return models.User{}, err
	}
	return u, nil
}

// CreateUser registers a new user. The username row is claimed with a
// lightweight transaction so two concurrent signups cannot both win.
func (s *Store) CreateUser(username, pwHash string) (models.User, error) {
	u := models.User{
		ID:       gocql.TimeUUID().String(),
		Username: username,
		PWHash:   pwHash,
		Joined:   time.Now().UTC(),
	}

	result := make(map[string]interface{})
	applied, err := s.Session.Query(`
		INSERT INTO users_by_username (username, user_id, pw_hash, joined)
		VALUES (?, ?, ?, ?) IF NOT EXISTS`,
		u.Username, u.ID, u.PWHash, u.Joined,
	).MapScanCAS(result)
	if err != nil {
		logg.Error("store", "Failed to create username entry", err)
		return models.User{}, err
	}
	if !applied {
		return models.User{}, ErrUsernameTaken
	}

	err = s.Session.Query(`
		INSERT INTO users (user_id, username, pw_hash, joined)
		VALUES (?, ?, ?, ?)`,
		u.ID, u.Username, u.PWHash, u.Joined,
	).Exec()
	if err != nil {
		logg.Error("store", "Failed to create user in main table", err)
		return models.User{}, err
	}

	logg.Info("store", "User created successfully")
	return u, nil
}
