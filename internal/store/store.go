package store

import (
	"errors"

	"example.com/yatube/internal/models"
)

var (
	// ErrNotFound is returned for unknown slugs, usernames and post ids.
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("users cannot follow themselves")
)

// StoreInterface is the persistence contract for the blog domain.
// Referential actions are explicit here: deleting a group nullifies the
// group reference on its posts, deleting a post cascades to its comments.
type StoreInterface interface {
	// users
	CreateUser(username, pwHash string) (models.User, error)
	UserByUsername(username string) (models.User, error)

	// groups
	CreateGroup(g models.Group) error
	GroupBySlug(slug string) (models.Group, error)
	DeleteGroup(slug string) error

	// posts
	CreatePost(p models.Post) error
	PostByID(id string) (models.Post, error)
	UpdatePost(p models.Post, prevGroup string) error
	DeletePost(p models.Post) error
	RecentPosts(limit int) ([]models.Post, error)
	PostsByGroup(slug string, limit int) ([]models.Post, error)
	PostsByAuthor(authorID string, limit int) ([]models.Post, error)

	// comments
	AddComment(c models.Comment) error
	CommentsByPost(postID string) ([]models.Comment, error)

	// follows
	CreateFollow(userID, authorID string) error
	DeleteFollow(userID, authorID string) error
	IsFollowing(userID, authorID string) (bool, error)
	Followers(authorID string) ([]string, error)

	// materialized follow feeds
	AddToFeed(userID string, p models.Post) error
	RemoveFromFeed(userID string, p models.Post) error
	Feed(userID string, limit int) ([]models.Post, error)

	Close()
}
