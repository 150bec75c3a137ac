package models

import "time"

type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	PWHash   string    `json:"-"`
	Joined   time.Time `json:"joined"`
}

// Group is a named topical category posts may belong to.
// Groups are created administratively and referenced, never owned, by posts.
type Group struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Post is the primary content entity. GroupSlug is empty for ungrouped
// posts and is cleared (not the post deleted) when its group is removed.
// PubDate is assigned once at creation and never changes.
type Post struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	GroupSlug  string    `json:"group_slug,omitempty"`
	GroupTitle string    `json:"group_title,omitempty"`
	Text       string    `json:"text"`
	ImagePath  string    `json:"image_path,omitempty"`
	PubDate    time.Time `json:"pub_date"`
}

// Comment lives and dies with its post.
type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	Created    time.Time `json:"created"`
}

// Follow means UserID subscribes to AuthorID's posts.
type Follow struct {
	UserID   string `json:"user_id"`
	AuthorID string `json:"author_id"`
}
