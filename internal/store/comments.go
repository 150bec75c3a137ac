package store

import (
	"example.com/yatube/internal/models"
)

func (s *Store) AddComment(c models.Comment) error {
	if err := s.Session.Query(`
		INSERT INTO comments_by_post (post_id, created, comment_id, author_id, author_name, text)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.PostID, c.Created, c.ID, c.AuthorID, c.AuthorName, c.Text,
	).Exec(); err != nil {
		logg.Error("store", "Failed to add comment", err)
		return err
	}
	return nil
}

// CommentsByPost returns a post's comments oldest first.
func (s *Store) CommentsByPost(postID string) ([]models.Comment, error) {
	iter := s.Session.Query(`
		SELECT post_id, created, comment_id, author_id, author_name, text
		FROM comments_by_post WHERE post_id = ?`,
		postID,
	).Iter()

	var res []models.Comment
	var c models.Comment
	for iter.Scan(&c.PostID, &c.Created, &c.ID, &c.AuthorID, &c.AuthorName, &c.Text) {
		res = append(res, c)
		c = models.Comment{}
	}

	if err := iter.Close(); err != nil {
		logg.Error("store", "Failed to iterate comments", err)
		return nil, err
	}
	return res, nil
}
