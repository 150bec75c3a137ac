package store

import (
	"example.com/yatube/internal/models"
	"github.com/gocql/gocql"
)

// CreateFollow records that userID follows authorID. The (user, author)
// pair is the primary key on both tables, so a repeated follow is an
// upsert of the same row and stays a single edge. Self-follows are
// rejected before touching storage.
func (s *Store) CreateFollow(userID, authorID string) error {
	if userID == authorID {
		return ErrSelfFollow
	}

	batch := s.Session.NewBatch(gocql.LoggedBatch)
	batch.Query(`INSERT INTO follows (user_id, author_id) VALUES (?, ?)`, userID, authorID)
	batch.Query(`INSERT INTO followers_by_author (author_id, user_id) VALUES (?, ?)`, authorID, userID)

	if err := s.Session.ExecuteBatch(batch); err != nil {
		logg.Error("store", "Failed to create follow relationship", err)
		return err
	}

	logg.Info("store", "Follow relationship created")
	return nil
}

// DeleteFollow removes the edge; deleting a missing edge is a no-op.
func (s *Store) DeleteFollow(userID, authorID string) error {
	batch := s.Session.NewBatch(gocql.LoggedBatch)
	batch.Query(`DELETE FROM follows WHERE user_id = ? AND author_id = ?`, userID, authorID)
	batch.Query(`DELETE FROM followers_by_author WHERE author_id = ? AND user_id = ?`, authorID, userID)

	if err := s.Session.ExecuteBatch(batch); err != nil {
		logg.Error("store", "Failed to delete follow relationship", err)
		return err
	}
	return nil
}

func (s *Store) IsFollowing(userID, authorID string) (bool, error) {
	var found string
	err := s.Session.Query(
		`SELECT author_id FROM follows WHERE user_id = ? AND author_id = ?`,
		userID, authorID,
	).Scan(&found)
	if err != nil {
		if err == gocql.ErrNotFound {
			return false, nil
		}
		logg.Error("store", "Failed to query follow edge", err)
		return false, err
	}
	return true, nil
}

func (s *Store) Followers(authorID string) ([]string, error) {
	iter := s.Session.Query(
		`SELECT user_id FROM followers_by_author WHERE author_id = ?`,
		authorID,
	).Iter()

	var id string
	var res []string
	for iter.Scan(&id) {
		res = append(res, id)
	}

	if err := iter.Close(); err != nil {
		logg.Error("store", "Failed to get followers", err)
		return nil, err
	}
	return res, nil
}

// --- Materialized follow feeds ---

func (s *Store) AddToFeed(userID string, p models.Post) error {
	if err := s.Session.Query(`
		INSERT INTO feed_by_user (user_id, `+postColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, p.ID, p.AuthorID, p.AuthorName, p.GroupSlug, p.GroupTitle,
		p.Text, p.ImagePath, p.PubDate,
	).Exec(); err != nil {
		logg.Error("store", "Failed to add post to feed", err)
		return err
	}
	return nil
}

// RemoveFromFeed drops one post from a user's materialized feed. The
// caller supplies the full post (deletion events carry it) because the
// row's clustering key includes pub_date.
func (s *Store) RemoveFromFeed(userID string, p models.Post) error {
	if err := s.Session.Query(
		`DELETE FROM feed_by_user WHERE user_id = ? AND pub_date = ? AND post_id = ?`,
		userID, p.PubDate, p.ID,
	).Exec(); err != nil {
		logg.Error("store", "Failed to remove post from feed", err)
		return err
	}
	return nil
}

func (s *Store) Feed(userID string, limit int) ([]models.Post, error) {
	return s.scanPosts(s.Session.Query(`
		SELECT `+postColumns+` FROM feed_by_user WHERE user_id = ? LIMIT ?`,
		userID, limit,
	).Iter())
}
