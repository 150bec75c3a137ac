package store

import (
	"time"

	"example.com/yatube/internal/models"
	"github.com/gocql/gocql"
)

func (s *Store) CreateGroup(g models.Group) error {
	if err := s.Session.Query(`
		INSERT INTO groups (slug, title, description)
		VALUES (?, ?, ?)`,
		g.Slug, g.Title, g.Description,
	).Exec(); err != nil {
		logg.Error("store", "Failed to create group", err)
		return err
	}
	return nil
}

func (s *Store) GroupBySlug(slug string) (models.Group, error) {
	var g models.Group
	err := s.Session.Query(
		`SELECT slug, title, description FROM groups WHERE slug = ?`,
		slug,
	).Scan(&g.Slug, &g.Title, &g.Description)
	if err != nil {
		if err == gocql.ErrNotFound {
			return models.Group{}, ErrNotFound
		}
		logg.Error("store", "Failed to query group by slug", err)
		return models.Group{}, err
	}
	return g, nil
}

// DeleteGroup removes a group without deleting its posts: each post keeps
// living with an empty group reference. The nullify walks the group's
// partition and rewrites every denormalized post row. feed_by_user copies
// fanned out earlier keep the old group labels; those rows are display
// snapshots keyed by post, not group, and die with the post itself.
func (s *Store) DeleteGroup(slug string) error {
	if _, err := s.GroupBySlug(slug); err != nil {
		return err
	}

	iter := s.Session.Query(`
		SELECT post_id, author_id, pub_date FROM posts_by_group WHERE group_slug = ?`,
		slug,
	).Iter()

	var postID, authorID string
	var pubDate time.Time
	for iter.Scan(&postID, &authorID, &pubDate) {
		batch := s.Session.NewBatch(gocql.LoggedBatch)
		batch.Query(`UPDATE posts SET group_slug = '', group_title = '' WHERE post_id = ?`, postID)
		batch.Query(`UPDATE posts_by_time SET group_slug = '', group_title = ''
			WHERE bucket = ? AND pub_date = ? AND post_id = ?`, timeBucket, pubDate, postID)
		batch.Query(`UPDATE posts_by_author SET group_slug = '', group_title = ''
			WHERE author_id = ? AND pub_date = ? AND post_id = ?`, authorID, pubDate, postID)
		if err := s.Session.ExecuteBatch(batch); err != nil {
			iter.Close()
			logg.Error("store", "Failed to nullify group on post", err)
			return err
		}
	}
	if err := iter.Close(); err != nil {
		logg.Error("store", "Failed to iterate group posts", err)
		return err
	}

	batch := s.Session.NewBatch(gocql.LoggedBatch)
	batch.Query(`DELETE FROM posts_by_group WHERE group_slug = ?`, slug)
	batch.Query(`DELETE FROM groups WHERE slug = ?`, slug)
	if err := s.Session.ExecuteBatch(batch); err != nil {
		logg.Error("store", "Failed to delete group", err)
		return err
	}

	logg.Info("store", "Group deleted, posts kept with empty group")
	return nil
}
