package store

import (
	"time"

	"example.com/yatube/internal/models"
	"github.com/gocql/gocql"
)

const postColumns = `post_id, author_id, author_name, group_slug, group_title, text, image_path, pub_date`

// CreatePost writes the post into its canonical row and every read-path
// table in one logged batch.
func (s *Store) CreatePost(p models.Post) error {
	batch := s.Session.NewBatch(gocql.LoggedBatch)
	batch.Query(`INSERT INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.AuthorID, p.AuthorName, p.GroupSlug, p.GroupTitle, p.Text, p.ImagePath, p.PubDate)
	batch.Query(`INSERT INTO posts_by_time (bucket, `+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		timeBucket, p.ID, p.AuthorID, p.AuthorName, p.GroupSlug, p.GroupTitle, p.Text, p.ImagePath, p.PubDate)
	batch.Query(`INSERT INTO posts_by_author (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.AuthorID, p.AuthorName, p.GroupSlug, p.GroupTitle, p.Text, p.ImagePath, p.PubDate)
	if p.GroupSlug != "" {
		batch.Query(`INSERT INTO posts_by_group (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.AuthorID, p.AuthorName, p.GroupSlug, p.GroupTitle, p.Text, p.ImagePath, p.PubDate)
	}

	if err := s.Session.ExecuteBatch(batch); err != nil {
		logg.Error("store", "Failed to create post", err)
		return err
	}
	return nil
}

func (s *Store) PostByID(id string) (models.Post, error) {
	var p models.Post
	err := s.Session.Query(
		`SELECT `+postColumns+` FROM posts WHERE post_id = ?`, id,
	).Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.GroupSlug, &p.GroupTitle,
		&p.Text, &p.ImagePath, &p.PubDate)
	if err != nil {
		if err == gocql.ErrNotFound {
			return models.Post{}, ErrNotFound
		}
		logg.Error("store", "Failed to query post by id", err)
		return models.Post{}, err
	}
	return p, nil
}

// UpdatePost rewrites the mutable columns (text, group, image) across the
// denormalized tables. pub_date never changes, so the clustering keys of
// the read-path rows stay valid. prevGroup is the group slug the post had
// before the edit; when it differs the old posts_by_group row is removed.
func (s *Store) UpdatePost(p models.Post, prevGroup string) error {
	batch := s.Session.NewBatch(gocql.LoggedBatch)
	batch.Query(`UPDATE posts SET group_slug = ?, group_title = ?, text = ?, image_path = ?
		WHERE post_id = ?`,
		p.GroupSlug, p.GroupTitle, p.Text, p.ImagePath, p.ID)
	batch.Query(`UPDATE posts_by_time SET group_slug = ?, group_title = ?, text = ?, image_path = ?
		WHERE bucket = ? AND pub_date = ? AND post_id = ?`,
		p.GroupSlug, p.GroupTitle, p.Text, p.ImagePath, timeBucket, p.PubDate, p.ID)
	batch.Query(`UPDATE posts_by_author SET group_slug = ?, group_title = ?, text = ?, image_path = ?
		WHERE author_id = ? AND pub_date = ? AND post_id = ?`,
		p.GroupSlug, p.GroupTitle, p.Text, p.ImagePath, p.AuthorID, p.PubDate, p.ID)

	if prevGroup != "" && prevGroup != p.GroupSlug {
		batch.Query(`DELETE FROM posts_by_group WHERE group_slug = ? AND pub_date = ? AND post_id = ?`,
			prevGroup, p.PubDate, p.ID)
	}
	if p.GroupSlug != "" {
		batch.Query(`INSERT INTO posts_by_group (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.AuthorID, p.AuthorName, p.GroupSlug, p.GroupTitle, p.Text, p.ImagePath, p.PubDate)
	}

	if err := s.Session.ExecuteBatch(batch); err != nil {
		logg.Error("store", "Failed to update post", err)
		return err
	}
	return nil
}

// DeletePost removes the post from every table and cascades to its
// comments. Follower feed rows are cleaned up by the worker, which reacts
// to the post_deleted event.
func (s *Store) DeletePost(p models.Post) error {
	batch := s.Session.NewBatch(gocql.LoggedBatch)
	batch.Query(`DELETE FROM posts WHERE post_id = ?`, p.ID)
	batch.Query(`DELETE FROM posts_by_time WHERE bucket = ? AND pub_date = ? AND post_id = ?`,
		timeBucket, p.PubDate, p.ID)
	batch.Query(`DELETE FROM posts_by_author WHERE author_id = ? AND pub_date = ? AND post_id = ?`,
		p.AuthorID, p.PubDate, p.ID)
	if p.GroupSlug != "" {
		batch.Query(`DELETE FROM posts_by_group WHERE group_slug = ? AND pub_date = ? AND post_id = ?`,
			p.GroupSlug, p.PubDate, p.ID)
	}
	batch.Query(`DELETE FROM comments_by_post WHERE post_id = ?`, p.ID)

	if err := s.Session.ExecuteBatch(batch); err != nil {
		logg.Error("store", "Failed to delete post", err)
		return err
	}

	logg.Info("store", "Post deleted with its comments")
	return nil
}

// --- Read paths, newest first ---

func (s *Store) RecentPosts(limit int) ([]models.Post, error) {
	return s.scanPosts(s.Session.Query(`
		SELECT `+postColumns+` FROM posts_by_time WHERE bucket = ? LIMIT ?`,
		timeBucket, limit,
	).Iter())
}

func (s *Store) PostsByGroup(slug string, limit int) ([]models.Post, error) {
	return s.scanPosts(s.Session.Query(`
		SELECT `+postColumns+` FROM posts_by_group WHERE group_slug = ? LIMIT ?`,
		slug, limit,
	).Iter())
}

func (s *Store) PostsByAuthor(authorID string, limit int) ([]models.Post, error) {
	return s.scanPosts(s.Session.Query(`
		SELECT `+postColumns+` FROM posts_by_author WHERE author_id = ? LIMIT ?`,
		authorID, limit,
	).Iter())
}

func (s *Store) scanPosts(iter *gocql.Iter) ([]models.Post, error) {
	var res []models.Post
	var p models.Post
	var pubDate time.Time

	for iter.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.GroupSlug, &p.GroupTitle,
		&p.Text, &p.ImagePath, &pubDate) {
		p.PubDate = pubDate
		res = append(res, p)
		p = models.Post{}
	}

	if err := iter.Close(); err != nil {
		logg.Error("store", "Failed to iterate posts", err)
		return nil, err
	}
	return res, nil
}
