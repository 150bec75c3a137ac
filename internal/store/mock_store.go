package store

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"example.com/yatube/internal/models"
)

var mockUserCounter int

// MockStore simulates Cassandra operations for testing. It honors the
// same referential actions as the real store: group deletion nullifies
// the group on posts, post deletion cascades to comments.
type MockStore struct {
	Users      map[string]models.User     // user_id -> user
	Groups     map[string]models.Group    // slug -> group
	Posts      map[string]models.Post     // post_id -> post
	Comments   map[string][]models.Comment // post_id -> comments, oldest first
	Follows    map[string]map[string]bool // user_id -> set of followed author_ids
	Feeds      map[string][]models.Post   // user_id -> materialized feed
	ShouldFail bool                       // flag to simulate failures
}

// NewMock initializes a new mock store
func NewMock() *MockStore {
	return &MockStore{
		Users:    make(map[string]models.User),
		Groups:   make(map[string]models.Group),
		Posts:    make(map[string]models.Post),
		Comments: make(map[string][]models.Comment),
		Follows:  make(map[string]map[string]bool),
		Feeds:    make(map[string][]models.Post),
	}
}

func (m *MockStore) Close() {}

// --- users ---

func (m *MockStore) CreateUser(username, pwHash string) (models.User, error) {
	if m.ShouldFail {
		return models.User{}, errors.New("mock: create user failed")
	}
	for _, u := range m.Users {
		if u.Username == username {
			return models.User{}, ErrUsernameTaken
		}
	}
	mockUserCounter++
	u := models.User{
		ID:       fmt.Sprintf("user_%d", mockUserCounter),
		Username: username,
		PWHash:   pwHash,
		Joined:   time.Now().UTC(),
	}
	m.Users[u.ID] = u
	return u, nil
}

func (m *MockStore) UserByUsername(username string) (models.User, error) {
	if m.ShouldFail {
		return models.User{}, errors.New("mock: user lookup failed")
	}
	for _, u := range m.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

// --- groups ---

func (m *MockStore) CreateGroup(g models.Group) error {
	if m.ShouldFail {
		return errors.New("mock: create group failed")
	}
	m.Groups[g.Slug] = g
	return nil
}

func (m *MockStore) GroupBySlug(slug string) (models.Group, error) {
	if m.ShouldFail {
		return models.Group{}, errors.New("mock: group lookup failed")
	}
	g, ok := m.Groups[slug]
	if !ok {
		return models.Group{}, ErrNotFound
	}
	return g, nil
}

func (m *MockStore) DeleteGroup(slug string) error {
	if m.ShouldFail {
		return errors.New("mock: delete group failed")
	}
	if _, ok := m.Groups[slug]; !ok {
		return ErrNotFound
	}
	delete(m.Groups, slug)
	for id, p := range m.Posts {
		if p.GroupSlug == slug {
			p.GroupSlug = ""
			p.GroupTitle = ""
			m.Posts[id] = p
		}
	}
	return nil
}

// --- posts ---

func (m *MockStore) CreatePost(p models.Post) error {
	if m.ShouldFail {
		return errors.New("mock: create post failed")
	}
	m.Posts[p.ID] = p
	return nil
}

func (m *MockStore) PostByID(id string) (models.Post, error) {
	if m.ShouldFail {
		return models.Post{}, errors.New("mock: post lookup failed")
	}
	p, ok := m.Posts[id]
	if !ok {
		return models.Post{}, ErrNotFound
	}
	return p, nil
}

func (m *MockStore) UpdatePost(p models.Post, prevGroup string) error {
	if m.ShouldFail {
		return errors.New("mock: update post failed")
	}
	if _, ok := m.Posts[p.ID]; !ok {
		return ErrNotFound
	}
	m.Posts[p.ID] = p
	return nil
}

func (m *MockStore) DeletePost(p models.Post) error {
	if m.ShouldFail {
		return errors.New("mock: delete post failed")
	}
	delete(m.Posts, p.ID)
	delete(m.Comments, p.ID)
	return nil
}

func (m *MockStore) RecentPosts(limit int) ([]models.Post, error) {
	if m.ShouldFail {
		return nil, errors.New("mock: recent posts failed")
	}
	return m.selectPosts(func(models.Post) bool { return true }, limit), nil
}

func (m *MockStore) PostsByGroup(slug string, limit int) ([]models.Post, error) {
	if m.ShouldFail {
		return nil, errors.New("mock: posts by group failed")
	}
	return m.selectPosts(func(p models.Post) bool { return p.GroupSlug == slug }, limit), nil
}

func (m *MockStore) PostsByAuthor(authorID string, limit int) ([]models.Post, error) {
	if m.ShouldFail {
		return nil, errors.New("mock: posts by author failed")
	}
	return m.selectPosts(func(p models.Post) bool { return p.AuthorID == authorID }, limit), nil
}

// selectPosts filters and orders newest first, mirroring the clustering
// order of the Cassandra read-path tables.
func (m *MockStore) selectPosts(keep func(models.Post) bool, limit int) []models.Post {
	var res []models.Post
	for _, p := range m.Posts {
		if keep(p) {
			res = append(res, p)
		}
	}
	// pub_date DESC, post_id ASC, the clustering order of the read-path
	// tables.
	sort.Slice(res, func(i, j int) bool {
		if res[i].PubDate.Equal(res[j].PubDate) {
			return res[i].ID < res[j].ID
		}
		return res[i].PubDate.After(res[j].PubDate)
	})
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res
}

// --- comments ---

func (m *MockStore) AddComment(c models.Comment) error {
	if m.ShouldFail {
		return errors.New("mock: add comment failed")
	}
	if _, ok := m.Posts[c.PostID]; !ok {
		return ErrNotFound
	}
	m.Comments[c.PostID] = append(m.Comments[c.PostID], c)
	return nil
}

func (m *MockStore) CommentsByPost(postID string) ([]models.Comment, error) {
	if m.ShouldFail {
		return nil, errors.New("mock: comments failed")
	}
	return m.Comments[postID], nil
}

// --- follows ---

func (m *MockStore) CreateFollow(userID, authorID string) error {
	if m.ShouldFail {
		return errors.New("mock: follow failed")
	}
	if userID == authorID {
		return ErrSelfFollow
	}
	if m.Follows[userID] == nil {
		m.Follows[userID] = make(map[string]bool)
	}
	m.Follows[userID][authorID] = true
	return nil
}

func (m *MockStore) DeleteFollow(userID, authorID string) error {
	if m.ShouldFail {
		return errors.New("mock: unfollow failed")
	}
	delete(m.Follows[userID], authorID)
	return nil
}

func (m *MockStore) IsFollowing(userID, authorID string) (bool, error) {
	if m.ShouldFail {
		return false, errors.New("mock: is following failed")
	}
	return m.Follows[userID][authorID], nil
}

func (m *MockStore) Followers(authorID string) ([]string, error) {
	if m.ShouldFail {
		return nil, errors.New("mock: get followers failed")
	}
	var res []string
	for userID, followed := range m.Follows {
		if followed[authorID] {
			res = append(res, userID)
		}
	}
	sort.Strings(res)
	return res, nil
}

// --- feeds ---

func (m *MockStore) AddToFeed(userID string, p models.Post) error {
	if m.ShouldFail {
		return errors.New("mock: add to feed failed")
	}
	m.Feeds[userID] = append(m.Feeds[userID], p)
	return nil
}

func (m *MockStore) RemoveFromFeed(userID string, p models.Post) error {
	if m.ShouldFail {
		return errors.New("mock: remove from feed failed")
	}
	feed := m.Feeds[userID]
	for i, fp := range feed {
		if fp.ID == p.ID {
			m.Feeds[userID] = append(feed[:i], feed[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockStore) Feed(userID string, limit int) ([]models.Post, error) {
	if m.ShouldFail {
		return nil, errors.New("mock: get feed failed")
	}
	posts := append([]models.Post(nil), m.Feeds[userID]...)
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].ID < posts[j].ID
		}
		return posts[i].PubDate.After(posts[j].PubDate)
	})
	if limit > 0 && len(posts) > limit {
		return posts[:limit], nil
	}
	return posts, nil
}

// ---------------------------------------------
// MockStoreFail always returns errors for negative tests
type MockStoreFail struct{}

func (m *MockStoreFail) Close() {}

func (m *MockStoreFail) CreateUser(username, pwHash string) (models.User, error) {
	return models.User{}, errors.New("mock store create user failed")
}

func (m *MockStoreFail) UserByUsername(username string) (models.User, error) {
	return models.User{}, errors.New("mock store user lookup failed")
}

func (m *MockStoreFail) CreateGroup(g models.Group) error {
	return errors.New("mock store create group failed")
}

func (m *MockStoreFail) GroupBySlug(slug string) (models.Group, error) {
	return models.Group{}, errors.New("mock store group lookup failed")
}

func (m *MockStoreFail) DeleteGroup(slug string) error {
	return errors.New("mock store delete group failed")
}

func (m *MockStoreFail) CreatePost(p models.Post) error {
	return errors.New("mock store create post failed")
}

func (m *MockStoreFail) PostByID(id string) (models.Post, error) {
	return models.Post{}, errors.New("mock store post lookup failed")
}

func (m *MockStoreFail) UpdatePost(p models.Post, prevGroup string) error {
	return errors.New("mock store update post failed")
}

func (m *MockStoreFail) DeletePost(p models.Post) error {
	return errors.New("mock store delete post failed")
}

func (m *MockStoreFail) RecentPosts(limit int) ([]models.Post, error) {
	return nil, errors.New("mock store recent posts failed")
}

func (m *MockStoreFail) PostsByGroup(slug string, limit int) ([]models.Post, error) {
	return nil, errors.New("mock store posts by group failed")
}

func (m *MockStoreFail) PostsByAuthor(authorID string, limit int) ([]models.Post, error) {
	return nil, errors.New("mock store posts by author failed")
}

func (m *MockStoreFail) AddComment(c models.Comment) error {
	return errors.New("mock store add comment failed")
}

func (m *MockStoreFail) CommentsByPost(postID string) ([]models.Comment, error) {
	return nil, errors.New("mock store comments failed")
}

func (m *MockStoreFail) CreateFollow(userID, authorID string) error {
	return errors.New("mock store create follow failed")
}

func (m *MockStoreFail) DeleteFollow(userID, authorID string) error {
	return errors.New("mock store delete follow failed")
}

func (m *MockStoreFail) IsFollowing(userID, authorID string) (bool, error) {
	return false, errors.New("mock store is following failed")
}

func (m *MockStoreFail) Followers(authorID string) ([]string, error) {
	return nil, errors.New("mock store get followers failed")
}

func (m *MockStoreFail) AddToFeed(userID string, p models.Post) error {
	return errors.New("mock store add to feed failed")
}

func (m *MockStoreFail) RemoveFromFeed(userID string, p models.Post) error {
	return errors.New("mock store remove from feed failed")
}

func (m *MockStoreFail) Feed(userID string, limit int) ([]models.Post, error) {
	return nil, errors.New("mock store get feed failed")
}
