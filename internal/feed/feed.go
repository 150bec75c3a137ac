package feed

import (
	"strconv"

	"example.com/yatube/internal/models"
	"example.com/yatube/internal/store"
)

// Page is one window of a newest-first post sequence. Every context
// (index, group, profile, follow feed) shares the same page size.
type Page struct {
	Number  int           `json:"number"`
	Posts   []models.Post `json:"posts"`
	HasNext bool          `json:"has_next"`
}

// Assembler builds paginated feeds over the store's read paths.
type Assembler struct {
	store    store.StoreInterface
	pageSize int
}

func New(st store.StoreInterface, pageSize int) *Assembler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Assembler{store: st, pageSize: pageSize}
}

func (a *Assembler) PageSize() int { return a.pageSize }

// ParsePage interprets the 1-indexed page query parameter. Absent,
// malformed or non-positive values mean page 1.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Index returns a page over all posts, newest first.
func (a *Assembler) Index(page int) (Page, error) {
	return a.paginate(page, a.store.RecentPosts)
}

// Group returns a page over one group's posts.
func (a *Assembler) Group(slug string, page int) (Page, error) {
	return a.paginate(page, func(limit int) ([]models.Post, error) {
		return a.store.PostsByGroup(slug, limit)
	})
}

// Profile returns a page over one author's posts.
func (a *Assembler) Profile(authorID string, page int) (Page, error) {
	return a.paginate(page, func(limit int) ([]models.Post, error) {
		return a.store.PostsByAuthor(authorID, limit)
	})
}

// Following returns a page over the user's materialized follow feed.
func (a *Assembler) Following(userID string, page int) (Page, error) {
	return a.paginate(page, func(limit int) ([]models.Post, error) {
		return a.store.Feed(userID, limit)
	})
}

// paginate reads one row past the requested window to learn whether a
// next page exists, then slices out the window. The storage has no
// offset reads, so the window always starts from the newest post.
func (a *Assembler) paginate(page int, read func(limit int) ([]models.Post, error)) (Page, error) {
	if page < 1 {
		page = 1
	}

	limit := page*a.pageSize + 1
	posts, err := read(limit)
	if err != nil {
		return Page{}, err
	}

	start := (page - 1) * a.pageSize
	if start >= len(posts) {
		return Page{Number: page, Posts: []models.Post{}}, nil
	}

	end := start + a.pageSize
	hasNext := len(posts) > end
	if end > len(posts) {
		end = len(posts)
	}

	return Page{
		Number:  page,
		Posts:   posts[start:end],
		HasNext: hasNext,
	}, nil
}
