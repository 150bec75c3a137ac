package feed

import (
	"fmt"
	"testing"
	"time"

	"example.com/yatube/internal/models"
	"example.com/yatube/internal/store"
)

// seedPosts creates n posts for the author with ascending pub dates, the
// newest last, and returns the author id.
func seedPosts(t *testing.T, st *store.MockStore, n int, groupSlug string) string {
	t.Helper()

	author, err := st.CreateUser("author", "hash")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		p := models.Post{
			ID:         fmt.Sprintf("post_%02d", i),
			AuthorID:   author.ID,
			AuthorName: author.Username,
			GroupSlug:  groupSlug,
			Text:       fmt.Sprintf("post number %02d with enough text", i),
			PubDate:    base.Add(time.Duration(i) * time.Minute),
		}
		if err := st.CreatePost(p); err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
	}
	return author.ID
}

func TestIndex_ThirteenPostsAcrossTwoPages(t *testing.T) {
	st := store.NewMock()
	seedPosts(t, st, 13, "")
	a := New(st, 10)

	page1, err := a.Index(1)
	if err != nil {
		t.Fatalf("Index page 1 failed: %v", err)
	}
	if len(page1.Posts) != 10 {
		t.Fatalf("expected 10 posts on page 1, got %d", len(page1.Posts))
	}
	if !page1.HasNext {
		t.Fatalf("expected page 1 to report a next page")
	}

	page2, err := a.Index(2)
	if err != nil {
		t.Fatalf("Index page 2 failed: %v", err)
	}
	if len(page2.Posts) != 3 {
		t.Fatalf("expected 3 posts on page 2, got %d", len(page2.Posts))
	}
	if page2.HasNext {
		t.Fatalf("page 2 is the last page")
	}
}

func TestIndex_NewestFirst(t *testing.T) {
	st := store.NewMock()
	seedPosts(t, st, 13, "")
	a := New(st, 10)

	page, err := a.Index(1)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if page.Posts[0].ID != "post_12" {
		t.Fatalf("expected newest post first, got %s", page.Posts[0].ID)
	}
	for i := 1; i < len(page.Posts); i++ {
		if page.Posts[i].PubDate.After(page.Posts[i-1].PubDate) {
			t.Fatalf("posts not in descending pub_date order at index %d", i)
		}
	}
}

func TestGroupAndProfile_SamePagination(t *testing.T) {
	st := store.NewMock()
	if err := st.CreateGroup(models.Group{Slug: "cats", Title: "Cats"}); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	authorID := seedPosts(t, st, 13, "cats")
	a := New(st, 10)

	group2, err := a.Group("cats", 2)
	if err != nil {
		t.Fatalf("Group page 2 failed: %v", err)
	}
	if len(group2.Posts) != 3 {
		t.Fatalf("expected 3 group posts on page 2, got %d", len(group2.Posts))
	}

	profile2, err := a.Profile(authorID, 2)
	if err != nil {
		t.Fatalf("Profile page 2 failed: %v", err)
	}
	if len(profile2.Posts) != 3 {
		t.Fatalf("expected 3 profile posts on page 2, got %d", len(profile2.Posts))
	}
}

func TestPaginate_PastTheEndIsEmpty(t *testing.T) {
	st := store.NewMock()
	seedPosts(t, st, 13, "")
	a := New(st, 10)

	page, err := a.Index(5)
	if err != nil {
		t.Fatalf("Index page 5 failed: %v", err)
	}
	if len(page.Posts) != 0 {
		t.Fatalf("expected empty page past the end, got %d posts", len(page.Posts))
	}
	if page.HasNext {
		t.Fatalf("empty page cannot have a next page")
	}
}

func TestFollowing_ReadsMaterializedFeed(t *testing.T) {
	st := store.NewMock()
	post := models.Post{ID: "p1", AuthorID: "a1", Text: "hello from a followed author", PubDate: time.Now()}
	if err := st.AddToFeed("u1", post); err != nil {
		t.Fatalf("AddToFeed failed: %v", err)
	}

	a := New(st, 10)
	page, err := a.Following("u1", 1)
	if err != nil {
		t.Fatalf("Following failed: %v", err)
	}
	if len(page.Posts) != 1 || page.Posts[0].ID != "p1" {
		t.Fatalf("unexpected follow feed: %+v", page.Posts)
	}
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{
		"":    1,
		"1":   1,
		"2":   2,
		"0":   1,
		"-3":  1,
		"abc": 1,
	}
	for raw, want := range cases {
		if got := ParsePage(raw); got != want {
			t.Errorf("ParsePage(%q) = %d, want %d", raw, got, want)
		}
	}
}
