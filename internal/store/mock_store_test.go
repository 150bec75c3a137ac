package store

import (
	"testing"
	"time"

	"example.com/yatube/internal/models"
)

// The mock mirrors the repository semantics of the Cassandra store, so
// the referential actions are pinned down here.

func TestDeleteGroup_NullifiesPostsInsteadOfDeleting(t *testing.T) {
	st := NewMock()
	if err := st.CreateGroup(models.Group{Slug: "cats", Title: "Cats"}); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	post := models.Post{
		ID:         "p1",
		AuthorID:   "a1",
		GroupSlug:  "cats",
		GroupTitle: "Cats",
		Text:       "a post about cats, long enough",
		PubDate:    time.Now(),
	}
	if err := st.CreatePost(post); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if err := st.DeleteGroup("cats"); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	got, err := st.PostByID("p1")
	if err != nil {
		t.Fatalf("post must survive its group: %v", err)
	}
	if got.GroupSlug != "" || got.GroupTitle != "" {
		t.Fatalf("expected group reference cleared, got %q/%q", got.GroupSlug, got.GroupTitle)
	}

	if _, err := st.GroupBySlug("cats"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for deleted group, got %v", err)
	}
}

func TestDeletePost_CascadesComments(t *testing.T) {
	st := NewMock()
	post := models.Post{ID: "p1", AuthorID: "a1", Text: "post with comments here", PubDate: time.Now()}
	if err := st.CreatePost(post); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if err := st.AddComment(models.Comment{ID: "c1", PostID: "p1", AuthorID: "a2", Text: "a long enough comment"}); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	if err := st.DeletePost(post); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	comments, err := st.CommentsByPost("p1")
	if err != nil {
		t.Fatalf("CommentsByPost failed: %v", err)
	}
	if len(comments) != 0 {
		t.Fatalf("expected comments to die with the post, got %d", len(comments))
	}
}

// Posts sharing a pub_date come back in post_id ascending order, the
// clustering order of the read-path tables.
func TestSelectPosts_EqualPubDateOrderedByID(t *testing.T) {
	st := NewMock()
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, id := range []string{"p_b", "p_a", "p_c"} {
		if err := st.CreatePost(models.Post{
			ID: id, AuthorID: "a1", Text: "same timestamp, three posts", PubDate: ts,
		}); err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
	}

	posts, err := st.RecentPosts(10)
	if err != nil {
		t.Fatalf("RecentPosts failed: %v", err)
	}
	want := []string{"p_a", "p_b", "p_c"}
	for i, p := range posts {
		if p.ID != want[i] {
			t.Fatalf("expected id order %v, got %s at index %d", want, p.ID, i)
		}
	}
}

func TestAddComment_RequiresExistingPost(t *testing.T) {
	st := NewMock()
	err := st.AddComment(models.Comment{ID: "c1", PostID: "ghost", Text: "comment on nothing at all"})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateFollow_SelfFollowRejected(t *testing.T) {
	st := NewMock()
	if err := st.CreateFollow("u1", "u1"); err != ErrSelfFollow {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}
}

func TestCreateFollow_DuplicateStaysSingleEdge(t *testing.T) {
	st := NewMock()
	if err := st.CreateFollow("u1", "a1"); err != nil {
		t.Fatalf("first follow failed: %v", err)
	}
	if err := st.CreateFollow("u1", "a1"); err != nil {
		t.Fatalf("repeated follow must be a no-op, got %v", err)
	}

	followers, err := st.Followers("a1")
	if err != nil {
		t.Fatalf("Followers failed: %v", err)
	}
	if len(followers) != 1 {
		t.Fatalf("expected exactly one follow edge, got %d", len(followers))
	}
}

func TestFollowThenUnfollow_LeavesNoEdges(t *testing.T) {
	st := NewMock()
	if err := st.CreateFollow("u1", "a1"); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if err := st.DeleteFollow("u1", "a1"); err != nil {
		t.Fatalf("unfollow failed: %v", err)
	}

	following, err := st.IsFollowing("u1", "a1")
	if err != nil {
		t.Fatalf("IsFollowing failed: %v", err)
	}
	if following {
		t.Fatalf("expected edge removed")
	}

	// Unfollowing again is a silent no-op.
	if err := st.DeleteFollow("u1", "a1"); err != nil {
		t.Fatalf("unfollow of missing edge must be a no-op, got %v", err)
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	st := NewMock()
	if _, err := st.CreateUser("leo", "hash"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if _, err := st.CreateUser("leo", "hash"); err != ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRemoveFromFeed(t *testing.T) {
	st := NewMock()
	post := models.Post{ID: "p1", AuthorID: "a1", Text: "soon to be deleted post", PubDate: time.Now()}

	if err := st.AddToFeed("u1", post); err != nil {
		t.Fatalf("AddToFeed failed: %v", err)
	}
	if err := st.RemoveFromFeed("u1", post); err != nil {
		t.Fatalf("RemoveFromFeed failed: %v", err)
	}

	feed, err := st.Feed("u1", 10)
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if len(feed) != 0 {
		t.Fatalf("expected empty feed after removal, got %d", len(feed))
	}
}
