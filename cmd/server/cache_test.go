package server

import (
	"io"
	"net/http"
	"testing"
	"time"

	"example.com/yatube/internal/models"
)

// Within the cache window the index keeps serving the snapshot it rendered
// first, byte for byte, even after the underlying posts change.
func TestIndexCache_SnapshotStableWithinTTL(t *testing.T) {
	_, st, ts := setupTestServer(t)
	author, _ := registerUser(t, st, "leo")

	post := models.Post{
		ID:         "p1",
		AuthorID:   author.ID,
		AuthorName: author.Username,
		Text:       "a post that will soon vanish",
		PubDate:    time.Now().UTC(),
	}
	if err := st.CreatePost(post); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	first := fetchIndexBody(t, ts.URL)

	// The post disappears, the cached snapshot does not.
	if err := st.DeletePost(post); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	second := fetchIndexBody(t, ts.URL)
	if string(first) != string(second) {
		t.Fatalf("cached index changed within TTL:\nfirst:  %s\nsecond: %s", first, second)
	}
}

// Different page numbers are cached independently.
func TestIndexCache_PerPageKeys(t *testing.T) {
	_, st, ts := setupTestServer(t)
	author, _ := registerUser(t, st, "leo")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 11; i++ {
		if err := st.CreatePost(models.Post{
			ID:       "p" + string(rune('a'+i)),
			AuthorID: author.ID,
			Text:     "one of eleven posts with text",
			PubDate:  base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
	}

	page1 := fetchIndexBody(t, ts.URL+"/?page=1")
	page2 := fetchIndexBody(t, ts.URL+"/?page=2")
	if string(page1) == string(page2) {
		t.Fatalf("pages 1 and 2 must not share a cache entry")
	}
}

func fetchIndexBody(t *testing.T, rawURL string) []byte {
	t.Helper()

	resp, err := http.Get(rawURL)
	if err != nil {
		t.Fatalf("GET index failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from index, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body failed: %v", err)
	}
	return body
}
