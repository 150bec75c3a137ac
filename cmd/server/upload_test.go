package server

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	appkafka "example.com/yatube/internal/broker"
	"example.com/yatube/internal/cache"
	config "example.com/yatube/internal/init"
	"example.com/yatube/internal/media"
	"example.com/yatube/internal/store"
)

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func setupTestServerWithMedia(t *testing.T) (*store.MockStore, *httptest.Server) {
	t.Helper()
	os.Setenv("JWT_SECRET", "test-secret")

	mediaStore, err := media.NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}

	mockStore := store.NewMock()
	s := New(mockStore, &appkafka.MockKafka{Store: mockStore}, cache.NewMemory(), mediaStore, &config.Config{
		PageSize:      10,
		TextMinLength: 10,
		IndexCacheTTL: 20 * time.Second,
	})

	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return mockStore, ts
}

// A multipart submission with an image stores the file and records its
// relative path on the post, and the file is then served under /media/.
func TestCreatePost_WithImage(t *testing.T) {
	st, ts := setupTestServerWithMedia(t)
	_, token := registerUser(t, st, "leo")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("text", "a post with a tiny picture"); err != nil {
		t.Fatalf("WriteField failed: %v", err)
	}
	part, err := mw.CreateFormFile("image", "tiny.gif")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write(smallGIF); err != nil {
		t.Fatalf("part write failed: %v", err)
	}
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/posts", &buf)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := noRedirectClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}

	if len(st.Posts) != 1 {
		t.Fatalf("expected one stored post, got %d", len(st.Posts))
	}
	var imagePath string
	for _, p := range st.Posts {
		imagePath = p.ImagePath
	}
	if !strings.HasPrefix(imagePath, "posts/") || !strings.HasSuffix(imagePath, ".gif") {
		t.Fatalf("unexpected image path %q", imagePath)
	}

	// The uploaded bytes come back through the media file server.
	imgResp, err := http.Get(ts.URL + "/media/" + imagePath)
	if err != nil {
		t.Fatalf("GET media failed: %v", err)
	}
	defer imgResp.Body.Close()
	if imgResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for stored image, got %d", imgResp.StatusCode)
	}
	data, err := io.ReadAll(imgResp.Body)
	if err != nil {
		t.Fatalf("read image failed: %v", err)
	}
	if !bytes.Equal(data, smallGIF) {
		t.Fatalf("served image differs from upload")
	}
}

// A plain urlencoded submission without an image stays valid.
func TestCreatePost_ImageIsOptional(t *testing.T) {
	st, ts := setupTestServerWithMedia(t)
	_, token := registerUser(t, st, "leo")

	form := strings.NewReader("text=" + strings.ReplaceAll("a post without any picture", " ", "+"))
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/posts", form)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := noRedirectClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}

	for _, p := range st.Posts {
		if p.ImagePath != "" {
			t.Fatalf("expected no image path, got %q", p.ImagePath)
		}
	}
}
