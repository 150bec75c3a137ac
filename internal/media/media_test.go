package media

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func TestSavePostImage(t *testing.T) {
	st, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}

	rel, err := st.SavePostImage("small.gif", bytes.NewReader(smallGIF))
	if err != nil {
		t.Fatalf("SavePostImage failed: %v", err)
	}

	if !strings.HasPrefix(rel, "posts/") {
		t.Fatalf("expected posts/ prefix, got %q", rel)
	}
	if !strings.HasSuffix(rel, ".gif") {
		t.Fatalf("expected original extension kept, got %q", rel)
	}

	data, err := os.ReadFile(filepath.Join(st.Root(), filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if !bytes.Equal(data, smallGIF) {
		t.Fatalf("stored bytes differ from upload")
	}
}

func TestSavePostImage_UniqueNames(t *testing.T) {
	st, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}

	a, _ := st.SavePostImage("same.gif", bytes.NewReader(smallGIF))
	b, _ := st.SavePostImage("same.gif", bytes.NewReader(smallGIF))
	if a == b {
		t.Fatalf("two uploads of the same filename must not collide: %q", a)
	}
}

func TestRemove_MissingFileIsNoop(t *testing.T) {
	st, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}

	if err := st.Remove("posts/never-existed.gif"); err != nil {
		t.Fatalf("removing a missing file should not error: %v", err)
	}
	if err := st.Remove(""); err != nil {
		t.Fatalf("removing an empty path should not error: %v", err)
	}
}
