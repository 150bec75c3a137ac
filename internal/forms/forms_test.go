package forms

import (
	"errors"
	"testing"
)

func TestPostForm_RejectsShortText(t *testing.T) {
	form := PostForm{Text: "too short"}

	err := form.Validate(10)
	if err == nil {
		t.Fatalf("expected validation error for 9-character text")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if vErr.Message != "post text is too short" {
		t.Fatalf("unexpected message: %q", vErr.Message)
	}
}

func TestPostForm_AcceptsMinimumLength(t *testing.T) {
	form := PostForm{Text: "exactly 10"}
	if err := form.Validate(10); err != nil {
		t.Fatalf("expected 10-character text to pass, got %v", err)
	}
}

// Length is counted in characters, not bytes: nine Cyrillic letters are
// eighteen bytes but still too short.
func TestPostForm_CountsRunesNotBytes(t *testing.T) {
	form := PostForm{Text: "Заголовок"}
	if err := form.Validate(10); err == nil {
		t.Fatalf("expected 9-rune Cyrillic text to fail")
	}

	form = PostForm{Text: "Тестовый заголовок"}
	if err := form.Validate(10); err != nil {
		t.Fatalf("expected 18-rune Cyrillic text to pass, got %v", err)
	}
}

func TestCommentForm_IndependentMessage(t *testing.T) {
	form := CommentForm{Text: "short"}

	err := form.Validate(10)
	if err == nil {
		t.Fatalf("expected validation error for short comment")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if vErr.Message != "comment text is too short" {
		t.Fatalf("unexpected message: %q", vErr.Message)
	}
}

func TestCommentForm_PassesTextThroughUnchanged(t *testing.T) {
	form := CommentForm{Text: "  padded comment text  "}
	if err := form.Validate(10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.Text != "  padded comment text  " {
		t.Fatalf("validation must not modify the text")
	}
}

func TestValidate_ZeroMinFallsBackToDefault(t *testing.T) {
	form := PostForm{Text: "123456789"}
	if err := form.Validate(0); err == nil {
		t.Fatalf("expected default minimum of %d to apply", MinTextLength)
	}
}
