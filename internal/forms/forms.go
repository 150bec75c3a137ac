package forms

import (
	"unicode/utf8"
)

// MinTextLength is the default minimum length for post and comment text,
// counted in runes. Overridable through config.
const MinTextLength = 10

// ValidationError carries a human-readable message for the submitting user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// PostForm holds the user-submitted fields of a post. Group and image are
// validated only by the storage layer's referential checks, so the form
// rule covers text alone.
type PostForm struct {
	Text      string
	GroupSlug string
}

func (f *PostForm) Validate(minLen int) error {
	if minLen <= 0 {
		minLen = MinTextLength
	}
	if utf8.RuneCountInString(f.Text) < minLen {
		return &ValidationError{Field: "text", Message: "post text is too short"}
	}
	return nil
}

// CommentForm is validated independently of PostForm: the rule is the
// same length check but the message differs.
type CommentForm struct {
	Text string
}

func (f *CommentForm) Validate(minLen int) error {
	if minLen <= 0 {
		minLen = MinTextLength
	}
	if utf8.RuneCountInString(f.Text) < minLen {
		return &ValidationError{Field: "text", Message: "comment text is too short"}
	}
	return nil
}
