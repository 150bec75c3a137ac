package server

import (
	"net/http"
	"time"

	appkafka "example.com/yatube/internal/broker"
	"example.com/yatube/internal/forms"
	"example.com/yatube/internal/middleware"
	"example.com/yatube/internal/models"
	"example.com/yatube/internal/store"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxUploadSize = 10 << 20 // 10MB

// createPostHandler accepts a multipart (or urlencoded) form with text,
// an optional group slug and an optional image. A valid submission
// redirects to the author's profile.
func (s *Server) createPostHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	username, _ := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	form := forms.PostForm{
		Text:      r.FormValue("text"),
		GroupSlug: r.FormValue("group"),
	}
	if err := form.Validate(s.minTextLen); err != nil {
		logg.Info("http/posts", "Post submission rejected by validation")
		writeJSON(w, http.StatusBadRequest, FormErrorPage{
			Error: err.(*forms.ValidationError).Message,
			Text:  form.Text,
			Group: form.GroupSlug,
		})
		return
	}

	var group models.Group
	if form.GroupSlug != "" {
		var err error
		group, err = s.store.GroupBySlug(form.GroupSlug)
		if err != nil {
			if err == store.ErrNotFound {
				writeJSON(w, http.StatusBadRequest, FormErrorPage{
					Error: "unknown group",
					Text:  form.Text,
					Group: form.GroupSlug,
				})
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	imagePath, err := s.saveUploadedImage(r)
	if err != nil {
		logg.Error("http/posts", "Failed to store uploaded image", err)
		writeError(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	post := models.Post{
		ID:         uuid.NewString(),
		AuthorID:   userID,
		AuthorName: username,
		GroupSlug:  group.Slug,
		GroupTitle: group.Title,
		Text:       form.Text,
		ImagePath:  imagePath,
		PubDate:    time.Now().UTC(),
	}

	if err := s.store.CreatePost(post); err != nil {
		logg.Error("http/posts", "Failed to save post", err)
		writeError(w, http.StatusInternalServerError, "failed to save post")
		return
	}

	if err := s.publishPostEvent(appkafka.EventPostCreated, post); err != nil {
		logg.Error("http/posts", "Failed to publish post event", err)
		writeError(w, http.StatusInternalServerError, "failed to publish post event")
		return
	}

	s.metrics.PostsCreated.Inc()
	logg.Info("http/posts", "Post created by "+username)
	http.Redirect(w, r, "/profiles/"+username, http.StatusFound)
}

// editPostHandler rewrites text/group/image of an existing post. Only the
// author may edit; pub_date never changes.
func (s *Server) editPostHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	post, err := s.store.PostByID(mux.Vars(r)["post_id"])
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if post.AuthorID != userID {
		logg.Info("http/posts", "Edit rejected: requester is not the author")
		writeError(w, http.StatusForbidden, "only the author can edit a post")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	form := forms.PostForm{
		Text:      r.FormValue("text"),
		GroupSlug: r.FormValue("group"),
	}
	if err := form.Validate(s.minTextLen); err != nil {
		writeJSON(w, http.StatusBadRequest, FormErrorPage{
			Error: err.(*forms.ValidationError).Message,
			Text:  form.Text,
			Group: form.GroupSlug,
		})
		return
	}

	var group models.Group
	if form.GroupSlug != "" {
		group, err = s.store.GroupBySlug(form.GroupSlug)
		if err != nil {
			if err == store.ErrNotFound {
				writeJSON(w, http.StatusBadRequest, FormErrorPage{
					Error: "unknown group",
					Text:  form.Text,
					Group: form.GroupSlug,
				})
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	prevGroup := post.GroupSlug
	post.Text = form.Text
	post.GroupSlug = group.Slug
	post.GroupTitle = group.Title

	if imagePath, err := s.saveUploadedImage(r); err != nil {
		logg.Error("http/posts", "Failed to store uploaded image", err)
		writeError(w, http.StatusInternalServerError, "failed to store image")
		return
	} else if imagePath != "" {
		if s.media != nil {
			_ = s.media.Remove(post.ImagePath)
		}
		post.ImagePath = imagePath
	}

	if err := s.store.UpdatePost(post, prevGroup); err != nil {
		logg.Error("http/posts", "Failed to update post", err)
		writeError(w, http.StatusInternalServerError, "failed to update post")
		return
	}

	http.Redirect(w, r, "/posts/"+post.ID, http.StatusFound)
}

// deletePostHandler removes a post, its comments (storage cascade) and,
// through the deletion event, its copies in follower feeds. Allowed for
// the author and for administrators.
func (s *Server) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	username, _ := middleware.UsernameFromContext(r.Context())

	post, err := s.store.PostByID(mux.Vars(r)["post_id"])
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if post.AuthorID != userID && !s.isAdmin(username) {
		writeError(w, http.StatusForbidden, "only the author or an administrator can delete a post")
		return
	}

	if err := s.store.DeletePost(post); err != nil {
		logg.Error("http/posts", "Failed to delete post", err)
		writeError(w, http.StatusInternalServerError, "failed to delete post")
		return
	}

	if s.media != nil {
		_ = s.media.Remove(post.ImagePath)
	}

	if err := s.publishPostEvent(appkafka.EventPostDeleted, post); err != nil {
		logg.Error("http/posts", "Failed to publish post deletion event", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

// addCommentHandler attaches a comment to an existing post and redirects
// back to the post detail page.
func (s *Server) addCommentHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	username, _ := middleware.UsernameFromContext(r.Context())

	post, err := s.store.PostByID(mux.Vars(r)["post_id"])
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	form := forms.CommentForm{Text: r.FormValue("text")}
	if err := form.Validate(s.minTextLen); err != nil {
		logg.Info("http/comments", "Comment submission rejected by validation")
		writeJSON(w, http.StatusBadRequest, FormErrorPage{
			Error: err.(*forms.ValidationError).Message,
			Text:  form.Text,
		})
		return
	}

	comment := models.Comment{
		ID:         uuid.NewString(),
		PostID:     post.ID,
		AuthorID:   userID,
		AuthorName: username,
		Text:       form.Text,
		Created:    time.Now().UTC(),
	}

	if err := s.store.AddComment(comment); err != nil {
		logg.Error("http/comments", "Failed to save comment", err)
		writeError(w, http.StatusInternalServerError, "failed to save comment")
		return
	}

	s.metrics.CommentsCreated.Inc()
	http.Redirect(w, r, "/posts/"+post.ID, http.StatusFound)
}

// saveUploadedImage stores the optional "image" part of the form. No file
// in the request means no image, not an error.
func (s *Server) saveUploadedImage(r *http.Request) (string, error) {
	if s.media == nil {
		return "", nil
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return "", nil
		}
		return "", err
	}
	defer file.Close()
	return s.media.SavePostImage(header.Filename, file)
}

func (s *Server) publishPostEvent(event string, post models.Post) error {
	msg, err := appkafka.NewPostMessage(event, post)
	if err != nil {
		return err
	}
	return s.kafkaWriter.WriteMessages(msg)
}
