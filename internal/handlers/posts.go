// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"
	"time"

	"codeberg.org/hverlin/inkwell/internal/appcontext"
	"codeberg.org/hverlin/inkwell/internal/forms"
	"codeberg.org/hverlin/inkwell/internal/models"
	"codeberg.org/hverlin/inkwell/internal/repository"
	"github.com/labstack/echo/v4"
)

// postDateFormat renders post dates like "Aug 31, 2026".
const postDateFormat = "Jan 02, 2006"

// NewPostPage renders the empty post form.
func (h *Handlers) NewPostPage(c echo.Context) error {
	return h.render(c, http.StatusOK, "post_form", map[string]any{
		"Title": "New Post",
	})
}

// CreatePost validates the form and stores a new post. The byline is
// derived from the session user, never from the form.
func (h *Handlers) CreatePost(c echo.Context) error {
	user := appcontext.GetUser(c.Request().Context())
	if user == nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	errs := forms.Post.Validate(c.FormValue)
	if !errs.Valid() {
		return h.render(c, http.StatusOK, "post_form", map[string]any{
			"Title":  "New Post",
			"Values": formValues(c, "title", "subtitle", "image_url", "body"),
			"Errors": errs,
		})
	}

	post := &models.Post{
		UserID:   user.ID,
		Title:    c.FormValue("title"),
		Subtitle: c.FormValue("subtitle"),
		Author:   user.FullName(),
		Date:     time.Now().Format(postDateFormat),
		Body:     c.FormValue("body"),
		ImageURL: c.FormValue("image_url"),
	}
	if err := h.repo.CreatePost(c.Request().Context(), post); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// EditPostPage renders the post form prefilled with the stored values.
func (h *Handlers) EditPostPage(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	post, err := h.repo.GetPostByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}

	return h.render(c, http.StatusOK, "post_form", map[string]any{
		"Title":   "Edit Post",
		"Editing": true,
		"Values": map[string]string{
			"title":     post.Title,
			"subtitle":  post.Subtitle,
			"image_url": post.ImageURL,
			"body":      post.Body,
		},
	})
}

// UpdatePost edits a post in place. Any authenticated user may edit any
// post; there is no ownership check. Author and date are never touched.
func (h *Handlers) UpdatePost(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	post, err := h.repo.GetPostByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}

	errs := forms.Post.Validate(c.FormValue)
	if !errs.Valid() {
		return h.render(c, http.StatusOK, "post_form", map[string]any{
			"Title":   "Edit Post",
			"Editing": true,
			"Values":  formValues(c, "title", "subtitle", "image_url", "body"),
			"Errors":  errs,
		})
	}

	post.Title = c.FormValue("title")
	post.Subtitle = c.FormValue("subtitle")
	post.Body = c.FormValue("body")
	post.ImageURL = c.FormValue("image_url")
	if err := h.repo.UpdatePost(c.Request().Context(), post); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// DeletePost removes a post and, via the schema, its comments. No
// ownership check, matching the edit behavior.
func (h *Handlers) DeletePost(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if _, err := h.repo.GetPostByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}

	if err := h.repo.DeletePost(c.Request().Context(), id); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// ViewPost renders a post with its comments and the comment form.
func (h *Handlers) ViewPost(c echo.Context) error {
	return h.renderPost(c, nil, nil)
}

// AddComment stores a comment on a post and re-renders the page. Anonymous
// visitors can read the page but are sent to login when they try to
// comment.
func (h *Handlers) AddComment(c echo.Context) error {
	user := appcontext.GetUser(c.Request().Context())
	if user == nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	errs := forms.Comment.Validate(c.FormValue)
	if !errs.Valid() {
		return h.renderPost(c, formValues(c, "comment"), errs)
	}

	id, err := paramID(c)
	if err != nil {
		return err
	}

	comment := &models.Comment{
		PostID:        id,
		UserID:        user.ID,
		CommentText:   c.FormValue("comment"),
		CommentAuthor: user.FullName(),
	}
	if err := h.repo.CreateComment(c.Request().Context(), comment); err != nil {
		return err
	}

	return h.renderPost(c, nil, nil)
}

func (h *Handlers) renderPost(c echo.Context, values map[string]string, errs forms.Errors) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.repo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}

	comments, err := h.repo.ListCommentsByPostID(ctx, id)
	if err != nil {
		return err
	}

	data := map[string]any{
		"Title":    post.Title,
		"Post":     post,
		"Comments": comments,
	}
	if values != nil {
		data["Values"] = values
	}
	if errs != nil {
		data["Errors"] = errs
	}
	return h.render(c, http.StatusOK, "post", data)
}
