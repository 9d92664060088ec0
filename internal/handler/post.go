package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blog-auth-api/internal/middleware"
	"github.com/iliyamo/blog-auth-api/internal/model"
	"github.com/iliyamo/blog-auth-api/internal/utils"
)

// PostHandler implements the post CRUD.  Admins operate on every post;
// everyone else only sees and touches their own, enforced in SQL rather
// than by filtering in the handler.
type PostHandler struct {
	Posts  PostStore
	Images ImageStore
}

func NewPostHandler(posts PostStore, images ImageStore) *PostHandler {
	return &PostHandler{Posts: posts, Images: images}
}

type postResponse struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toPostResponse(p model.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Image:     p.ImageURL,
		Author:    p.AuthorName,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// Index lists posts: all of them for admins, own posts for everyone else.
func (h *PostHandler) Index(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	var (
		posts []model.Post
		err   error
	)
	if claims.Role == "admin" {
		posts, err = h.Posts.ListAll(ctx)
	} else {
		posts, err = h.Posts.ListByAuthor(ctx, claims.UserID)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return successList(c, "Get all posts", len(out), out)
}

// validatePostForm checks the multipart fields shared by Store and
// Update.  All three fields are required; the image arrives as a file.
func validatePostForm(title, content string, image *multipart.FileHeader) []fieldError {
	var errs []fieldError
	if title == "" {
		errs = append(errs, fieldError{"title": "The title field is required."})
	}
	if content == "" {
		errs = append(errs, fieldError{"content": "The content field is required."})
	}
	if image == nil {
		errs = append(errs, fieldError{"image": "The image field is required."})
	}
	return errs
}

// Store creates a post: upload the image first, then persist the row.
// If the insert fails after the upload succeeded the image is orphaned
// on the host; that partial-failure window is accepted and surfaces as
// a plain 500.
func (h *PostHandler) Store(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}

	title := c.FormValue("title")
	content := c.FormValue("content")
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}
	if errs := validatePostForm(title, content, image); len(errs) > 0 {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	url, imageID, err := h.uploadImage(ctx, image)
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	p := model.Post{
		Title:    title,
		Content:  content,
		ImageURL: url,
		ImageID:  imageID,
		AuthorID: claims.UserID,
	}
	id, err := h.Posts.Create(ctx, p)
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	p.ID = id
	p.AuthorName = claims.Name
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	return successData(c, "Create post successfully", toPostResponse(p))
}

// Show returns a single post, scoped by role.
func (h *PostHandler) Show(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "Post not found")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.findScoped(ctx, claims, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "Post not found")
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	return successData(c, "Successfully get post", toPostResponse(p))
}

// Update replaces a post's fields and image.  The old image is
// destroyed best-effort once the new one is up.
func (h *PostHandler) Update(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "Post not found")
	}

	title := c.FormValue("title")
	content := c.FormValue("content")
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}
	if errs := validatePostForm(title, content, image); len(errs) > 0 {
		return failValidation(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.findScoped(ctx, claims, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "Post not found")
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	url, imageID, err := h.uploadImage(ctx, image)
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	// Best effort; a leftover image on the host is not worth failing
	// the update over.
	if err := h.Images.Destroy(ctx, p.ImageID); err != nil {
		log.Printf("post update: destroy old image %s: %v", p.ImageID, err)
	}

	p.Title = title
	p.Content = content
	p.ImageURL = url
	p.ImageID = imageID
	if err := h.Posts.Update(ctx, p); err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	p.UpdatedAt = time.Now().UTC()
	return successData(c, "Update post successfully", toPostResponse(p))
}

// Destroy removes a post and best-effort destroys its image.
func (h *PostHandler) Destroy(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "Post not found")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.findScoped(ctx, claims, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "Post not found")
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	if err := h.Images.Destroy(ctx, p.ImageID); err != nil {
		log.Printf("post destroy: destroy image %s: %v", p.ImageID, err)
	}
	if err := h.Posts.Delete(ctx, p.ID); err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	return success(c, "Delete post successfully")
}

// findScoped fetches a post honoring the caller's role: admins reach
// any post, others only their own.
func (h *PostHandler) findScoped(ctx context.Context, claims utils.AuthClaims, id uint64) (model.Post, error) {
	if claims.Role == "admin" {
		return h.Posts.GetByID(ctx, id)
	}
	return h.Posts.GetByIDForAuthor(ctx, id, claims.UserID)
}

// uploadImage streams the uploaded file to the image host under the
// same bounded context as every other collaborator call.
func (h *PostHandler) uploadImage(ctx context.Context, image *multipart.FileHeader) (string, string, error) {
	src, err := image.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()
	return h.Images.Upload(ctx, image.Filename, src)
}
