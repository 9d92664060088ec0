package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/blog-auth-api/internal/model"
)

// PostRepo provides access to the 'posts' table.  Reads join users so
// the author's display name comes back with the post.
type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

const postColumns = `p.id, p.title, p.content, p.image_url, p.image_id,
	p.author_id, u.name, p.created_at, p.updated_at`

// ListAll returns every post, newest first.  Used for admin callers.
func (r *PostRepo) ListAll(ctx context.Context) ([]model.Post, error) {
	return r.list(ctx,
		"SELECT "+postColumns+" FROM posts p JOIN users u ON u.id=p.author_id ORDER BY p.created_at DESC")
}

// ListByAuthor returns the posts owned by a single user, newest first.
func (r *PostRepo) ListByAuthor(ctx context.Context, authorID uint64) ([]model.Post, error) {
	return r.list(ctx,
		"SELECT "+postColumns+" FROM posts p JOIN users u ON u.id=p.author_id WHERE p.author_id=? ORDER BY p.created_at DESC",
		authorID)
}

func (r *PostRepo) list(ctx context.Context, query string, args ...any) ([]model.Post, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.ImageURL, &p.ImageID,
			&p.AuthorID, &p.AuthorName, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetByID fetches a post by id regardless of owner.
func (r *PostRepo) GetByID(ctx context.Context, id uint64) (model.Post, error) {
	return r.get(ctx,
		"SELECT "+postColumns+" FROM posts p JOIN users u ON u.id=p.author_id WHERE p.id=? LIMIT 1",
		id)
}

// GetByIDForAuthor fetches a post by id only when owned by authorID.
// Non-admin callers go through this so ownership is enforced in SQL.
func (r *PostRepo) GetByIDForAuthor(ctx context.Context, id, authorID uint64) (model.Post, error) {
	return r.get(ctx,
		"SELECT "+postColumns+" FROM posts p JOIN users u ON u.id=p.author_id WHERE p.id=? AND p.author_id=? LIMIT 1",
		id, authorID)
}

func (r *PostRepo) get(ctx context.Context, query string, args ...any) (model.Post, error) {
	var p model.Post
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.Title, &p.Content, &p.ImageURL, &p.ImageID,
		&p.AuthorID, &p.AuthorName, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a post and returns its ID.
func (r *PostRepo) Create(ctx context.Context, p model.Post) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (title, content, image_url, image_id, author_id) VALUES (?,?,?,?,?)",
		p.Title, p.Content, p.ImageURL, p.ImageID, p.AuthorID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites the mutable fields of a post.
func (r *PostRepo) Update(ctx context.Context, p model.Post) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE posts SET title=?, content=?, image_url=?, image_id=?, updated_at=NOW() WHERE id=?",
		p.Title, p.Content, p.ImageURL, p.ImageID, p.ID)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// Delete removes a post by id.
func (r *PostRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM posts WHERE id=?", id)
	if err != nil {
		return err
	}
	return oneRow(res)
}
