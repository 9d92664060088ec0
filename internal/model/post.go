package model

import "time"

// Post represents a row in the `posts` table.  The image itself
// lives on the external image host; only the public URL and the
// host-side identifier needed for deletion are stored here.
//
// Fields:
//  ID         – primary key identifier.
//  Title      – post title.
//  Content    – post body.
//  ImageURL   – public URL of the uploaded image.
//  ImageID    – image host identifier used to destroy the image.
//  AuthorID   – user who created the post.
//  AuthorName – author display name joined from users; filled by
//               queries that join users, zero value otherwise.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Post struct {
	ID         uint64    // posts.id
	Title      string    // posts.title
	Content    string    // posts.content
	ImageURL   string    // posts.image_url
	ImageID    string    // posts.image_id
	AuthorID   uint64    // posts.author_id
	AuthorName string    // users.name (joined)
	CreatedAt  time.Time // posts.created_at
	UpdatedAt  time.Time // posts.updated_at
}
