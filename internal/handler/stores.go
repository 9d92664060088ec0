package handler

import (
	"context"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blog-auth-api/internal/imagehost"
	"github.com/iliyamo/blog-auth-api/internal/model"
	"github.com/iliyamo/blog-auth-api/internal/queue"
	"github.com/iliyamo/blog-auth-api/internal/repository"
)

// Handlers depend on these narrow interfaces instead of the concrete
// repositories so tests can drive them with in-memory fakes.  The
// repository types satisfy them; the assertions below keep the two in
// sync at compile time.

type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string, roleID uint64) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
	MarkEmailVerified(ctx context.Context, email string) error
}

type RoleStore interface {
	List(ctx context.Context) ([]model.Role, error)
	GetByID(ctx context.Context, id uint64) (model.Role, error)
	GetByName(ctx context.Context, name string) (model.Role, error)
	Create(ctx context.Context, name string) (uint64, error)
	UpdateName(ctx context.Context, id uint64, name string) error
	Delete(ctx context.Context, id uint64) error
}

type PostStore interface {
	ListAll(ctx context.Context) ([]model.Post, error)
	ListByAuthor(ctx context.Context, authorID uint64) ([]model.Post, error)
	GetByID(ctx context.Context, id uint64) (model.Post, error)
	GetByIDForAuthor(ctx context.Context, id, authorID uint64) (model.Post, error)
	Create(ctx context.Context, p model.Post) (uint64, error)
	Update(ctx context.Context, p model.Post) error
	Delete(ctx context.Context, id uint64) error
}

type TokenStore interface {
	Store(ctx context.Context, email, token string) error
	FindByToken(ctx context.Context, token string) (model.Token, error)
	DeleteByToken(ctx context.Context, token string) error
}

// EmailPublisher hands email events to the broker.  Publish failures
// are logged by the publisher and ignored by handlers.
type EmailPublisher interface {
	PublishEmail(ctx context.Context, event queue.EmailEvent) error
}

// ImageStore is the external image host: Upload returns the public URL
// and a deletable id, Destroy is best-effort.
type ImageStore interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, string, error)
	Destroy(ctx context.Context, publicID string) error
}

var (
	_ UserStore  = (*repository.UserRepo)(nil)
	_ RoleStore  = (*repository.RoleRepo)(nil)
	_ PostStore  = (*repository.PostRepo)(nil)
	_ TokenStore = (*repository.TokenRepo)(nil)
	_ EmailPublisher = (*queue.Publisher)(nil)
	_ ImageStore     = (*imagehost.Client)(nil)
)

// reqCtx bounds every store call made while serving a request.  The
// stores are remote collaborators; without this a stalled connection
// would hold the request open indefinitely.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
