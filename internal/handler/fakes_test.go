package handler

// In-memory fakes for the store interfaces.  They mirror the semantics
// the handlers rely on: sql.ErrNoRows for missing records and the
// repository sentinels for duplicate keys.

import (
	"context"
	"database/sql"
	"io"
	"strings"
	"time"

	"github.com/iliyamo/blog-auth-api/internal/model"
	"github.com/iliyamo/blog-auth-api/internal/queue"
	"github.com/iliyamo/blog-auth-api/internal/repository"
)

type fakeUserStore struct {
	users  []model.User
	nextID uint64
}

func (f *fakeUserStore) Create(_ context.Context, name, email, passwordHash string, roleID uint64) (uint64, error) {
	for _, u := range f.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	f.nextID++
	now := time.Now().UTC()
	f.users = append(f.users, model.User{
		ID:           f.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		RoleID:       roleID,
		RoleName:     "user",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	return f.nextID, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id uint64, passwordHash string) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeUserStore) UpdatePasswordByEmail(_ context.Context, email, passwordHash string) error {
	for i := range f.users {
		if f.users[i].Email == email {
			f.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeUserStore) MarkEmailVerified(_ context.Context, email string) error {
	for i := range f.users {
		if f.users[i].Email == email {
			f.users[i].EmailVerified = true
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakeRoleStore struct {
	roles  []model.Role
	nextID uint64
}

func (f *fakeRoleStore) List(context.Context) ([]model.Role, error) {
	return append([]model.Role(nil), f.roles...), nil
}

func (f *fakeRoleStore) GetByID(_ context.Context, id uint64) (model.Role, error) {
	for _, r := range f.roles {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Role{}, sql.ErrNoRows
}

func (f *fakeRoleStore) GetByName(_ context.Context, name string) (model.Role, error) {
	for _, r := range f.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return model.Role{}, sql.ErrNoRows
}

func (f *fakeRoleStore) Create(_ context.Context, name string) (uint64, error) {
	for _, r := range f.roles {
		if r.Name == name {
			return 0, repository.ErrNameExists
		}
	}
	f.nextID++
	now := time.Now().UTC()
	f.roles = append(f.roles, model.Role{ID: f.nextID, Name: name, CreatedAt: now, UpdatedAt: now})
	return f.nextID, nil
}

func (f *fakeRoleStore) UpdateName(_ context.Context, id uint64, name string) error {
	for _, r := range f.roles {
		if r.Name == name && r.ID != id {
			return repository.ErrNameExists
		}
	}
	for i := range f.roles {
		if f.roles[i].ID == id {
			f.roles[i].Name = name
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeRoleStore) Delete(_ context.Context, id uint64) error {
	for i := range f.roles {
		if f.roles[i].ID == id {
			f.roles = append(f.roles[:i], f.roles[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakeTokenStore struct {
	tokens []model.Token
	nextID uint64
}

func (f *fakeTokenStore) Store(_ context.Context, email, token string) error {
	f.nextID++
	f.tokens = append(f.tokens, model.Token{ID: f.nextID, Email: email, Token: token, CreatedAt: time.Now().UTC()})
	return nil
}

func (f *fakeTokenStore) FindByToken(_ context.Context, token string) (model.Token, error) {
	for _, t := range f.tokens {
		if t.Token == token {
			return t, nil
		}
	}
	return model.Token{}, sql.ErrNoRows
}

func (f *fakeTokenStore) DeleteByToken(_ context.Context, token string) error {
	for i := range f.tokens {
		if f.tokens[i].Token == token {
			f.tokens = append(f.tokens[:i], f.tokens[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakePostStore struct {
	posts  []model.Post
	nextID uint64
}

func (f *fakePostStore) ListAll(context.Context) ([]model.Post, error) {
	return append([]model.Post(nil), f.posts...), nil
}

func (f *fakePostStore) ListByAuthor(_ context.Context, authorID uint64) ([]model.Post, error) {
	var out []model.Post
	for _, p := range f.posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostStore) GetByID(_ context.Context, id uint64) (model.Post, error) {
	for _, p := range f.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Post{}, sql.ErrNoRows
}

func (f *fakePostStore) GetByIDForAuthor(_ context.Context, id, authorID uint64) (model.Post, error) {
	for _, p := range f.posts {
		if p.ID == id && p.AuthorID == authorID {
			return p, nil
		}
	}
	return model.Post{}, sql.ErrNoRows
}

func (f *fakePostStore) Create(_ context.Context, p model.Post) (uint64, error) {
	f.nextID++
	p.ID = f.nextID
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	f.posts = append(f.posts, p)
	return p.ID, nil
}

func (f *fakePostStore) Update(_ context.Context, p model.Post) error {
	for i := range f.posts {
		if f.posts[i].ID == p.ID {
			p.CreatedAt = f.posts[i].CreatedAt
			p.UpdatedAt = time.Now().UTC()
			f.posts[i] = p
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakePostStore) Delete(_ context.Context, id uint64) error {
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakePublisher struct {
	events []queue.EmailEvent
	err    error
}

func (f *fakePublisher) PublishEmail(_ context.Context, event queue.EmailEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type fakeImageStore struct {
	uploads     int
	sawDeadline bool
	destroyed   []string
	uploadErr   error
}

func (f *fakeImageStore) Upload(ctx context.Context, filename string, r io.Reader) (string, string, error) {
	_, f.sawDeadline = ctx.Deadline()
	if f.uploadErr != nil {
		return "", "", f.uploadErr
	}
	_, _ = io.Copy(io.Discard, r)
	f.uploads++
	return "https://img.example.com/posts/" + filename, "posts/" + filename, nil
}

func (f *fakeImageStore) Destroy(_ context.Context, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}
