package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dropDatabas3/accountd/internal/media"
	"github.com/dropDatabas3/accountd/internal/store/core"
)

// fakeRepo es un Repository en memoria con la misma semántica que los
// drivers reales: lookups case-insensitive, conflicto por email o
// username duplicado, update de refresh token atómico bajo mutex.
type fakeRepo struct {
	mu    sync.Mutex
	users map[string]*core.User // por id

	failUpdate bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*core.User)}
}

func (r *fakeRepo) Ping(context.Context) error  { return nil }
func (r *fakeRepo) Close(context.Context) error { return nil }

func (r *fakeRepo) GetUserByIdentifier(_ context.Context, identifier string) (*core.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := strings.ToLower(identifier)
	for _, u := range r.users {
		if strings.ToLower(u.Email) == id || strings.ToLower(u.Username) == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepo) GetUserByID(_ context.Context, id string) (*core.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) CreateUser(_ context.Context, u *core.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) || strings.EqualFold(existing.Username, u.Username) {
			return core.ErrConflict
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateRefreshToken(_ context.Context, userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate {
		return fmt.Errorf("write refused")
	}
	u, ok := r.users[userID]
	if !ok {
		return core.ErrNotFound
	}
	u.CurrentRefreshToken = token
	return nil
}

// fakeUploader devuelve URLs deterministas y puede fallar selectivamente
// según el path.
type fakeUploader struct {
	failPaths map[string]bool
	calls     []string
	mu        sync.Mutex
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{failPaths: make(map[string]bool)}
}

func (f *fakeUploader) Upload(_ context.Context, localPath string) (*media.Asset, error) {
	f.mu.Lock()
	f.calls = append(f.calls, localPath)
	f.mu.Unlock()
	if f.failPaths[localPath] {
		return nil, media.ErrUploadFailed
	}
	return &media.Asset{URL: "https://cdn.example.com/" + localPath}, nil
}
