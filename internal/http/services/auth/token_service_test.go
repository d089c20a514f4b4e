package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/accountd/internal/store/core"
)

func newTokenFixture(t *testing.T) (*fakeRepo, TokenService, *core.User) {
	t.Helper()
	repo := newFakeRepo()
	user := &core.User{ID: "usr_1", Email: "a@x.com", Username: "ana", PasswordHash: "x"}
	require.NoError(t, repo.CreateUser(context.Background(), user))

	svc := NewTokenService(Deps{Repo: repo, Issuer: newTestIssuer()})
	return repo, svc, user
}

func TestTokenIssue_PersistsRefresh(t *testing.T) {
	t.Parallel()
	repo, svc, user := newTokenFixture(t)

	pair, err := svc.Issue(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	stored, err := repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshToken, stored.CurrentRefreshToken)
}

func TestTokenIssue_PersistFailureMeansNoTokens(t *testing.T) {
	t.Parallel()
	repo, svc, user := newTokenFixture(t)
	repo.failUpdate = true

	pair, err := svc.Issue(context.Background(), user)
	assert.ErrorIs(t, err, ErrTokenIssueFailed)
	assert.Nil(t, pair)
}

func TestTokenRotate_SucceedsOncePerToken(t *testing.T) {
	t.Parallel()
	_, svc, user := newTokenFixture(t)

	first, err := svc.Issue(context.Background(), user)
	require.NoError(t, err)

	// time.Sleep para que cambie iat y el par rotado no salga idéntico.
	time.Sleep(1100 * time.Millisecond)

	rotated, err := svc.Rotate(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, rotated.RefreshToken)

	// Replay del token ya consumido: rechazado, sin cambio de estado.
	_, err = svc.Rotate(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenUsed)

	// El nuevo sigue siendo rotable.
	time.Sleep(1100 * time.Millisecond)
	_, err = svc.Rotate(context.Background(), rotated.RefreshToken)
	require.NoError(t, err)
}

func TestTokenRotate_GarbageToken(t *testing.T) {
	t.Parallel()
	_, svc, _ := newTokenFixture(t)

	_, err := svc.Rotate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestTokenRotate_AccessTokenIsNotARefreshToken(t *testing.T) {
	t.Parallel()
	_, svc, user := newTokenFixture(t)

	pair, err := svc.Issue(context.Background(), user)
	require.NoError(t, err)

	// Firmado con el secreto equivocado para este endpoint.
	_, err = svc.Rotate(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestTokenRotate_DeletedSubject(t *testing.T) {
	t.Parallel()
	repo, svc, user := newTokenFixture(t)

	pair, err := svc.Issue(context.Background(), user)
	require.NoError(t, err)

	repo.mu.Lock()
	delete(repo.users, user.ID)
	repo.mu.Unlock()

	_, err = svc.Rotate(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogout_RevokesOutstandingRefresh(t *testing.T) {
	t.Parallel()
	repo, svc, user := newTokenFixture(t)

	pair, err := svc.Issue(context.Background(), user)
	require.NoError(t, err)

	logout := NewLogoutService(Deps{Repo: repo})
	require.NoError(t, logout.Logout(context.Background(), user.ID))

	stored, err := repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, stored.HasActiveSession())

	// El refresh sigue criptográficamente vigente pero ya no coincide.
	_, err = svc.Rotate(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenUsed)
}

func TestLogout_IsIdempotent(t *testing.T) {
	t.Parallel()
	repo, _, user := newTokenFixture(t)

	logout := NewLogoutService(Deps{Repo: repo})
	require.NoError(t, logout.Logout(context.Background(), user.ID))
	require.NoError(t, logout.Logout(context.Background(), user.ID))
	require.NoError(t, logout.Logout(context.Background(), "no-such-user"))
}
