package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/dropDatabas3/accountd/internal/http/dto/auth"
	"github.com/dropDatabas3/accountd/internal/security/password"
)

var testHashParams = password.Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

func newRegisterFixture() (*fakeRepo, *fakeUploader, RegisterService) {
	repo := newFakeRepo()
	up := newFakeUploader()
	svc := NewRegisterService(Deps{Repo: repo, Uploader: up, HashParams: testHashParams})
	return repo, up, svc
}

func validInput() dto.RegisterInput {
	return dto.RegisterInput{
		FullName:            "Ana Pérez",
		Email:               "a@x.com",
		Username:            "Ana",
		Password:            "p1",
		AvatarLocalPath:     "avatar.png",
		CoverImageLocalPath: "cover.png",
	}
}

func TestRegister_OK(t *testing.T) {
	t.Parallel()
	repo, _, svc := newRegisterFixture()

	user, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	// Normalización: username en minúsculas, payload sin secretos.
	assert.Equal(t, "ana", user.Username)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Empty(t, user.PasswordHash)
	assert.Empty(t, user.CurrentRefreshToken)
	assert.Equal(t, "https://cdn.example.com/avatar.png", user.AvatarURL)
	assert.Equal(t, "https://cdn.example.com/cover.png", user.CoverImageURL)

	stored, err := repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "p1", stored.PasswordHash)
	assert.True(t, password.Verify("p1", stored.PasswordHash))
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()
	_, _, svc := newRegisterFixture()

	for _, mutate := range []func(*dto.RegisterInput){
		func(in *dto.RegisterInput) { in.FullName = "  " },
		func(in *dto.RegisterInput) { in.Email = "" },
		func(in *dto.RegisterInput) { in.Username = "" },
		func(in *dto.RegisterInput) { in.Password = "" },
	} {
		in := validInput()
		mutate(&in)
		_, err := svc.Register(context.Background(), in)
		assert.ErrorIs(t, err, ErrRegisterMissingFields)
	}
}

func TestRegister_AvatarRequired(t *testing.T) {
	t.Parallel()
	_, _, svc := newRegisterFixture()

	in := validInput()
	in.AvatarLocalPath = ""
	_, err := svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrRegisterAvatarRequired)
}

func TestRegister_DuplicateWinsOverMissingAvatar(t *testing.T) {
	t.Parallel()
	_, _, svc := newRegisterFixture()

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	// Repetido Y sin avatar: el conflicto se reporta primero.
	in := validInput()
	in.AvatarLocalPath = ""
	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrRegisterDuplicate)
}

func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()
	_, _, svc := newRegisterFixture()

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	// Mismo email, otro username.
	in := validInput()
	in.Username = "otrauser"
	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrRegisterDuplicate)

	// Mismo username con distinto case, otro email.
	in = validInput()
	in.Email = "b@x.com"
	in.Username = "ANA"
	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrRegisterDuplicate)
}

func TestRegister_AvatarUploadFails(t *testing.T) {
	t.Parallel()
	repo, up, svc := newRegisterFixture()
	up.failPaths["avatar.png"] = true

	_, err := svc.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrRegisterAvatarUpload)
	assert.Empty(t, repo.users)
}

func TestRegister_CoverUploadFailureTolerated(t *testing.T) {
	t.Parallel()
	_, up, svc := newRegisterFixture()
	up.failPaths["cover.png"] = true

	user, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, user.AvatarURL)
	assert.Empty(t, user.CoverImageURL)
}

func TestRegister_NoCoverProvided(t *testing.T) {
	t.Parallel()
	_, up, svc := newRegisterFixture()

	in := validInput()
	in.CoverImageLocalPath = ""
	user, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, user.CoverImageURL)
	assert.Len(t, up.calls, 1)
}
