package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyb-mobile-app/hyb-api/pkg/mailer"
	mailtpl "github.com/hyb-mobile-app/hyb-api/pkg/mailer/templates"
)

func TestAuthService_RegisterNormalizesAndIssuesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.auth.Register(ctx, RegisterInput{Name: "  Ann ", Email: " A@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", res.User.Email)
	assert.Equal(t, "Ann", res.User.Name)
	assert.NotEqual(t, "secret1", res.User.Password)

	claims, err := f.jwt.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestAuthService_RegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "Ann", "a@x.com")

	for _, email := range []string{"a@x.com", "A@X.COM", "  a@X.com "} {
		_, err := f.auth.Register(ctx, RegisterInput{Name: "Other", Email: email, Password: "secret1"})
		assert.ErrorIs(t, err, ErrDuplicateEmail, email)
	}
	n, err := f.users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAuthService_LoginEnumerationSafe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "Ann", "a@x.com")

	_, errWrongPwd := f.auth.Login(ctx, "a@x.com", "wrong")
	_, errUnknown := f.auth.Login(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, errWrongPwd, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errWrongPwd.Error(), errUnknown.Error())

	res, err := f.auth.Login(ctx, "A@X.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	_, err = f.jwt.Verify(res.Token)
	assert.NoError(t, err)
}

func TestAuthService_Profile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "Ann", "a@x.com")

	got, err := f.auth.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)

	_, err = f.auth.Profile(ctx, "6f1c0c1e-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = f.auth.Profile(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_SideEffects(t *testing.T) {
	f := newFixture(t)
	idx := &fakeIndexer{err: errBoom}
	pub := &fakePublisher{}
	f.auth.Indexer = idx
	f.auth.Jobs = pub
	f.auth.Config = testConfig()

	// index failures are logged, never fatal
	u := f.register(t, "Ann", "a@x.com")
	assert.Contains(t, idx.users, u.ID)

	require.Len(t, pub.jobs, 1)
	job, ok := pub.jobs[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", job.To)
	assert.Equal(t, mailtpl.Welcome, job.Template)
	assert.Equal(t, "Ann", job.Data["Name"])
}

func TestAuthService_UpdateProfileAndAvatar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "Ann", "a@x.com")

	got, err := f.auth.UpdateProfile(ctx, u.ID, " Annie ")
	require.NoError(t, err)
	assert.Equal(t, "Annie", got.Name)

	_, err = f.auth.UploadAvatar(ctx, u.ID, "image/png", strings.NewReader("png"))
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	f.auth.Avatars = &fakeUploader{url: "https://cdn.example.com/"}
	got, err = f.auth.UploadAvatar(ctx, u.ID, "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+u.ID, got.AvatarURL)

	stored, err := f.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, got.AvatarURL, stored.AvatarURL)
	assert.Equal(t, "Annie", stored.Name)

	f.auth.Avatars = &fakeUploader{err: errBoom}
	_, err = f.auth.UploadAvatar(ctx, u.ID, "image/png", strings.NewReader("png"))
	assert.ErrorIs(t, err, errBoom)
}
