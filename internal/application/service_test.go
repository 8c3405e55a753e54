package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/hyb-mobile-app/hyb-api/config"
	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
	"github.com/hyb-mobile-app/hyb-api/internal/infrastructure/memory"
	"github.com/hyb-mobile-app/hyb-api/pkg/helpers"
)

type fakeIndexer struct {
	mu    sync.Mutex
	users map[string]entity.User
	err   error
}

func (f *fakeIndexer) IndexUser(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.users == nil {
		f.users = map[string]entity.User{}
	}
	f.users[u.ID] = *u
	return f.err
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []any
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, body)
	return nil
}

type fakeUploader struct {
	url string
	err error
}

func (f *fakeUploader) UploadAvatar(_ context.Context, userID, _ string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	_, _ = io.Copy(io.Discard, r)
	return f.url + userID, nil
}

var errBoom = errors.New("boom")

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fixture struct {
	users *memory.UserRepository
	posts *memory.PostRepository
	jwt   *helpers.JWTManager
	auth  *AuthService
	user  *UserService
	post  *PostService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := memory.NewUserRepository()
	posts := memory.NewPostRepository(users)
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	log := quietLogger()
	return &fixture{
		users: users,
		posts: posts,
		jwt:   jwt,
		auth:  NewAuthService(users, jwt, log),
		user:  NewUserService(users, log),
		post:  NewPostService(posts, log),
	}
}

func (f *fixture) register(t *testing.T, name, email string) *entity.User {
	t.Helper()
	res, err := f.auth.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "secret1"})
	require.NoError(t, err)
	return res.User
}

func testConfig() *config.Config {
	return &config.Config{AppName: "hyb-api", CompanyName: "HYB"}
}
