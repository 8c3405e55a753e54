package container

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyb-mobile-app/hyb-api/config"
	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
	"github.com/hyb-mobile-app/hyb-api/pkg/helpers"
)

func testConfig(driver string) *config.Config {
	return &config.Config{AppName: "hyb-api", Env: "test", StoreDriver: driver, JWTSecret: "s", JWTTTL: time.Hour}
}

func TestBuild_Memory(t *testing.T) {
	cfg := testConfig("memory")
	c, err := Build(context.Background(), cfg, helpers.NewLogger(cfg.AppName, cfg.Env))
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.PGPool)
	assert.Nil(t, c.UserIndex)
	assert.Nil(t, c.Avatars)
	assert.Nil(t, c.RabbitPub)

	u := &entity.User{Name: "Ann", Email: "ann@x.com", Password: "hash"}
	require.NoError(t, c.Users.Create(context.Background(), u))
	p := &entity.Post{AuthorID: u.ID, Content: "hi"}
	require.NoError(t, c.Posts.Create(context.Background(), p))

	tok, _, err := c.JWT.Issue(u.ID, u.Email)
	require.NoError(t, err)
	claims, err := c.JWT.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestBuild_UnknownDriver(t *testing.T) {
	cfg := testConfig("mongo")
	_, err := Build(context.Background(), cfg, helpers.NewLogger(cfg.AppName, cfg.Env))
	assert.ErrorContains(t, err, "unknown STORE_DRIVER")
}

func TestBuild_OptionalBackendsDegrade(t *testing.T) {
	cfg := testConfig("memory")
	cfg.RedisAddr = "127.0.0.1:1"
	cfg.ElasticsearchAddrs = "http://127.0.0.1:1"
	cfg.ESUsersIndex = "users"
	c, err := Build(context.Background(), cfg, helpers.NewLogger(cfg.AppName, cfg.Env))
	require.NoError(t, err)
	defer c.Close()
	assert.Nil(t, c.Redis)
	assert.Nil(t, c.UserIndex)
}
