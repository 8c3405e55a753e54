package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/hyb-mobile-app/hyb-api/config"
	"github.com/hyb-mobile-app/hyb-api/internal/application"
	"github.com/hyb-mobile-app/hyb-api/internal/container"
	"github.com/hyb-mobile-app/hyb-api/pkg/helpers"
)

type demoUser struct {
	Name  string
	Email string
	Post  string
}

var demoUsers = []demoUser{
	{Name: "Demo User", Email: "demo@hyb.app", Post: "Hello from the demo account!"},
	{Name: "Ann Student", Email: "ann@hyb.app", Post: "First day of the semester, see you in class."},
	{Name: "Bob Student", Email: "bob@hyb.app", Post: "Anyone up for the study group on Friday?"},
}

const demoPassword = "password123"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	// no welcome mails for seed data
	cfg.MailSendEnabled = false
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	c, err := container.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("startup failed: %v", err)
	}
	defer c.Close()

	auth := application.NewAuthService(c.Users, c.JWT, logger)
	if c.UserIndex != nil {
		auth.Indexer = c.UserIndex
	}
	posts := application.NewPostService(c.Posts, logger)

	var ids []string
	for _, d := range demoUsers {
		res, err := auth.Register(ctx, application.RegisterInput{Name: d.Name, Email: d.Email, Password: demoPassword})
		if errors.Is(err, application.ErrDuplicateEmail) {
			fmt.Printf("user exists, skipping: %s\n", d.Email)
			continue
		}
		if err != nil {
			logger.Fatalf("failed to seed user %s: %v", d.Email, err)
		}
		fmt.Printf("seeded user: id=%s email=%s name=%s password=%s\n", res.User.ID, d.Email, d.Name, demoPassword)

		p, err := posts.Create(ctx, res.User.ID, d.Post)
		if err != nil {
			logger.Fatalf("failed to seed status for %s: %v", d.Email, err)
		}
		ids = append(ids, res.User.ID)
		fmt.Printf("seeded status: id=%s\n", p.ID)

		// everyone seeded before likes the newest status
		for _, liker := range ids[:len(ids)-1] {
			if _, err := posts.Like(ctx, p.ID, liker); err != nil {
				logger.Fatalf("failed to seed like: %v", err)
			}
		}
	}
	fmt.Printf("done: %d new users\n", len(ids))
}
