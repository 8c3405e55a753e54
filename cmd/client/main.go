package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/hyb-mobile-app/hyb-api/config"
	"github.com/hyb-mobile-app/hyb-api/internal/client"
)

const usage = `usage: client <command> [flags]

commands:
  register -name NAME -email EMAIL [-password PW]
  login    -email EMAIL [-password PW]
  logout
  profile  [-refresh]
  users    [-page N] [-limit N] [-q QUERY]
  user     ID
  feed
  post     CONTENT
  like     STATUS_ID
  unlike   STATUS_ID
  comment  STATUS_ID CONTENT
  delete   STATUS_ID
  students [-year BE_YEAR]
`

// readPassword is swapped in tests to avoid touching the terminal.
var readPassword = term.ReadPassword

func main() {
	_ = godotenv.Load()
	cfg := config.LoadClient()

	store, err := client.OpenSQLiteStore(cfg.SessionDB)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := &app{api: client.New(cfg, store), out: os.Stdout, in: bufio.NewReader(os.Stdin)}
	if err := app.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	api *client.Client
	out io.Writer
	in  *bufio.Reader
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		name := fs.String("name", "", "display name")
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "password (prompted when empty)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		pw, err := a.password(*password)
		if err != nil {
			return err
		}
		s, err := a.api.Register(ctx, *name, *email, pw)
		if err != nil {
			return err
		}
		return a.print(s.User)
	case "login":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "password (prompted when empty)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		pw, err := a.password(*password)
		if err != nil {
			return err
		}
		s, err := a.api.Login(ctx, *email, pw)
		if err != nil {
			return err
		}
		return a.print(s.User)
	case "logout":
		return a.api.Logout(ctx)
	case "profile":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		refresh := fs.Bool("refresh", false, "reload from the server")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *refresh {
			u, err := a.api.RefreshUser(ctx)
			if err != nil {
				return err
			}
			return a.print(u)
		}
		s, err := a.api.Session(ctx)
		if err != nil {
			return err
		}
		if s == nil {
			return errors.New("not signed in")
		}
		return a.print(s.User)
	case "users":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		page := fs.Int("page", 0, "page number")
		limit := fs.Int("limit", 0, "page size")
		q := fs.String("q", "", "search by name or email")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *q != "" {
			users, err := a.api.SearchUsers(ctx, *q, *limit)
			if err != nil {
				return err
			}
			return a.print(users)
		}
		p, err := a.api.ListUsers(ctx, *page, *limit)
		if err != nil {
			return err
		}
		return a.print(p)
	case "user":
		id, err := arg(rest, 0, "ID")
		if err != nil {
			return err
		}
		u, err := a.api.GetUser(ctx, id)
		if err != nil {
			return err
		}
		return a.print(u)
	case "feed":
		posts, err := a.api.Feed(ctx)
		if err != nil {
			return err
		}
		return a.print(posts)
	case "post":
		if len(rest) == 0 {
			return errors.New("post: missing CONTENT")
		}
		p, err := a.api.CreatePost(ctx, strings.Join(rest, " "))
		if err != nil {
			return err
		}
		return a.print(p)
	case "like", "unlike":
		id, err := arg(rest, 0, "STATUS_ID")
		if err != nil {
			return err
		}
		toggle := a.api.Like
		if cmd == "unlike" {
			toggle = a.api.Unlike
		}
		p, err := toggle(ctx, id)
		if err != nil {
			return err
		}
		return a.print(p)
	case "comment":
		id, err := arg(rest, 0, "STATUS_ID")
		if err != nil {
			return err
		}
		if len(rest) < 2 {
			return errors.New("comment: missing CONTENT")
		}
		p, err := a.api.Comment(ctx, id, strings.Join(rest[1:], " "))
		if err != nil {
			return err
		}
		return a.print(p)
	case "delete":
		id, err := arg(rest, 0, "STATUS_ID")
		if err != nil {
			return err
		}
		return a.api.DeletePost(ctx, id)
	case "students":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		year := fs.String("year", "", "Buddhist-era year (default: current)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		var (
			students []client.Student
			err      error
		)
		if *year == "" {
			students, err = a.api.CurrentYearStudents(ctx)
		} else {
			students, err = a.api.StudentsByYear(ctx, *year)
		}
		if err != nil {
			return err
		}
		for _, s := range students {
			fmt.Fprintf(a.out, "%s\t%s\t%s\n", s.ID, s.DisplayName(), s.Email)
		}
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func arg(args []string, i int, name string) (string, error) {
	if len(args) <= i || strings.TrimSpace(args[i]) == "" {
		return "", fmt.Errorf("missing %s", name)
	}
	return args[i], nil
}

// password returns the flag value, or prompts without echo on a terminal and
// reads a plain line otherwise.
func (a *app) password(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(a.out, "Enter password: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		pw, err := readPassword(fd)
		fmt.Fprintln(a.out)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
