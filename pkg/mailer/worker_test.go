package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyb-mobile-app/hyb-api/config"
	mailtpl "github.com/hyb-mobile-app/hyb-api/pkg/mailer/templates"
)

type sentMail struct{ to, subject, text, html string }

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, text, html})
	return nil
}

func TestDeliver_Template(t *testing.T) {
	cfg := &config.Config{AppName: "hyb-api", CompanyName: "HYB"}
	body, err := json.Marshal(EmailJob{
		To:       "a@x.com",
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(cfg, "Ann", "a@x.com", mailtpl.WithTime(time.Now())),
	})
	require.NoError(t, err)

	s := &fakeSender{}
	require.NoError(t, Deliver(context.Background(), s, body))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "a@x.com", s.sent[0].to)
	assert.Equal(t, "Welcome to hyb-api, Ann", s.sent[0].subject)
	assert.NotEmpty(t, s.sent[0].html)
}

func TestDeliver_Raw(t *testing.T) {
	body := []byte(`{"to":"b@x.com","subject":"Hi","text":"hello"}`)
	s := &fakeSender{}
	require.NoError(t, Deliver(context.Background(), s, body))
	assert.Equal(t, sentMail{"b@x.com", "Hi", "hello", ""}, s.sent[0])
}

func TestDeliver_BadJobs(t *testing.T) {
	cases := map[string]string{
		"not json":         `{`,
		"no recipient":     `{"subject":"Hi","text":"x"}`,
		"no body":          `{"to":"a@x.com","subject":"Hi"}`,
		"unknown template": `{"to":"a@x.com","template":"nope"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			s := &fakeSender{}
			err := Deliver(context.Background(), s, []byte(body))
			assert.ErrorIs(t, err, ErrBadJob)
			assert.Empty(t, s.sent)
		})
	}
}

func TestDeliver_SendFailureIsRetryable(t *testing.T) {
	boom := errors.New("mailgun down")
	err := Deliver(context.Background(), &fakeSender{err: boom}, []byte(`{"to":"a@x.com","subject":"Hi","text":"x"}`))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrBadJob)
}
