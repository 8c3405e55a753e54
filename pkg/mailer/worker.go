package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mailtpl "github.com/hyb-mobile-app/hyb-api/pkg/mailer/templates"
)

// ErrBadJob marks a job that can never be delivered; it should be dropped, not requeued.
var ErrBadJob = errors.New("bad email job")

// Sender delivers one rendered email, e.g. *Mailgun.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Prepare decodes a queued job and renders its template when one is named.
func Prepare(body []byte) (job EmailJob, subject, text, html string, err error) {
	if err = json.Unmarshal(body, &job); err != nil {
		return job, "", "", "", fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	job.To = strings.TrimSpace(job.To)
	if job.To == "" {
		return job, "", "", "", fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return job, "", "", "", fmt.Errorf("%w: missing subject or body", ErrBadJob)
		}
		return job, job.Subject, job.Text, job.HTML, nil
	}
	subject, text, html, err = mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return job, "", "", "", fmt.Errorf("%w: render %s: %v", ErrBadJob, job.Template, err)
	}
	return job, subject, text, html, nil
}

// Deliver prepares and sends one queued job. Errors wrapping ErrBadJob are permanent;
// anything else comes from the sender and may succeed on retry.
func Deliver(ctx context.Context, s Sender, body []byte) error {
	job, subject, text, html, err := Prepare(body)
	if err != nil {
		return err
	}
	return s.Send(ctx, job.To, subject, text, html)
}
