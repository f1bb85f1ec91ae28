package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templates embed.FS

const htmlHeaders = "MIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\""

type Emailer interface {
	Send(to, subject, additionalHeaders, body string) error
}

type Service struct {
	emailer Emailer
	welcome *template.Template
}

func NewService(emailer Emailer) (*Service, error) {
	tmpl, err := template.ParseFS(templates, "templates/welcome.html")
	if err != nil {
		return nil, err
	}

	return &Service{
		emailer: emailer,
		welcome: tmpl,
	}, nil
}

// SendWelcome greets a new or returning subscriber. Every message carries the unsubscribe link.
// It returns once ctx is done even if the mail server has not answered yet.
func (e *Service) SendWelcome(ctx context.Context, toEmail, unsubscribeURL string, reactivated bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	title := "Welcome to the newsletter"
	if reactivated {
		title = "Welcome back to the newsletter"
	}

	var body bytes.Buffer
	err := e.welcome.Execute(&body, map[string]any{
		"Title":          title,
		"Email":          toEmail,
		"UnsubscribeURL": unsubscribeURL,
		"Reactivated":    reactivated,
	})
	if err != nil {
		return err
	}

	headers := htmlHeaders + "\r\nList-Unsubscribe: <" + unsubscribeURL + ">"

	done := make(chan error, 1)
	go func() {
		done <- e.emailer.Send(toEmail, title, headers, body.String())
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("welcome e-mail to %s: %w", toEmail, ctx.Err())
	}
}
