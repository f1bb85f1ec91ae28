package emailer

import (
	"crypto/tls"
	"net"
	"net/smtp"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/config"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/metrics"
)

// SMTPService wraps smtp.SendMail with structured logging and metrics.
type SMTPService struct {
	user     string
	host     string
	port     string
	password string
	From     string
	timeout  time.Duration
	logger   zerolog.Logger
	m        *metrics.Metrics
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPService(cfg config.Email, logger zerolog.Logger, m *metrics.Metrics) *SMTPService {
	logger = logger.With().Str("component", "SMTPService").Logger()
	e := &SMTPService{
		user:     cfg.User,
		host:     cfg.Host,
		port:     cfg.Port,
		password: cfg.Password,
		From:     cfg.From,
		timeout:  cfg.Timeout,
		logger:   logger,
		m:        m,
	}
	e.send = e.sendMail
	return e
}

func (e *SMTPService) Send(to, subject, additionalHeaders, body string) error {
	start := time.Now()
	e.logger.Debug().
		Str("to", to).
		Str("subject", subject).
		Msg("sending email")

	var auth smtp.Auth
	if e.user != "" {
		auth = smtp.PlainAuth("", e.user, e.password, e.host)
	}
	msg := "From: " + e.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		additionalHeaders + "\r\n\r\n" +
		body
	addr := e.host + ":" + e.port

	err := e.send(addr, auth, e.From, []string{to}, []byte(msg))
	duration := time.Since(start)
	e.m.RecordEmail(err)

	if err != nil {
		e.logger.Error().
			Err(err).
			Str("to", to).
			Str("subject", subject).
			Dur("duration", duration).
			Msg("email send failed")
		return err
	}

	e.logger.Info().
		Str("to", to).
		Str("subject", subject).
		Dur("duration", duration).
		Msg("email sent successfully")
	return nil
}

// sendMail is smtp.SendMail with one deadline covering dial and the whole conversation.
func (e *SMTPService) sendMail(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", addr, e.timeout)
	if err != nil {
		return err
	}
	if e.timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(e.timeout)); err != nil {
			_ = conn.Close()
			return err
		}
	}

	c, err := smtp.NewClient(conn, e.host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() { _ = c.Close() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: e.host, MinVersion: tls.VersionTLS12}); err != nil {
			return err
		}
	}
	if a != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(a); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// LogSender stands in for SMTP when no mail server is configured.
type LogSender struct {
	logger zerolog.Logger
}

func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger.With().Str("component", "LogSender").Logger()}
}

func (l *LogSender) Send(to, subject, _, _ string) error {
	l.logger.Info().Str("to", to).Str("subject", subject).Msg("smtp disabled, email dropped")
	return nil
}
