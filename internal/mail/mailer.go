package mail

import (
	"context"
	"errors"
	"strings"

	gomail "github.com/wneessen/go-mail"
)

// ErrNotConfigured is returned by Send when SMTP credentials are absent.
// Callers treat it as a soft outcome, not a delivery failure.
var ErrNotConfigured = errors.New("smtp not configured")

type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type Config struct {
	Host     string
	Port     int
	Secure   bool
	Username string
	Password string
	From     string
}

// Mailer holds one reused SMTP client, constructed at startup and injected
// into the services that need it.
type Mailer struct {
	client *gomail.Client
	from   string
}

func New(cfg Config) (*Mailer, error) {
	if strings.TrimSpace(cfg.Username) == "" || strings.TrimSpace(cfg.Password) == "" {
		return &Mailer{}, nil
	}
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	}
	if cfg.Secure {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}
	from := strings.TrimSpace(cfg.From)
	if from == "" {
		from = cfg.Username
	}
	return &Mailer{client: client, from: from}, nil
}

func (m *Mailer) Configured() bool {
	return m != nil && m.client != nil
}

func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)
	return m.client.DialAndSendWithContext(ctx, msg)
}
