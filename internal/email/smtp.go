package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendNewAccount(ctx context.Context, to, fullName, password string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your account has been created")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nAn account has been created for you.\nLogin: %s\nPassword: %s\n",
		fullName, to, password,
	))

	if err := ctx.Err(); err != nil {
		return err
	}

	// DialAndSend has no cancellation hook, so the send runs in a
	// goroutine and the caller stops waiting once ctx is done.
	errc := make(chan error, 1)
	go func() {
		errc <- s.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("failed to send new account email: %w", err)
		}
		return nil
	}
}
