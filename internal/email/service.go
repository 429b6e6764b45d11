package email

import "context"

type Service interface {
	SendNewAccount(ctx context.Context, to, fullName, password string) error
}

// Noop discards all mail; used when emails are disabled in config.
type Noop struct{}

func (Noop) SendNewAccount(ctx context.Context, to, fullName, password string) error {
	return nil
}
