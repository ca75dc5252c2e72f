package handoff

import (
	"context"
	"fmt"
	"strings"

	"github.com/bashfilms/quote-backend/pkg/logger"
	"github.com/bashfilms/quote-backend/pkg/mailer"
)

// MailSender is the delivery surface the mail strategy uses. It is optional;
// without one the strategy still produces a mailto link for the caller.
type MailSender interface {
	Send(ctx context.Context, email mailer.Email) error
}

// MailSubmitter dispatches quotes as email. Direct delivery is best effort
// and the mailto fallback link is always included in the receipt.
type MailSubmitter struct {
	sender MailSender
	to     string
	logg   *logger.Logger
}

// NewMailSubmitter builds the mail strategy. sender may be nil when no mail
// provider is configured.
func NewMailSubmitter(sender MailSender, to string, logg *logger.Logger) (*MailSubmitter, error) {
	trimmed := strings.TrimSpace(to)
	if trimmed == "" {
		return nil, fmt.Errorf("mail recipient required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &MailSubmitter{sender: sender, to: trimmed, logg: logg}, nil
}

func (s *MailSubmitter) Strategy() string {
	return "mail"
}

// Submit attempts direct delivery and never fails the submission on transport
// errors; the caller keeps the mailto link either way.
func (s *MailSubmitter) Submit(ctx context.Context, req Request) (Receipt, error) {
	receipt := Receipt{
		Strategy:  s.Strategy(),
		MailtoURI: MailtoURI(s.to, req.Subject, req.Body),
	}

	if s.sender == nil {
		s.logg.Info(ctx, "no mail provider configured, returning mailto link only")
		return receipt, nil
	}

	email := mailer.Email{
		To:      s.to,
		ReplyTo: req.Payload.Email,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := s.sender.Send(ctx, email); err != nil {
		s.logg.Error(ctx, "quote mail delivery failed, falling back to mailto link", err)
		return receipt, nil
	}

	receipt.Dispatched = true
	return receipt, nil
}

// MailtoURI builds a mailto link with the subject and body percent-encoded.
func MailtoURI(to, subject, body string) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", to, encodeComponent(subject), encodeComponent(body))
}

const componentSafe = "-_.!~*'()"

// encodeComponent percent-encodes a string for use inside a mailto query
// component. Unlike url.QueryEscape it encodes spaces as %20, which mail
// clients require.
func encodeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range []byte(s) {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case strings.IndexByte(componentSafe, c) >= 0:
			b.WriteByte(c)
		default:
			b.WriteString(fmt.Sprintf("%%%02X", c))
		}
	}
	return b.String()
}
