package handoff

import "context"

// Request carries everything a strategy needs to dispatch one quote.
type Request struct {
	Session string
	Subject string
	Body    string
	Payload Payload
}

// Receipt reports how a submission was dispatched. MailtoURI is always set by
// the mail strategy so the caller can fall back to a mail link even when
// direct delivery failed.
type Receipt struct {
	Strategy   string
	Dispatched bool
	MessageID  string
	MailtoURI  string
}

// Submitter hands a completed quote off through one delivery channel.
// Implementations log transport failures instead of surfacing them; a non-nil
// error means the request itself was unusable.
type Submitter interface {
	Strategy() string
	Submit(ctx context.Context, req Request) (Receipt, error)
}
