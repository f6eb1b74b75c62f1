package mailer

import "context"

// Message is one transactional email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers transactional email. The live implementation talks
// to Resend; the simulated one only logs. Selection happens once at
// start-up from configuration.
type Mailer interface {
	// Send delivers the message and returns the provider message id.
	Send(ctx context.Context, msg Message) (string, error)
}
