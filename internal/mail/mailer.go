package mail

// Package mail sends the operator notification email for contact
// submissions through a hosted email API.

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by New when the API key or destination is missing.
var ErrNotConfigured = errors.New("mail: api key and destination address are required")

// Message is a single outbound email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
}

// Mailer sends email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
