// Package email provides email sending functionality with pluggable providers.
package email

import (
	"context"
	"errors"
)

// ErrSendFailed is wrapped by every provider error, so callers can classify
// delivery failures with errors.Is.
var ErrSendFailed = errors.New("email send failed")

// Message represents an email message to be sent.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string // Plain text fallback
}

// Sender is the interface for email providers.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
