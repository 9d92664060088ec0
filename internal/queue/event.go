// Package queue defines message payloads exchanged over the message broker.
package queue

// EmailQueue is the durable queue carrying outgoing email events from
// the API to the mailer worker.
const EmailQueue = "email.send"

// Email event kinds.  Each kind maps to one email template in the
// mailer worker.
const (
	EmailKindVerification = "verification"
	EmailKindReset        = "reset"
)

// EmailEvent asks the mailer worker to send one email.  The token is the
// value embedded in the link (an opaque single-use token for
// verification, a signed reset token for password resets); the matching
// store record is created by the API before the event is published, so a
// lost event never leaves a dangling link, only an unsent mail.
type EmailEvent struct {
	Kind  string `json:"kind"`
	Email string `json:"email"`
	Token string `json:"token"`
}
