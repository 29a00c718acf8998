package mail

// Mailer sends a single plain-text message. Implementations make exactly one
// attempt; callers decide whether a failure is fatal.
type Mailer interface {
	Send(to, subject, body string) error
}
