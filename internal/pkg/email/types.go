package email

// Email is one outbound message to a single recipient.
type Email struct {
	To       string
	Subject  string
	Body     string // plain-text alternative
	HTMLBody string
}

// Sender delivers emails. Implementations report whether transport is
// configured; an unconfigured sender drops messages instead of failing,
// so email never breaks a business operation.
type Sender interface {
	Send(email *Email) error
	IsConfigured() bool
}

// Config holds SMTP transport settings.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}
