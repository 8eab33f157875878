package email

// Message is a single outbound email. It is a plain value: copies handed to
// the Dispatcher cannot be changed by the caller afterwards.
type Message struct {
	To          string
	Subject     string
	Body        string
	FromAddress string // optional, falls back to SMTPConfig.FromAddress
	FromName    string // optional, falls back to SMTPConfig.FromName
	HTML        bool
}

// Outcome is the result of one delivery attempt.
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}
