package email

import "errors"

var (
	// ErrConfiguration is returned when required SMTP settings are missing.
	ErrConfiguration = errors.New("email: smtp configuration incomplete")

	// ErrTransport wraps failures reported by the SMTP transport
	// (connection, authentication or protocol rejection).
	ErrTransport = errors.New("email: transport failure")
)
