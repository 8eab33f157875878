package email

import (
	"context"
	"fmt"

	"dario.cat/mergo"
)

const (
	sentMessage        = "Email sent successfully"
	missingCredentials = "SMTP credentials are not set. Define SMTP_USERNAME and SMTP_PASSWORD in your .env file."
	failurePrefix      = "Email could not be sent. Error: "
)

// Server carries the connection settings handed to a Transport.
type Server struct {
	Host       string
	Port       int
	Username   string
	Password   string
	Encryption Encryption
}

// Sender is the From / Reply-To identity of a message.
type Sender struct {
	Address string
	Name    string
}

// Delivery is everything a Transport needs for a single send.
type Delivery struct {
	Server  Server
	From    Sender
	To      string
	Subject string
	Body    string
	HTML    bool
}

// Transport delivers one message or reports why it could not.
type Transport interface {
	Send(ctx context.Context, d Delivery) error
}

// Dispatcher sends messages through a Transport using a fixed SMTPConfig.
// Every call to Dispatch is exactly one delivery attempt.
type Dispatcher struct {
	config    SMTPConfig
	transport Transport
}

// NewDispatcher creates a dispatcher for the given relay configuration.
func NewDispatcher(cfg SMTPConfig, transport Transport) *Dispatcher {
	return &Dispatcher{
		config:    cfg,
		transport: transport,
	}
}

// IsConfigured checks if the dispatcher has the credentials it needs to send.
func (d *Dispatcher) IsConfigured() bool {
	return d.config.HasCredentials()
}

// Dispatch performs a single synchronous delivery attempt. It never returns
// an error; failures are described by the Outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) Outcome {
	if !d.config.HasCredentials() {
		return failure(fmt.Errorf("%w: %s", ErrConfiguration, missingCredentials), missingCredentials)
	}

	delivery := Delivery{
		Server: Server{
			Host:       d.config.Host,
			Port:       d.config.effectivePort(),
			Username:   d.config.Username,
			Password:   d.config.Password,
			Encryption: d.config.Encryption.normalize(),
		},
		From:    d.resolveSender(msg),
		To:      msg.To,
		Subject: msg.Subject,
		Body:    msg.Body,
		HTML:    msg.HTML,
	}

	if d.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.Timeout)
		defer cancel()
	}

	if err := d.transport.Send(ctx, delivery); err != nil {
		return failure(fmt.Errorf("%w: %w", ErrTransport, err), err.Error())
	}

	return Outcome{Success: true, Message: sentMessage}
}

// resolveSender fills empty message sender fields from the config defaults.
func (d *Dispatcher) resolveSender(msg Message) Sender {
	sender := Sender{Address: msg.FromAddress, Name: msg.FromName}
	defaults := Sender{Address: d.config.FromAddress, Name: d.config.FromName}
	// Merge only fails on mismatched types, which cannot happen here.
	_ = mergo.Merge(&sender, defaults)
	return sender
}

func failure(err error, detail string) Outcome {
	return Outcome{
		Success: false,
		Message: failurePrefix + detail,
		Err:     err,
	}
}
