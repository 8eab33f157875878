package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPTransport delivers messages over SMTP, dialing a new connection for
// every send.
type SMTPTransport struct {
	timeout time.Duration
}

// NewSMTPTransport returns a transport whose dial and I/O operations are
// bounded by timeout.
func NewSMTPTransport(timeout time.Duration) *SMTPTransport {
	return &SMTPTransport{timeout: timeout}
}

// Send implements Transport.
func (t *SMTPTransport) Send(ctx context.Context, d Delivery) error {
	m := mail.NewMsg()
	if err := m.FromFormat(d.From.Name, d.From.Address); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := m.To(d.To); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	if err := m.ReplyToFormat(d.From.Name, d.From.Address); err != nil {
		return fmt.Errorf("set reply-to: %w", err)
	}
	m.Subject(d.Subject)

	contentType := mail.TypeTextPlain
	if d.HTML {
		contentType = mail.TypeTextHTML
	}
	m.SetBodyString(contentType, d.Body)

	client, err := mail.NewClient(d.Server.Host, t.clientOptions(d.Server)...)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return err
	}
	return nil
}

func (t *SMTPTransport) clientOptions(s Server) []mail.Option {
	opts := []mail.Option{
		mail.WithUsername(s.Username),
		mail.WithPassword(s.Password),
		mail.WithDialContextFunc(t.dialer(s)),
	}

	switch s.Encryption {
	case EncryptionSSL:
		// The dialer performs the TLS handshake; WithSSL keeps go-mail from
		// attempting STARTTLS on top of it.
		opts = append(opts, mail.WithSSL(), mail.WithSMTPAuth(mail.SMTPAuthPlain))
	case EncryptionTLS:
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSMandatory), mail.WithSMTPAuth(mail.SMTPAuthPlain))
	default:
		opts = append(opts, mail.WithTLSPortPolicy(mail.NoTLS), mail.WithSMTPAuth(mail.SMTPAuthPlainNoEnc))
	}

	if t.timeout > 0 {
		opts = append(opts, mail.WithTimeout(t.timeout))
	}

	// Port goes last so no TLS policy option can rewrite it.
	return append(opts, mail.WithPort(s.Port))
}

// dialer returns a dial func whose connection carries a deadline. go-mail
// only bounds the dial itself, so without it a relay that accepts and never
// sends its greeting would hold the request indefinitely.
func (t *SMTPTransport) dialer(s Server) mail.DialContextFunc {
	return func(ctx context.Context, network, address string) (net.Conn, error) {
		d := net.Dialer{Timeout: t.timeout}
		conn, err := d.DialContext(ctx, network, address)
		if err != nil {
			return nil, err
		}

		deadline, ok := ctx.Deadline()
		if !ok && t.timeout > 0 {
			deadline, ok = time.Now().Add(t.timeout), true
		}
		if ok {
			if err := conn.SetDeadline(deadline); err != nil {
				_ = conn.Close()
				return nil, fmt.Errorf("set deadline: %w", err)
			}
		}

		if s.Encryption != EncryptionSSL {
			return conn, nil
		}

		tlsConn := tls.Client(conn, &tls.Config{
			ServerName: s.Host,
			MinVersion: tls.VersionTLS12,
		})
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("tls handshake: %w", err)
		}
		return tlsConn, nil
	}
}
