package email_test

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"contact-form-backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startRelay listens on a loopback port and hands every accepted connection
// to serve. Connections still open when the test ends are closed.
func startRelay(t *testing.T, serve func(conn net.Conn)) (string, int) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
			go serve(conn)
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port
}

// smtpRelay answers a minimal ESMTP dialog with AUTH PLAIN and sends the
// client commands plus the DATA payload to transcript when the session ends.
func smtpRelay(transcript chan<- string) func(net.Conn) {
	return func(conn net.Conn) {
		defer conn.Close()

		var b strings.Builder
		defer func() { transcript <- b.String() }()

		r := bufio.NewReader(conn)
		reply := func(s string) { _, _ = io.WriteString(conn, s+"\r\n") }

		reply("220 relay.test ESMTP")
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimRight(line, "\r\n")
			b.WriteString(line + "\n")

			cmd := strings.ToUpper(line)
			switch {
			case strings.HasPrefix(cmd, "EHLO"):
				reply("250-relay.test")
				reply("250-AUTH PLAIN")
				reply("250 8BITMIME")
			case strings.HasPrefix(cmd, "AUTH"):
				reply("235 2.7.0 Authentication successful")
			case cmd == "DATA":
				reply("354 End data with <CR><LF>.<CR><LF>")
				if !readData(r, &b) {
					return
				}
				reply("250 2.0.0 Ok: queued")
			case cmd == "QUIT":
				reply("221 2.0.0 Bye")
				return
			default:
				reply("250 OK")
			}
		}
	}
}

func readData(r *bufio.Reader, b *strings.Builder) bool {
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return false
		}
		if line == ".\r\n" {
			return true
		}
		b.WriteString(line)
	}
}

func TestSMTPTransport_PlaintextDelivery(t *testing.T) {
	transcript := make(chan string, 1)
	host, port := startRelay(t, smtpRelay(transcript))

	err := email.NewSMTPTransport(5*time.Second).Send(context.Background(), email.Delivery{
		Server: email.Server{
			Host:       host,
			Port:       port,
			Username:   "mailer",
			Password:   "secret",
			Encryption: email.EncryptionNone,
		},
		From:    email.Sender{Address: "noreply@example.com", Name: "Website Contact"},
		To:      "al@example.com",
		Subject: "Thank you for contacting us!",
		Body:    "<p>Hello Al</p>",
		HTML:    true,
	})
	require.NoError(t, err)

	var got string
	select {
	case got = <-transcript:
	case <-time.After(5 * time.Second):
		t.Fatal("relay did not finish the session")
	}

	assert.Contains(t, got, "AUTH PLAIN")
	assert.Contains(t, got, "MAIL FROM:<noreply@example.com>")
	assert.Contains(t, got, "RCPT TO:<al@example.com>")
	assert.Regexp(t, `(?m)^Subject: Thank you for contacting us!`, got)
	assert.Regexp(t, `(?m)^To: .*al@example\.com`, got)
	assert.Regexp(t, `(?m)^From: .*noreply@example\.com`, got)
	assert.Regexp(t, `(?m)^Reply-To: .*noreply@example\.com`, got)
	assert.Regexp(t, `(?m)^Content-Type: text/html`, got)
}

func TestSMTPTransport_StalledRelayIsBounded(t *testing.T) {
	// Accepts the connection and never sends the greeting.
	host, port := startRelay(t, func(conn net.Conn) {
		_, _ = io.Copy(io.Discard, conn)
	})

	const timeout = 300 * time.Millisecond
	cfg := email.SMTPConfig{
		Host:        host,
		Port:        port,
		Username:    "mailer",
		Password:    "secret",
		Encryption:  email.EncryptionNone,
		FromAddress: "noreply@example.com",
		FromName:    "Website Contact",
		Timeout:     timeout,
	}
	d := email.NewDispatcher(cfg, email.NewSMTPTransport(timeout))

	start := time.Now()
	out := d.Dispatch(context.Background(), email.Message{
		To:      "al@example.com",
		Subject: "Thank you for contacting us!",
		Body:    "<p>Hello Al</p>",
		HTML:    true,
	})
	elapsed := time.Since(start)

	assert.False(t, out.Success)
	assert.True(t, errors.Is(out.Err, email.ErrTransport), "err: %v", out.Err)
	assert.Less(t, elapsed, 3*time.Second)
}

func TestSMTPTransport_TLSRequiresStartTLS(t *testing.T) {
	transcript := make(chan string, 1)
	host, port := startRelay(t, smtpRelay(transcript))

	err := email.NewSMTPTransport(5*time.Second).Send(context.Background(), email.Delivery{
		Server: email.Server{
			Host:       host,
			Port:       port,
			Username:   "mailer",
			Password:   "secret",
			Encryption: email.EncryptionTLS,
		},
		From:    email.Sender{Address: "noreply@example.com"},
		To:      "al@example.com",
		Subject: "Hello",
		Body:    "Hello",
	})

	// The relay does not advertise STARTTLS, so credentials must never be sent.
	require.Error(t, err)
	assert.ErrorContains(t, err, "STARTTLS")
}
