// Package smtp delivers rendered recommendation emails over SMTP.
package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/delivery"
)

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	From     string
	FromName string
	Username string
	Password string
	UseTLS   bool
	Timeout  time.Duration
}

// Sender sends one message per SMTP session.
type Sender struct {
	cfg  Config
	dial func(ctx context.Context, addr string) (net.Conn, error)
	now  func() time.Time
}

// New creates a Sender. A zero timeout means 30 seconds.
func New(cfg Config) (*Sender, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("smtp from address is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.FromName == "" {
		cfg.FromName = "Beauty Recommendations"
	}
	s := &Sender{cfg: cfg, now: time.Now}
	dialer := &net.Dialer{Timeout: cfg.Timeout}
	s.dial = func(ctx context.Context, addr string) (net.Conn, error) {
		return dialer.DialContext(ctx, "tcp", addr)
	}
	return s, nil
}

// Send delivers msg to msg.To.
func (s *Sender) Send(ctx context.Context, msg delivery.Message) error {
	body, err := s.buildMessage(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	conn, err := s.dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("connect to SMTP server: %w", err)
	}
	defer func() { _ = conn.Close() }()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return fmt.Errorf("create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	if s.cfg.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: s.cfg.Host,
			MinVersion: tls.VersionTLS12,
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("start TLS: %w", err)
		}
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("start message: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}

	// The server accepted the message once DATA closed; a failed QUIT changes nothing.
	_ = client.Quit()
	return nil
}

// buildMessage renders headers and a multipart/alternative body with
// quoted-printable plain and HTML parts.
func (s *Sender) buildMessage(msg delivery.Message) ([]byte, error) {
	var b bytes.Buffer
	boundary := fmt.Sprintf("boundary_%d", s.now().UnixNano())

	from := mime.QEncoding.Encode("utf-8", s.cfg.FromName)
	fmt.Fprintf(&b, "From: %s <%s>\r\n", from, s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", s.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	parts := []struct{ contentType, body string }{
		{"text/plain; charset=UTF-8", msg.Text},
		{"text/html; charset=UTF-8", msg.HTML},
	}
	for _, p := range parts {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		fmt.Fprintf(&b, "Content-Type: %s\r\n", p.contentType)
		b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
		qp := quotedprintable.NewWriter(&b)
		if _, err := qp.Write([]byte(p.body)); err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		if err := qp.Close(); err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		b.WriteString("\r\n")
	}
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return b.Bytes(), nil
}
