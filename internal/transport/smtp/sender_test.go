package smtp

import (
	"bufio"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/delivery"
)

// fakeServer speaks just enough SMTP for one session over a pipe.
type fakeServer struct {
	commands []string
	data     string
	rcptCode string
	done     chan struct{}
}

func (f *fakeServer) serve(conn net.Conn) {
	defer close(f.done)
	defer conn.Close()

	r := bufio.NewReader(conn)
	reply := func(s string) { _, _ = io.WriteString(conn, s+"\r\n") }
	reply("220 fake ESMTP")

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimRight(line, "\r\n")
		f.commands = append(f.commands, cmd)

		switch verb := strings.ToUpper(strings.SplitN(cmd, " ", 2)[0]); verb {
		case "EHLO", "HELO":
			reply("250 fake")
		case "MAIL":
			reply("250 sender ok")
		case "RCPT":
			code := f.rcptCode
			if code == "" {
				code = "250 recipient ok"
			}
			reply(code)
		case "DATA":
			reply("354 end with .")
			var b strings.Builder
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				b.WriteString(l)
			}
			f.data = b.String()
			reply("250 queued")
		case "QUIT":
			reply("221 bye")
			return
		default:
			reply("502 unsupported")
		}
	}
}

func newTestSender(t *testing.T, srv *fakeServer) *Sender {
	t.Helper()
	s, err := New(Config{Host: "mail.example.com", Port: 25, From: "shop@example.com", FromName: "Beauté Shop"})
	if err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	s.dial = func(context.Context, string) (net.Conn, error) {
		client, server := net.Pipe()
		srv.done = make(chan struct{})
		go srv.serve(server)
		return client, nil
	}
	return s
}

func message() delivery.Message {
	return delivery.Message{
		To:      "user@example.com",
		Subject: "Your Beauty Product Recommendations",
		Text:    "Cleanser: Acne Foam",
		HTML:    `<p>Cleanser: <a href="https://example.com/foam">Acne Foam</a></p>`,
	}
}

func TestSend_Success(t *testing.T) {
	srv := &fakeServer{}
	s := newTestSender(t, srv)

	if err := s.Send(context.Background(), message()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	<-srv.done

	if !contains(srv.commands, "MAIL FROM:<shop@example.com>") || !contains(srv.commands, "RCPT TO:<user@example.com>") {
		t.Errorf("commands = %v", srv.commands)
	}

	parsed, err := mail.ReadMessage(strings.NewReader(srv.data))
	if err != nil {
		t.Fatalf("parse message: %v", err)
	}
	if subj := decodeHeader(parsed.Header.Get("Subject")); subj != "Your Beauty Product Recommendations" {
		t.Errorf("subject = %q", subj)
	}
	if from := decodeHeader(parsed.Header.Get("From")); from != "Beauté Shop <shop@example.com>" {
		t.Errorf("from = %q", from)
	}

	ct := parsed.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/alternative; boundary=") {
		t.Fatalf("content type = %q", ct)
	}
	boundary := strings.Trim(strings.TrimPrefix(ct, "multipart/alternative; boundary="), `"`)
	mr := multipart.NewReader(parsed.Body, boundary)

	var types []string
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("next part: %v", err)
		}
		// multipart.Reader decodes quoted-printable parts transparently
		body, _ := io.ReadAll(p)
		types = append(types, p.Header.Get("Content-Type"))
		if strings.HasPrefix(p.Header.Get("Content-Type"), "text/html") && !strings.Contains(string(body), `href="https://example.com/foam"`) {
			t.Errorf("html part = %q", body)
		}
	}
	if len(types) != 2 || !strings.HasPrefix(types[0], "text/plain") || !strings.HasPrefix(types[1], "text/html") {
		t.Errorf("parts = %v", types)
	}
}

func TestSend_RecipientRejected(t *testing.T) {
	srv := &fakeServer{rcptCode: "550 no such mailbox"}
	s := newTestSender(t, srv)

	err := s.Send(context.Background(), message())
	if err == nil || !strings.Contains(err.Error(), "set recipient") {
		t.Fatalf("expected recipient error, got %v", err)
	}
}

func TestSend_DialError(t *testing.T) {
	s, err := New(Config{Host: "mail.example.com", Port: 25, From: "shop@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	s.dial = func(context.Context, string) (net.Conn, error) { return nil, errors.New("connection refused") }

	if err := s.Send(context.Background(), message()); err == nil || !strings.Contains(err.Error(), "connect") {
		t.Fatalf("expected connect error, got %v", err)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{From: "a@b.c"}); err == nil {
		t.Error("expected error without host")
	}
	if _, err := New(Config{Host: "mail"}); err == nil {
		t.Error("expected error without from")
	}
}

func decodeHeader(s string) string {
	out, err := new(mime.WordDecoder).DecodeHeader(s)
	if err != nil {
		return s
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
