package notify

import (
	"bytes"
	"fmt"
	"log"
	"net/smtp"
)

type EmailConfig struct {
	SMTPHost string
	SMTPPort int
	From     string
	To       string
	Password string
}

// SendDigest renders and mails the digest as multipart/alternative so
// both text-only and HTML clients get something readable.
func SendDigest(cfg EmailConfig, d Digest) error {
	htmlBody, err := d.RenderHTML()
	if err != nil {
		return err
	}
	textBody := d.RenderText()

	const boundary = "digest-boundary-7f3a"
	subject := fmt.Sprintf("Job Digest - %d new postings - %s", len(d.New), d.Date.Format("Jan 02, 2006"))

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", cfg.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(textBody)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	auth := smtp.PlainAuth("", cfg.From, cfg.Password, cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)
	log.Printf("[notify] sending digest to=%s via=%s new=%d", cfg.To, addr, len(d.New))
	if err := smtp.SendMail(addr, auth, cfg.From, []string{cfg.To}, msg.Bytes()); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}
