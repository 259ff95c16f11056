package email_scrape

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
)

// parseRFC822 splits a raw message into its text and HTML bodies.
// Alert emails are almost always multipart/alternative with the job
// cards only in the HTML part.
func parseRFC822(raw []byte, fallbackSubject string) (htmlBody, textBody, subject string) {
	if len(raw) == 0 {
		return "", "", fallbackSubject
	}
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return "", string(raw), fallbackSubject
	}

	subject = decodeRFC2047(msg.Header.Get("Subject"))
	if subject == "" {
		subject = fallbackSubject
	}

	body, _ := io.ReadAll(io.LimitReader(msg.Body, 25<<20))
	textBody, htmlBody = extractTextParts(msg.Header, body)
	if textBody == "" && htmlBody == "" {
		textBody = string(body)
	}
	return htmlBody, textBody, subject
}

func extractTextParts(h mail.Header, body []byte) (plain, htmlPart string) {
	cte := strings.ToLower(strings.TrimSpace(h.Get("Content-Transfer-Encoding")))

	mediaType, params, err := mime.ParseMediaType(h.Get("Content-Type"))
	if err != nil {
		return string(decodeTransferEncoding(body, cte)), ""
	}
	mediaType = strings.ToLower(mediaType)

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return string(decodeTransferEncoding(body, cte)), ""
		}
		mr := multipart.NewReader(bytes.NewReader(body), boundary)
		for {
			p, err := mr.NextPart()
			if err != nil {
				break
			}
			partCTE := strings.ToLower(strings.TrimSpace(p.Header.Get("Content-Transfer-Encoding")))
			pMedia, _, _ := mime.ParseMediaType(p.Header.Get("Content-Type"))
			pMedia = strings.ToLower(pMedia)

			b, _ := io.ReadAll(io.LimitReader(p, 20<<20))
			b = decodeTransferEncoding(b, partCTE)

			if strings.HasPrefix(pMedia, "multipart/") {
				pl, ht := extractTextParts(mail.Header(p.Header), b)
				if len(pl) > len(plain) {
					plain = pl
				}
				if len(ht) > len(htmlPart) {
					htmlPart = ht
				}
				continue
			}
			switch {
			case strings.HasPrefix(pMedia, "text/plain"):
				if len(b) > len(plain) {
					plain = string(b)
				}
			case strings.HasPrefix(pMedia, "text/html"):
				if len(b) > len(htmlPart) {
					htmlPart = string(b)
				}
			}
		}
		return plain, htmlPart
	}

	s := decodeTransferEncoding(body, cte)
	if strings.HasPrefix(mediaType, "text/html") {
		return "", string(s)
	}
	return string(s), ""
}

func decodeTransferEncoding(b []byte, cte string) []byte {
	switch cte {
	case "base64":
		dec := base64.NewDecoder(base64.StdEncoding, bytes.NewReader(b))
		out, _ := io.ReadAll(io.LimitReader(dec, 6<<20))
		return out
	case "quoted-printable":
		dec := quotedprintable.NewReader(bytes.NewReader(b))
		out, _ := io.ReadAll(io.LimitReader(dec, 6<<20))
		return out
	default:
		return b
	}
}

func decodeRFC2047(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	out, err := new(mime.WordDecoder).DecodeHeader(s)
	if err != nil {
		return s
	}
	return out
}
