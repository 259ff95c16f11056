package email_scrape

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// Message is the slice of an email the alert parser needs.
type Message struct {
	UID     imap.UID
	From    string
	Subject string
	Date    time.Time

	// Full RFC822 bytes, fetched with BODY.PEEK[] so the message
	// keeps its unseen flag until we finish parsing it.
	Raw []byte
}

// DialAndLogin connects over TLS and authenticates.
func DialAndLogin(ctx context.Context, addr, username, password string) (*imapclient.Client, error) {
	if addr == "" {
		return nil, errors.New("imap addr is required")
	}
	if username == "" || password == "" {
		return nil, errors.New("imap username/password is required")
	}

	host := addr
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		host = addr[:i]
	}
	c, err := imapclient.DialTLS(addr, &imapclient.Options{
		TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12, ServerName: host},
	})
	if err != nil {
		return nil, fmt.Errorf("imap dial tls: %w", err)
	}

	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()

	if err := c.Login(username, password).Wait(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("imap login: %w", err)
	}
	return c, nil
}

func SelectMailbox(c *imapclient.Client, mailbox string) error {
	if c == nil {
		return errors.New("imap client is nil")
	}
	if mailbox == "" {
		mailbox = "INBOX"
	}
	if _, err := c.Select(mailbox, &imap.SelectOptions{ReadOnly: false}).Wait(); err != nil {
		return fmt.Errorf("imap select %q: %w", mailbox, err)
	}
	return nil
}

// FetchUnseen pulls up to max unseen messages newer than lookbackDays,
// newest first, including envelope and raw RFC822 bytes.
func FetchUnseen(ctx context.Context, c *imapclient.Client, lookbackDays, max int) ([]Message, error) {
	if c == nil {
		return nil, errors.New("imap client is nil")
	}
	if lookbackDays <= 0 {
		lookbackDays = 1
	}
	if max <= 0 {
		max = 200
	}

	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
		Since:   time.Now().AddDate(0, 0, -lookbackDays),
	}
	searchData, err := c.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("imap uid search unseen: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return []Message{}, nil
	}
	for i, j := 0, len(uids)-1; i < j; i, j = i+1, j-1 {
		uids[i], uids[j] = uids[j], uids[i]
	}
	if len(uids) > max {
		uids = uids[:max]
	}

	bodyAll := &imap.FetchItemBodySection{
		Specifier: imap.PartSpecifierNone,
		Peek:      true,
	}
	fetchCmd := c.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		UID:          true,
		Envelope:     true,
		InternalDate: true,
		BodySection:  []*imap.FetchItemBodySection{bodyAll},
	})
	defer func() { _ = fetchCmd.Close() }()

	out := make([]Message, 0, len(uids))
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		msgData := fetchCmd.Next()
		if msgData == nil {
			break
		}
		buf, err := msgData.Collect()
		if err != nil {
			return nil, fmt.Errorf("imap fetch collect: %w", err)
		}

		var m Message
		m.UID = buf.UID
		if buf.Envelope != nil {
			m.Subject = buf.Envelope.Subject
			m.Date = buf.Envelope.Date
			m.From = joinAddrs(buf.Envelope.From)
		}
		if b := buf.FindBodySection(bodyAll); b != nil {
			m.Raw = append([]byte(nil), b...)
		}
		if (m.Subject == "" || m.From == "" || m.Date.IsZero()) && len(m.Raw) > 0 {
			subj, from, date := parseHeadersFallback(m.Raw)
			if m.Subject == "" {
				m.Subject = subj
			}
			if m.From == "" {
				m.From = from
			}
			if m.Date.IsZero() {
				m.Date = date
			}
		}
		out = append(out, m)
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("imap fetch close: %w", err)
	}
	return out, nil
}

// MarkSeen adds \Seen to a UID set. Store has no Wait in go-imap v2;
// Close returns the final status.
func MarkSeen(c *imapclient.Client, uids []imap.UID) error {
	if c == nil {
		return errors.New("imap client is nil")
	}
	if len(uids) == 0 {
		return nil
	}
	cmd := c.Store(imap.UIDSetNum(uids...), &imap.StoreFlags{
		Op:     imap.StoreFlagsAdd,
		Silent: true,
		Flags:  []imap.Flag{imap.FlagSeen},
	}, nil)
	if err := cmd.Close(); err != nil {
		return fmt.Errorf("imap store add seen: %w", err)
	}
	return nil
}

func LogoutAndClose(c *imapclient.Client) {
	if c == nil {
		return
	}
	if err := c.Logout().Wait(); err != nil {
		log.Printf("[email] imap logout: %v", err)
	}
	_ = c.Close()
}

func joinAddrs(addrs []imap.Address) string {
	parts := make([]string, 0, len(addrs))
	for i := range addrs {
		a := &addrs[i]
		addr := strings.TrimSpace(a.Addr())
		if addr == "" {
			addr = strings.TrimSpace(a.Name)
		}
		if addr != "" {
			parts = append(parts, addr)
		}
	}
	return strings.Join(parts, ", ")
}

func parseHeadersFallback(raw []byte) (subject, from string, date time.Time) {
	msg, err := mail.ReadMessage(strings.NewReader(string(raw)))
	if err != nil {
		return "", "", time.Time{}
	}
	h := msg.Header
	subject = h.Get("Subject")
	from = h.Get("From")
	if ds := h.Get("Date"); ds != "" {
		if t, err := mail.ParseDate(ds); err == nil {
			date = t
		}
	}
	_, _ = io.Copy(io.Discard, msg.Body)
	return
}
