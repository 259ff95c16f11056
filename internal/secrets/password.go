package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"jobscout-engine/internal/config"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "jobscout"

func getPassword(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("keyring account name is empty")
	}
	pw, err := keyring.Get(KeyringService, account)
	if err != nil || strings.TrimSpace(pw) == "" {
		return "", fmt.Errorf("password for %q not found in keychain", account)
	}
	return pw, nil
}

func setPassword(account, password string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, account, password)
}

func GetIMAPPassword(account string) (string, error) { return getPassword(account) }
func SetIMAPPassword(account, pw string) error       { return setPassword(account, pw) }
func GetSMTPPassword(account string) (string, error) { return getPassword(account) }
func SetSMTPPassword(account, pw string) error       { return setPassword(account, pw) }

func DeletePassword(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

// IMAPKeyringAccount derives a stable account name from config when one
// is not set explicitly.
func IMAPKeyringAccount(cfg config.Config) string {
	if a := strings.TrimSpace(cfg.Email.KeyringAccount); a != "" {
		return a
	}
	return fmt.Sprintf("jobscout:imap:%s@%s", cfg.Email.Username, cfg.Email.IMAPHost)
}

func SMTPKeyringAccount(cfg config.Config) string {
	if a := strings.TrimSpace(cfg.Notify.KeyringAccount); a != "" {
		return a
	}
	return fmt.Sprintf("jobscout:smtp:%s@%s", cfg.Notify.From, cfg.Notify.SMTPHost)
}
