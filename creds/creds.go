// Package creds resolves the Dice account credentials, preferring the OS
// keychain over interactive entry.
package creds

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"

	"github.com/benyamin-persia/dice-automation-apply/prompt"
)

// KeyringService groups this tool's secrets in the OS keychain.
const KeyringService = "dice-automation-apply"

type Credentials struct {
	Email    string
	Password string
}

// readPassword is swappable so tests don't need a terminal.
var readPassword = func() (string, error) {
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	return string(b), err
}

// Resolve returns the account credentials. The email comes from DICE_EMAIL
// or a prompt; the password from the keychain when present (and confirmed),
// otherwise from a no-echo prompt, after which it is saved for next time.
func Resolve(p *prompt.Prompter) (Credentials, error) {
	email := strings.TrimSpace(os.Getenv("DICE_EMAIL"))
	if email == "" {
		email = p.Line("Enter your username (email): ")
	}
	if email == "" {
		return Credentials{}, errors.New("no email provided")
	}

	if saved, err := keyring.Get(KeyringService, email); err == nil && strings.TrimSpace(saved) != "" {
		if p.YesNo("Found saved credentials. Use them?", true) {
			return Credentials{Email: email, Password: saved}, nil
		}
	}

	fmt.Print("Enter your password: ")
	password, err := readPassword()
	if err != nil {
		return Credentials{}, fmt.Errorf("read password: %w", err)
	}
	if strings.TrimSpace(password) == "" {
		return Credentials{}, errors.New("no password provided")
	}

	if err := keyring.Set(KeyringService, email, password); err != nil {
		// Keychain may be unavailable (e.g. headless Linux); the run can
		// still proceed with the typed password.
		fmt.Printf("⚠ could not save credentials to keychain: %v\n", err)
	}

	return Credentials{Email: email, Password: password}, nil
}

// Forget removes the saved password for email from the keychain.
func Forget(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is empty")
	}
	return keyring.Delete(KeyringService, email)
}
