package scraper

import (
	"fmt"
	"log"
	"time"

	"github.com/benyamin-persia/dice-automation-apply/browser"
	"github.com/benyamin-persia/dice-automation-apply/config"
	"github.com/benyamin-persia/dice-automation-apply/creds"
)

// Login signs the session in to Dice: email + Enter, then password + Enter.
// A dashboard that never appears is reported but not fatal — some accounts
// land on interstitial pages and the search still works.
func Login(s *browser.Session, cfg config.Config, c creds.Credentials) error {
	if err := s.Navigate(cfg.LoginURL, time.Second); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}
	if err := s.TypeEnter(EmailInputSelector, c.Email); err != nil {
		return fmt.Errorf("enter email: %w", err)
	}
	if err := s.TypeEnter(PasswordInputSelector, c.Password); err != nil {
		return fmt.Errorf("enter password: %w", err)
	}

	if err := s.WaitPresent(DashboardSelector); err != nil {
		log.Printf("⚠ login may have failed or the dashboard did not load as expected: %v", err)
		return nil
	}
	log.Printf("✓ login successful")
	return nil
}
