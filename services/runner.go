package services

import (
	"github.com/benyamin-persia/dice-automation-apply/browser"
	"github.com/benyamin-persia/dice-automation-apply/config"
	"github.com/benyamin-persia/dice-automation-apply/creds"
	"github.com/benyamin-persia/dice-automation-apply/ledger"
	"github.com/benyamin-persia/dice-automation-apply/models"
	"github.com/benyamin-persia/dice-automation-apply/scraper"
)

// Run drives one complete pass: sign in, discover candidates, then work
// through them with the application workflow. The caller owns the session
// and the ledger; the browser stays open afterwards so the operator can
// inspect the final state before exiting.
func Run(session *browser.Session, cfg config.Config, c creds.Credentials, mode models.Mode, confirm Confirmer, led *ledger.Ledger) models.RunResult {
	if err := scraper.Login(session, cfg, c); err != nil {
		return models.RunResult{Err: err}
	}

	candidates := scraper.Discover(session, cfg)

	workflow := NewWorkflow(scraper.NewPages(session, cfg), led, mode, confirm)
	return workflow.Run(candidates)
}
