package services

import (
	"log"

	"github.com/benyamin-persia/dice-automation-apply/models"
)

// DetailVisitor is the slice of the scraper the workflow drives.
// *scraper.Pages implements it.
type DetailVisitor interface {
	// Visit opens a candidate's detail page and extracts what it can.
	// An error means the navigation itself failed.
	Visit(url string) (models.Detail, error)
	// Apply runs the two-click submission on the current detail page.
	Apply() error
}

// Ledger gates candidates that were processed in a past or current run.
type Ledger interface {
	Contains(url string) bool
	Record(url string) error
}

// Confirmer answers the per-candidate question in supervised mode.
type Confirmer interface {
	Confirm(title string) bool
}

// Workflow walks the discovery sequence one candidate at a time:
// skip if already in the ledger, otherwise visit, decide, optionally
// apply, and record the outcome. A navigation failure stops the whole
// remaining run — unlike discovery, which tolerates per-page failures.
type Workflow struct {
	visitor DetailVisitor
	ledger  Ledger
	mode    models.Mode
	confirm Confirmer
}

func NewWorkflow(visitor DetailVisitor, ledger Ledger, mode models.Mode, confirm Confirmer) *Workflow {
	return &Workflow{visitor: visitor, ledger: ledger, mode: mode, confirm: confirm}
}

// Run processes the candidates and returns the accumulated records.
// Partial progress survives every failure mode: the ledger is persisted
// after each candidate and the records gathered so far are always returned.
func (w *Workflow) Run(candidates []models.Candidate) models.RunResult {
	result := models.RunResult{Discovered: len(candidates)}

	for i, c := range candidates {
		if w.ledger.Contains(c.DetailURL) {
			log.Printf("[apply] skipping already processed job %d/%d: %s", i+1, len(candidates), c.DetailURL)
			result.Skipped++
			continue
		}

		log.Printf("[apply] visiting job %d/%d: %s", i+1, len(candidates), c.DetailURL)
		detail, err := w.visitor.Visit(c.DetailURL)
		if err != nil {
			log.Printf("✗ [apply] %v — stopping remaining candidates", err)
			result.Err = err
			break
		}

		applied := false
		if w.decide(detail.Title) {
			if err := w.visitor.Apply(); err != nil {
				log.Printf("⚠ [apply] application failed for %s: %v", c.DetailURL, err)
			} else {
				applied = true
			}
		}

		if err := w.ledger.Record(c.DetailURL); err != nil {
			log.Printf("⚠ [apply] could not persist ledger entry for %s: %v", c.DetailURL, err)
		}
		result.Records = append(result.Records, models.JobRecord{
			DetailURL: c.DetailURL,
			Title:     detail.Title,
			Skills:    detail.Skills,
			Applied:   applied,
		})
	}

	return result
}

// decide applies the run's application policy to one candidate. Auto mode
// always applies; supervised mode asks the operator; an unrecognized mode
// never applies and never prompts.
func (w *Workflow) decide(title string) bool {
	switch w.mode {
	case models.ModeAuto:
		log.Printf("[apply] auto applying to: %s", title)
		return true
	case models.ModeSupervised:
		return w.confirm.Confirm(title)
	default:
		log.Printf("⚠ [apply] unrecognized application mode %q — not applying", w.mode)
		return false
	}
}
