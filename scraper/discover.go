package scraper

import (
	"log"
	"strings"
	"time"

	"github.com/benyamin-persia/dice-automation-apply/browser"
	"github.com/benyamin-persia/dice-automation-apply/config"
	"github.com/benyamin-persia/dice-automation-apply/models"
)

// Pager is the slice of the browsing session the discovery loop needs.
// *browser.Session implements it.
type Pager interface {
	Navigate(url string, settle time.Duration) error
	Nodes(selector, attr string) ([]browser.Node, error)
}

// Discover paginates the filtered search and returns the candidate
// sequence, in page-then-card order. Pagination stops at the first page
// with no listing cards — there is no explicit last-page signal — and a
// navigation failure ends it early with the candidates found so far.
//
// Candidates are not deduplicated across pages: Dice rarely repeats an id
// between pages, and the ledger makes a repeat harmless downstream.
func Discover(p Pager, cfg config.Config) []models.Candidate {
	searchURL := cfg.SearchURL()
	var candidates []models.Candidate

	for page := 1; ; page++ {
		pageURL := config.PageURL(searchURL, page)
		log.Printf("[discover] page %d: %s", page, pageURL)

		if err := p.Navigate(pageURL, cfg.PageDelay); err != nil {
			log.Printf("⚠ [discover] page %d: %v — ending pagination", page, err)
			break
		}

		cards, err := p.Nodes(CardSelector, CardIDAttr)
		if err != nil {
			log.Printf("⚠ [discover] page %d: %v — ending pagination", page, err)
			break
		}
		if len(cards) == 0 {
			log.Printf("[discover] no job cards on page %d — ending pagination", page)
			break
		}
		log.Printf("[discover] found %d job card(s) on page %d", len(cards), page)

		for _, card := range cards {
			if !MatchesKeywords(card.Text) {
				continue
			}
			id := strings.TrimSpace(card.Attr)
			if id == "" {
				continue
			}
			candidates = append(candidates, models.Candidate{
				ID:           id,
				DetailURL:    cfg.DetailURL(id),
				TitleSnippet: card.Text,
			})
		}
	}

	log.Printf("[discover] %d candidate(s) matched keywords", len(candidates))
	return candidates
}
