package scraper

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/benyamin-persia/dice-automation-apply/config"
	"github.com/benyamin-persia/dice-automation-apply/models"
)

// DetailSession is the slice of the browsing session the per-posting
// operations need. *browser.Session implements it.
type DetailSession interface {
	Navigate(url string, settle time.Duration) error
	Text(selector string) (string, error)
	OuterHTML(selector string) (string, error)
	ClickWhenReady(xpath string, settle time.Duration) error
}

// Pages performs the per-posting page work: visiting a detail page,
// extracting its fields, and driving the two-click application flow.
type Pages struct {
	s   DetailSession
	cfg config.Config
}

func NewPages(s DetailSession, cfg config.Config) *Pages {
	return &Pages{s: s, cfg: cfg}
}

// Visit navigates to a posting's detail page and extracts its title and
// skills. Extraction is best-effort per field: a missing element leaves
// that field empty. Only the navigation itself can fail.
func (p *Pages) Visit(url string) (models.Detail, error) {
	if err := p.s.Navigate(url, p.cfg.DetailDelay); err != nil {
		return models.Detail{}, fmt.Errorf("visit %s: %w", url, err)
	}

	var d models.Detail
	if title, err := p.s.Text(JobTitleSelector); err != nil {
		log.Printf("⚠ no job title on %s: %v", url, err)
	} else {
		d.Title = strings.TrimSpace(title)
	}

	if html, err := p.s.OuterHTML(SkillsSelector); err != nil {
		log.Printf("⚠ no skills list on %s: %v", url, err)
	} else {
		d.Skills = SkillsFromHTML(html)
	}
	return d, nil
}

// Apply clicks "Apply now" on the current detail page, waits for the
// application surface, then clicks "Submit". Either click failing aborts
// the attempt; there are no retries.
func (p *Pages) Apply() error {
	if err := p.s.ClickWhenReady(ApplyButtonXPath, p.cfg.SubmitDelay); err != nil {
		return fmt.Errorf("click 'Apply now': %w", err)
	}
	log.Printf("[apply] clicked 'Apply now'")

	if err := p.s.ClickWhenReady(SubmitButtonXPath, p.cfg.SubmitDelay); err != nil {
		return fmt.Errorf("click 'Submit': %w", err)
	}
	log.Printf("[apply] clicked 'Submit' to finalize the application")
	return nil
}

// SkillsFromHTML flattens the skills container's span fragments into a
// comma-joined string, dropping blanks.
func SkillsFromHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	var skills []string
	doc.Find("span").Each(func(_ int, sel *goquery.Selection) {
		if t := strings.TrimSpace(sel.Text()); t != "" {
			skills = append(skills, t)
		}
	})
	return strings.Join(skills, ", ")
}
