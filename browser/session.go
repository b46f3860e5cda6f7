// Package browser wraps chromedp in the small capability surface the rest
// of the tool consumes: navigate, scan, lookup with timeout, click, type.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"

	"github.com/benyamin-persia/dice-automation-apply/config"
)

// ErrNotFound reports that a selector matched nothing within its timeout.
// Callers branch on it with errors.Is rather than treating it as fatal.
var ErrNotFound = errors.New("browser: element not found")

// Node is one element captured by a Nodes scan.
type Node struct {
	Text string `json:"text"`
	Attr string `json:"attr"`
}

// Session owns one Chrome tab for the whole run. It is not safe for
// concurrent use; the tool is strictly sequential anyway.
type Session struct {
	ctx         context.Context
	limiter     *rate.Limiter
	findTimeout time.Duration
}

// New starts a Chrome process with one tab and returns the session plus a
// cleanup function that shuts the browser down.
func New(parent context.Context, cfg config.Config) (*Session, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1440, 900),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:         tabCtx,
		limiter:     rate.NewLimiter(rate.Limit(cfg.NavPerSecond), cfg.NavBurst),
		findTimeout: cfg.FindTimeout,
	}
	return s, func() {
		cancelTab()
		cancelAlloc()
	}
}

// Navigate loads url and sleeps for settle to let the page render. The
// rate limiter throttles how fast consecutive navigations may fire.
func (s *Session) Navigate(url string, settle time.Duration) error {
	if err := s.limiter.Wait(s.ctx); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := chromedp.Run(s.ctx,
		chromedp.Navigate(url),
		chromedp.Sleep(settle),
	); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// Nodes returns every element matching selector, in document order, with
// its display text and the value of attr. An empty page yields an empty
// slice, not an error.
func (s *Session) Nodes(selector, attr string) ([]Node, error) {
	js := fmt.Sprintf(`
		(() => Array.from(document.querySelectorAll(%q)).map(el => ({
			text: el.textContent || '',
			attr: el.getAttribute(%q) || '',
		})))();
	`, selector, attr)

	var nodes []Node
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(js, &nodes)); err != nil {
		return nil, fmt.Errorf("scan %q: %w", selector, err)
	}
	return nodes, nil
}

// Text waits for selector and returns its text. ErrNotFound when the
// element does not appear within the find timeout.
func (s *Session) Text(selector string) (string, error) {
	var out string
	err := s.lookup(
		chromedp.WaitReady(selector, chromedp.ByQuery),
		chromedp.Text(selector, &out, chromedp.ByQuery),
	)
	return out, err
}

// OuterHTML waits for selector and returns its outer HTML.
func (s *Session) OuterHTML(selector string) (string, error) {
	var out string
	err := s.lookup(
		chromedp.WaitReady(selector, chromedp.ByQuery),
		chromedp.OuterHTML(selector, &out, chromedp.ByQuery),
	)
	return out, err
}

// ClickWhenReady waits for the XPath-addressed control to become visible,
// clicks it, then sleeps for settle. ErrNotFound when the control never
// becomes clickable within the find timeout.
func (s *Session) ClickWhenReady(xpath string, settle time.Duration) error {
	if err := s.lookup(
		chromedp.WaitVisible(xpath, chromedp.BySearch),
		chromedp.Click(xpath, chromedp.BySearch),
	); err != nil {
		return err
	}
	return chromedp.Run(s.ctx, chromedp.Sleep(settle))
}

// TypeEnter waits for the input field, types value and presses Enter.
func (s *Session) TypeEnter(selector, value string) error {
	return s.lookup(
		chromedp.WaitReady(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, value+"\r", chromedp.ByQuery),
	)
}

// WaitPresent blocks until selector appears, or ErrNotFound on timeout.
func (s *Session) WaitPresent(selector string) error {
	return s.lookup(chromedp.WaitReady(selector, chromedp.ByQuery))
}

// lookup runs actions under the find timeout and folds a deadline hit into
// ErrNotFound so call sites can branch instead of propagating.
func (s *Session) lookup(actions ...chromedp.Action) error {
	tctx, cancel := context.WithTimeout(s.ctx, s.findTimeout)
	defer cancel()
	if err := chromedp.Run(tctx, actions...); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
