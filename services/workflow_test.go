package services

import (
	"errors"
	"testing"

	"github.com/benyamin-persia/dice-automation-apply/models"
)

type fakeVisitor struct {
	details  map[string]models.Detail
	navErrOn map[string]bool
	applyErr error

	visited []string
	applies int
}

func (f *fakeVisitor) Visit(url string) (models.Detail, error) {
	f.visited = append(f.visited, url)
	if f.navErrOn[url] {
		return models.Detail{}, errors.New("net::ERR_CONNECTION_RESET")
	}
	return f.details[url], nil
}

func (f *fakeVisitor) Apply() error {
	f.applies++
	return f.applyErr
}

type memLedger struct {
	seen     map[string]struct{}
	recorded []string
}

func newMemLedger(urls ...string) *memLedger {
	l := &memLedger{seen: make(map[string]struct{})}
	for _, u := range urls {
		l.seen[u] = struct{}{}
	}
	return l
}

func (l *memLedger) Contains(url string) bool {
	_, ok := l.seen[url]
	return ok
}

func (l *memLedger) Record(url string) error {
	l.seen[url] = struct{}{}
	l.recorded = append(l.recorded, url)
	return nil
}

// fatalConfirmer fails the test when the workflow prompts at all.
type fatalConfirmer struct{ t *testing.T }

func (c fatalConfirmer) Confirm(string) bool {
	c.t.Fatal("the operator must not be prompted in this mode")
	return false
}

type fixedConfirmer bool

func (c fixedConfirmer) Confirm(string) bool { return bool(c) }

func candidates(urls ...string) []models.Candidate {
	out := make([]models.Candidate, len(urls))
	for i, u := range urls {
		out[i] = models.Candidate{ID: u, DetailURL: u}
	}
	return out
}

func TestRunAutoAppliesAndSkipsLedgered(t *testing.T) {
	visitor := &fakeVisitor{details: map[string]models.Detail{
		"A": {Title: "QA I", Skills: "Selenium"},
		"C": {Title: "QA II", Skills: "JIRA"},
	}}
	led := newMemLedger("B")

	wf := NewWorkflow(visitor, led, models.ModeAuto, fatalConfirmer{t})
	result := wf.Run(candidates("A", "B", "C"))

	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(result.Records))
	}
	if result.Records[0].DetailURL != "A" || result.Records[1].DetailURL != "C" {
		t.Errorf("record order: %+v", result.Records)
	}
	for _, r := range result.Records {
		if !r.Applied {
			t.Errorf("record %s: applied = false, want true", r.DetailURL)
		}
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	for _, url := range []string{"A", "B", "C"} {
		if !led.Contains(url) {
			t.Errorf("ledger missing %s", url)
		}
	}
	// B must never be visited
	for _, v := range visitor.visited {
		if v == "B" {
			t.Error("ledgered candidate was visited")
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	visitor := &fakeVisitor{details: map[string]models.Detail{
		"A": {}, "B": {},
	}}
	led := newMemLedger()

	wf := NewWorkflow(visitor, led, models.ModeAuto, fatalConfirmer{t})
	first := wf.Run(candidates("A", "B"))
	if len(first.Records) != 2 {
		t.Fatalf("first run: %d records, want 2", len(first.Records))
	}

	led.recorded = nil
	second := wf.Run(candidates("A", "B"))
	if len(second.Records) != 0 {
		t.Errorf("second run produced %d records, want 0", len(second.Records))
	}
	if len(led.recorded) != 0 {
		t.Errorf("second run wrote %d ledger entries, want 0", len(led.recorded))
	}
	if second.Skipped != 2 {
		t.Errorf("second run Skipped = %d, want 2", second.Skipped)
	}
}

func TestRunFailedSubmissionStillRecorded(t *testing.T) {
	visitor := &fakeVisitor{
		details:  map[string]models.Detail{"A": {Title: "QA"}},
		applyErr: errors.New("click 'Submit': browser: element not found"),
	}
	led := newMemLedger()

	wf := NewWorkflow(visitor, led, models.ModeAuto, fatalConfirmer{t})
	result := wf.Run(candidates("A"))

	if result.Err != nil {
		t.Fatalf("a failed submission is not a run failure: %v", result.Err)
	}
	if len(result.Records) != 1 || result.Records[0].Applied {
		t.Fatalf("want one record with applied=false, got %+v", result.Records)
	}
	if !led.Contains("A") {
		t.Error("candidate must be ledgered even when the submission fails")
	}
}

func TestRunNavigationFailureStopsRemaining(t *testing.T) {
	visitor := &fakeVisitor{
		details:  map[string]models.Detail{"A": {}, "C": {}},
		navErrOn: map[string]bool{"B": true},
	}
	led := newMemLedger()

	wf := NewWorkflow(visitor, led, models.ModeAuto, fatalConfirmer{t})
	result := wf.Run(candidates("A", "B", "C"))

	if result.Err == nil {
		t.Fatal("expected the navigation failure to surface")
	}
	if len(result.Records) != 1 || result.Records[0].DetailURL != "A" {
		t.Fatalf("accumulated records must survive: %+v", result.Records)
	}
	if led.Contains("B") || led.Contains("C") {
		t.Error("candidates after the failure must not be ledgered")
	}
	for _, v := range visitor.visited {
		if v == "C" {
			t.Error("processing must stop at the failed candidate")
		}
	}
}

func TestRunSupervisedDecline(t *testing.T) {
	visitor := &fakeVisitor{details: map[string]models.Detail{"A": {Title: "QA"}}}
	led := newMemLedger()

	wf := NewWorkflow(visitor, led, models.ModeSupervised, fixedConfirmer(false))
	result := wf.Run(candidates("A"))

	if visitor.applies != 0 {
		t.Error("declined candidate must not be applied to")
	}
	if len(result.Records) != 1 || result.Records[0].Applied {
		t.Fatalf("declined candidate still gets a row with applied=no: %+v", result.Records)
	}
	if !led.Contains("A") {
		t.Error("declined candidate must still be ledgered")
	}
}

func TestRunSupervisedAccept(t *testing.T) {
	visitor := &fakeVisitor{details: map[string]models.Detail{"A": {Title: "QA"}}}
	wf := NewWorkflow(visitor, newMemLedger(), models.ModeSupervised, fixedConfirmer(true))

	result := wf.Run(candidates("A"))
	if visitor.applies != 1 {
		t.Errorf("applies = %d, want 1", visitor.applies)
	}
	if !result.Records[0].Applied {
		t.Error("accepted candidate should be applied")
	}
}

func TestRunUnknownModeNeverAppliesNorPrompts(t *testing.T) {
	visitor := &fakeVisitor{details: map[string]models.Detail{"A": {Title: "QA"}}}
	led := newMemLedger()

	wf := NewWorkflow(visitor, led, models.Mode("5"), fatalConfirmer{t})
	result := wf.Run(candidates("A"))

	if visitor.applies != 0 {
		t.Error("unknown mode must not apply")
	}
	if len(result.Records) != 1 || result.Records[0].Applied {
		t.Fatalf("unknown mode still records the candidate with applied=no: %+v", result.Records)
	}
	if !led.Contains("A") {
		t.Error("unknown mode still ledgers the candidate")
	}
}
