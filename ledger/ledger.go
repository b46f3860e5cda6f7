// Package ledger persists the set of job URLs this tool has already
// processed, making reruns idempotent.
package ledger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// Ledger is a durable set of detail URLs. Every Record rewrites the whole
// file before returning, so after any crash the store holds exactly the
// candidates processed so far. Entries are never removed.
type Ledger struct {
	path  string
	lock  *flock.Flock
	seen  map[string]struct{}
	order []string // insertion order keeps rewrites deterministic
}

// Open loads the ledger at path, creating an empty one when the file does
// not exist. The file is advisory-locked for the lifetime of the Ledger so
// two runs cannot interleave rewrites; a held lock is an error, not a wait.
func Open(path string) (*Ledger, error) {
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock ledger %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("ledger %s is in use by another run", path)
	}

	l := &Ledger{
		path: path,
		lock: lock,
		seen: make(map[string]struct{}),
	}
	if err := l.load(); err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	return l, nil
}

func (l *Ledger) load() error {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open ledger %s: %w", l.path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		url := strings.TrimSpace(sc.Text())
		if url == "" {
			continue
		}
		if _, ok := l.seen[url]; !ok {
			l.seen[url] = struct{}{}
			l.order = append(l.order, url)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read ledger %s: %w", l.path, err)
	}
	return nil
}

// Contains reports whether url has been processed in any past or current run.
func (l *Ledger) Contains(url string) bool {
	_, ok := l.seen[url]
	return ok
}

// Record adds url to the set and persists the entire set before returning.
func (l *Ledger) Record(url string) error {
	if _, ok := l.seen[url]; !ok {
		l.seen[url] = struct{}{}
		l.order = append(l.order, url)
	}
	return l.flush()
}

// Len returns the number of recorded URLs.
func (l *Ledger) Len() int {
	return len(l.order)
}

// Close releases the advisory lock.
func (l *Ledger) Close() error {
	return l.lock.Unlock()
}

// flush rewrites the whole file via temp+rename so an interrupted write
// never leaves a truncated ledger behind.
func (l *Ledger) flush() error {
	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, ".ledger-*")
	if err != nil {
		return fmt.Errorf("write ledger %s: %w", l.path, err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, url := range l.order {
		fmt.Fprintln(w, url)
	}
	if err = w.Flush(); err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write ledger %s: %w", l.path, err)
	}

	if err := os.Rename(tmpName, l.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace ledger %s: %w", l.path, err)
	}
	return nil
}
