// Package prompt provides the synchronous stdin prompts used to resolve
// filters, the application mode, and per-candidate confirmations.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Line prints label and returns the trimmed response. EOF yields an empty
// string so callers fall through to their defaults.
func (p *Prompter) Line(label string) string {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

// YesNo asks a Y/n question. A blank response selects def.
func (p *Prompter) YesNo(label string, def bool) bool {
	suffix := " (Y/n): "
	if !def {
		suffix = " (y/N): "
	}
	answer := strings.ToLower(p.Line(label + suffix))
	if answer == "" {
		return def
	}
	return strings.HasPrefix(answer, "y")
}
