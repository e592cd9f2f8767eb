// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/terminal/terminal.go
// Summary: Simulated portfolio shell with a fixed command set.
// Notes: Commands never touch the host. Canned replies come from the
//   content catalog; "open" launches desktop windows through a callback.

package terminal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/deskfolio/internal/content"
	"github.com/framegrace/deskfolio/internal/theming"
	"github.com/framegrace/deskfolio/paint"
)

const (
	Prompt  = "visitor@deskfolio:~$"
	Welcome = "Welcome to Deskfolio Terminal v1.0.0\nType \"help\" to see available commands."
)

type Source interface {
	Command(ctx context.Context, name string) (string, error)
	Projects(ctx context.Context, featuredOnly bool) ([]content.Project, error)
}

type entry struct {
	command string
	output  string
}

// Panel is the terminal window content.
type Panel struct {
	src  Source
	pal  theming.Palette
	open func(id string) error
	now  func() time.Time

	history []entry
	input   []rune
	recall  []string
	cursor  int // index into recall while browsing, len(recall) otherwise
	scroll  int
}

// New creates a terminal. open may be nil, in which case "open" reports
// that windows cannot be launched.
func New(src Source, pal theming.Palette, open func(string) error, now func() time.Time) *Panel {
	if now == nil {
		now = time.Now
	}
	return &Panel{
		src:     src,
		pal:     pal,
		open:    open,
		now:     now,
		history: []entry{{output: Welcome}},
	}
}

// Input returns the pending command line.
func (p *Panel) Input() string { return string(p.input) }

// Transcript returns the session as plain text.
func (p *Panel) Transcript() string {
	var sb strings.Builder
	for _, e := range p.history {
		if e.command != "" || e.output == "" {
			sb.WriteString(Prompt + " " + e.command + "\n")
		}
		if e.output != "" {
			sb.WriteString(e.output + "\n")
		}
	}
	return sb.String()
}

// Exec runs line and records it in the transcript. It returns the output.
func (p *Panel) Exec(line string) string {
	line = strings.TrimSpace(line)
	if line != "" {
		p.recall = append(p.recall, line)
	}
	p.cursor = len(p.recall)
	p.scroll = 0

	cmd := strings.ToLower(line)
	if cmd == "clear" {
		p.history = nil
		return ""
	}
	out := p.run(line, cmd)
	p.history = append(p.history, entry{command: line, output: out})
	return out
}

func (p *Panel) run(line, cmd string) string {
	ctx := context.Background()
	switch {
	case cmd == "":
		return ""
	case cmd == "date":
		return p.now().Format("Mon Jan 02 2006 15:04:05 MST")
	case cmd == "projects":
		return p.projects(ctx)
	case cmd == "echo" || strings.HasPrefix(cmd, "echo "):
		return strings.TrimSpace(line[len("echo"):])
	case strings.HasPrefix(cmd, "open "):
		id := strings.TrimSpace(cmd[len("open "):])
		if p.open == nil {
			return "Windows cannot be opened from here."
		}
		if err := p.open(id); err != nil {
			return fmt.Sprintf("Cannot open %q: %v", id, err)
		}
		return fmt.Sprintf("Opening %s window...", id)
	}

	out, err := p.src.Command(ctx, cmd)
	if errors.Is(err, content.ErrNotFound) {
		return fmt.Sprintf("Command not found: %s. Type \"help\" for available commands.", line)
	}
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return out
}

func (p *Panel) projects(ctx context.Context) string {
	list, err := p.src.Projects(ctx, false)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	var sb strings.Builder
	sb.WriteString("Projects\n---------------\n")
	for i, pr := range list {
		fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, pr.Name, strings.Join(pr.Technologies, ", "))
	}
	sb.WriteString("\nType \"open projects\" to open the Projects window.")
	return sb.String()
}

func (p *Panel) HandleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		p.Exec(string(p.input))
		p.input = p.input[:0]
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(p.input); n > 0 {
			p.input = p.input[:n-1]
		}
	case tcell.KeyCtrlL:
		p.history = nil
	case tcell.KeyCtrlU:
		p.input = p.input[:0]
	case tcell.KeyUp:
		if p.cursor > 0 {
			p.cursor--
			p.input = []rune(p.recall[p.cursor])
		}
	case tcell.KeyDown:
		switch {
		case p.cursor < len(p.recall)-1:
			p.cursor++
			p.input = []rune(p.recall[p.cursor])
		case p.cursor == len(p.recall)-1:
			p.cursor++
			p.input = p.input[:0]
		}
	case tcell.KeyPgUp:
		p.Scroll(-5)
	case tcell.KeyPgDn:
		p.Scroll(5)
	case tcell.KeyRune:
		p.input = append(p.input, ev.Rune())
	}
}

// Scroll moves back into the transcript; negative values look further back.
func (p *Panel) Scroll(delta int) {
	p.scroll = max(p.scroll-delta, 0)
}

func (p *Panel) Draw(buf *paint.Buffer, area paint.Rect) {
	if area.Empty() {
		return
	}
	text := p.pal.Style("terminal.fg", "terminal")
	prompt := p.pal.Style("prompt", "terminal")
	buf.Fill(area, ' ', text)

	type row struct {
		spans []paint.Span
	}
	var rows []row
	promptRow := func(cmd string) row {
		return row{spans: []paint.Span{{Text: Prompt + " ", Style: prompt}, {Text: cmd, Style: text}}}
	}
	for _, e := range p.history {
		if e.command != "" || e.output == "" {
			rows = append(rows, promptRow(e.command))
		}
		if e.output == "" {
			continue
		}
		for _, l := range hardWrap(e.output, area.W) {
			rows = append(rows, row{spans: []paint.Span{{Text: l, Style: text}}})
		}
	}
	live := promptRow(string(p.input))
	live.spans = append(live.spans, paint.Span{Text: "█", Style: text})
	rows = append(rows, live)

	p.scroll = min(p.scroll, max(len(rows)-area.H, 0))
	start := max(len(rows)-area.H-p.scroll, 0)
	for i := 0; i < area.H && start+i < len(rows); i++ {
		x := area.X
		for _, sp := range rows[start+i].spans {
			left := area.X + area.W - x
			if left <= 0 {
				break
			}
			x += buf.Text(x, area.Y+i, sp.Text, sp.Style, left)
		}
	}
}

// hardWrap splits text at newlines and then every w columns, keeping
// leading whitespace intact.
func hardWrap(text string, w int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		for runewidth.StringWidth(line) > w {
			head := runewidth.Truncate(line, w, "")
			if head == "" {
				break
			}
			out = append(out, head)
			line = line[len(head):]
		}
		out = append(out, line)
	}
	return out
}
