// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package spotify is a static music player mock-up. It keeps play state
// and a track cursor but never decodes or plays audio.
package spotify

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/deskfolio/internal/content"
	"github.com/framegrace/deskfolio/internal/theming"
	"github.com/framegrace/deskfolio/paint"
)

type Source interface {
	Tracks(ctx context.Context) ([]content.Track, error)
}

// Panel shows the current track, transport controls and the playlist.
// Space toggles play, n and p step through the playlist, +/- set volume
// and m mutes.
type Panel struct {
	tracks  []content.Track
	current int
	playing bool
	volume  int
	muted   bool
	pal     theming.Palette
}

func New(ctx context.Context, src Source, pal theming.Palette) (*Panel, error) {
	tracks, err := src.Tracks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tracks: %w", err)
	}
	return &Panel{tracks: tracks, volume: 70, pal: pal}, nil
}

func (p *Panel) Current() (content.Track, bool) {
	if len(p.tracks) == 0 {
		return content.Track{}, false
	}
	return p.tracks[p.current], true
}

func (p *Panel) Playing() bool { return p.playing }
func (p *Panel) Volume() int   { return p.volume }

func (p *Panel) Next() {
	if len(p.tracks) > 0 {
		p.current = (p.current + 1) % len(p.tracks)
	}
}

func (p *Panel) Prev() {
	if len(p.tracks) > 0 {
		p.current = (p.current - 1 + len(p.tracks)) % len(p.tracks)
	}
}

func (p *Panel) HandleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRight:
		p.Next()
	case tcell.KeyLeft:
		p.Prev()
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			p.playing = !p.playing
		case 'n':
			p.Next()
		case 'p':
			p.Prev()
		case 'm':
			p.muted = !p.muted
		case '+', '=':
			p.volume = min(p.volume+10, 100)
		case '-':
			p.volume = max(p.volume-10, 0)
		}
	}
}

func (p *Panel) Draw(buf *paint.Buffer, area paint.Rect) {
	if area.Empty() {
		return
	}
	base := p.pal.Style("player.fg", "player")
	muted := p.pal.Style("muted", "player")
	hi := p.pal.Style("player.hi", "player")
	buf.Fill(area, ' ', base)

	t, ok := p.Current()
	if !ok {
		paint.Placeholder{Message: "No tracks", Style: muted}.Draw(buf, area)
		return
	}

	y := area.Y
	line := func(s string, st tcell.Style) {
		if y < area.Y+area.H {
			buf.Text(area.X+1, y, paint.Truncate(s, area.W-2), st, area.W-2)
		}
		y++
	}

	line("♪ Now Playing", hi.Bold(true))
	y++
	line(t.Title, base.Bold(true))
	line(t.Artist+" · "+t.Album, muted)
	y++

	barW := max(area.W-16, 4)
	line(fmt.Sprintf("0:00 %s %s", strings.Repeat("─", barW), clock(t.Seconds)), muted)

	play := "▶"
	if p.playing {
		play = "❚❚"
	}
	line("   ⏮   "+play+"   ⏭", hi)
	vol := "🔊"
	if p.muted {
		vol = "🔇"
	}
	line(fmt.Sprintf("%s %3d%%", vol, p.volume), muted)
	y++

	line("Playlist", base.Bold(true))
	for i, tr := range p.tracks {
		st := base
		marker := "  "
		if i == p.current {
			st = hi
			marker = "▸ "
		}
		line(fmt.Sprintf("%s%-24s %s", marker, tr.Title, clock(tr.Seconds)), st)
	}
}

func clock(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
