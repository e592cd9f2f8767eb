// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package paint

import "github.com/gdamore/tcell/v2"

// Panel is window content. The window manager stores panels as opaque
// handles; only the compositor calls Draw.
type Panel interface {
	// Draw renders the panel into area of buf. area is already clipped to
	// the window body.
	Draw(buf *Buffer, area Rect)
}

// KeyHandler is implemented by panels that react to keys while focused.
type KeyHandler interface {
	HandleKey(ev *tcell.EventKey)
}

// Scroller is implemented by panels with more content than fits.
type Scroller interface {
	Scroll(delta int)
}

// Placeholder draws a centred message. It stands in for content that is
// missing or cannot be drawn.
type Placeholder struct {
	Message string
	Style   tcell.Style
}

func (p Placeholder) Draw(buf *Buffer, area Rect) {
	if area.Empty() {
		return
	}
	buf.Fill(area, ' ', p.Style)
	msg := Truncate(p.Message, area.W)
	x := area.X + (area.W-len([]rune(msg)))/2
	buf.Text(x, area.Y+area.H/2, msg, p.Style, area.W)
}
