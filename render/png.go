// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/png.go
// Summary: Rasterises a cell buffer into an image with the 7x13 bitmap font.
// Usage: Used by the screenshot command and the HTTP and MCP screenshot
//   endpoints of headless sessions.

package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/framegrace/deskfolio/paint"
)

// Glyph cell size in pixels for basicfont.Face7x13.
const (
	GlyphW = 7
	GlyphH = 13
)

var (
	defaultFG = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	defaultBG = color.RGBA{A: 0xff}
)

// The bitmap font only covers Latin-1, so line art is mapped to ASCII.
var asciiFallback = map[rune]rune{
	'─': '-', '│': '|', '┌': '+', '┐': '+', '└': '+', '┘': '+',
	'╭': '+', '╮': '+', '╰': '+', '╯': '+', '┬': '+',
	'◢': '/', '□': 'o', '▫': 'o', '♫': 'd', '◉': 'o', '…': '~',
	'░': '.', '▚': ':',
}

func rgba(c tcell.Color, fallback color.RGBA) color.RGBA {
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return fallback
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}

// Image rasterises buf, one GlyphW x GlyphH block per cell.
func Image(buf *paint.Buffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buf.W*GlyphW, buf.H*GlyphH))
	face := basicfont.Face7x13
	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			cell := buf.Get(x, y)
			fg, bg, attrs := cell.Style.Decompose()
			fc, bc := rgba(fg, defaultFG), rgba(bg, defaultBG)
			if attrs&tcell.AttrReverse != 0 {
				fc, bc = bc, fc
			}
			box := image.Rect(x*GlyphW, y*GlyphH, (x+1)*GlyphW, (y+1)*GlyphH)
			ch := cell.Ch
			if ch == '█' {
				draw.Draw(img, box, image.NewUniform(fc), image.Point{}, draw.Src)
				continue
			}
			draw.Draw(img, box, image.NewUniform(bc), image.Point{}, draw.Src)
			if alt, ok := asciiFallback[ch]; ok {
				ch = alt
			}
			if ch == 0 || ch == ' ' {
				continue
			}
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(fc),
				Face: face,
				Dot:  fixed.P(x*GlyphW, y*GlyphH+face.Ascent),
			}
			d.DrawString(string(ch))
		}
	}
	return img
}

// EncodePNG writes buf to w as a PNG image.
func EncodePNG(w io.Writer, buf *paint.Buffer) error {
	return png.Encode(w, Image(buf))
}
