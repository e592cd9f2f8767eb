// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package projects

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"

	"github.com/framegrace/deskfolio/paint"
)

const (
	defaultStyleName = "github"
	tabWidth         = 4
)

// DetectLanguage names the language of a sample from its file name and
// contents. It returns "" when nothing matches.
func DetectLanguage(filename, code string) string {
	return enry.GetLanguage(filename, []byte(code))
}

// lexerFor picks a lexer by detected language, then by file name, then by
// content analysis.
func lexerFor(language, filename, code string) chroma.Lexer {
	if language != "" {
		if l := lexers.Get(language); l != nil {
			return l
		}
	}
	if l := lexers.Match(filename); l != nil {
		return l
	}
	if l := lexers.Analyse(code); l != nil {
		return l
	}
	return lexers.Fallback
}

// Highlight tokenizes code and returns one row of spans per source line.
// base supplies the background and the colour of plain text.
func Highlight(language, filename, code string, base tcell.Style) [][]paint.Span {
	code = strings.ReplaceAll(strings.TrimRight(code, "\n"), "\t", strings.Repeat(" ", tabWidth))
	style := styles.Get(defaultStyleName)
	lexer := chroma.Coalesce(lexerFor(language, filename, code))

	tokens, err := chroma.Tokenise(lexer, nil, code)
	if err != nil {
		return plainRows(code, base)
	}

	rows := [][]paint.Span{nil}
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		st := tokenStyle(style.Get(tok.Type), base)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				rows = append(rows, nil)
			}
			if part == "" {
				continue
			}
			last := len(rows) - 1
			rows[last] = append(rows[last], paint.Span{Text: part, Style: st})
		}
	}
	if n := len(rows); n > 1 && len(rows[n-1]) == 0 {
		rows = rows[:n-1]
	}
	return rows
}

func tokenStyle(entry chroma.StyleEntry, base tcell.Style) tcell.Style {
	st := base
	if entry.Colour.IsSet() {
		st = st.Foreground(tcell.NewRGBColor(int32(entry.Colour.Red()), int32(entry.Colour.Green()), int32(entry.Colour.Blue())))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

func plainRows(code string, base tcell.Style) [][]paint.Span {
	var rows [][]paint.Span
	for _, line := range strings.Split(code, "\n") {
		rows = append(rows, []paint.Span{{Text: line, Style: base}})
	}
	return rows
}
