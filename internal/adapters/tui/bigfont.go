package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Seven-segment layout:
//
//	 aaa
//	f   b
//	 ggg
//	e   c
//	 ddd
const (
	segA = 1 << iota
	segB
	segC
	segD
	segE
	segF
	segG
)

var segments = map[rune]int{
	'0': segA | segB | segC | segD | segE | segF,
	'1': segB | segC,
	'2': segA | segB | segG | segE | segD,
	'3': segA | segB | segG | segC | segD,
	'4': segF | segG | segB | segC,
	'5': segA | segF | segG | segC | segD,
	'6': segA | segF | segG | segE | segC | segD,
	'7': segA | segB | segC,
	'8': segA | segB | segC | segD | segE | segF | segG,
	'9': segA | segB | segC | segD | segF | segG,
}

const (
	glyphRows   = 5
	block       = "█"
	blank       = " "
	minBigWidth = 40
)

// glyph draws one digit four cells wide.
func glyph(s int) [glyphRows]string {
	on := func(mask int) string {
		if s&mask != 0 {
			return block
		}
		return blank
	}
	bar := func(mask, left, right int) string {
		if s&mask != 0 {
			return strings.Repeat(block, 4)
		}
		return on(left) + blank + blank + on(right)
	}
	return [glyphRows]string{
		bar(segA, segF, segB),
		on(segF) + blank + blank + on(segB),
		bar(segG, segF|segE, segB|segC),
		on(segE) + blank + blank + on(segC),
		bar(segD, segE, segC),
	}
}

var colonGlyph = [glyphRows]string{blank, block, blank, block, blank}

// renderBigTime draws an mm:ss clock in large digits. Terminals narrower
// than 40 columns get a single bold line.
func renderBigTime(clock string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < minBigWidth {
		return style.Render(clock)
	}

	var rows [glyphRows][]string
	for _, ch := range clock {
		var g [glyphRows]string
		switch {
		case ch == ':':
			g = colonGlyph
		case segments[ch] != 0:
			g = glyph(segments[ch])
		default:
			continue
		}
		for i := range rows {
			rows[i] = append(rows[i], g[i])
		}
	}

	out := make([]string, glyphRows)
	for i, parts := range rows {
		out[i] = style.Render(strings.Join(parts, " "))
	}
	return strings.Join(out, "\n")
}
