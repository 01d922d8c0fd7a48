package main

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ---------------------------------------------------------------------------
// Canvas — a fixed-size character grid that blocks are painted onto
// ---------------------------------------------------------------------------

// canvas is the wall's drawing surface. Cards are painted in deck order, so
// a later card overdraws an earlier one where their boxes overlap mid-flight.
type canvas struct {
	width  int
	height int
	lines  []string
}

func newCanvas(width, height int) *canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := make([]string, height)
	blank := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = blank
	}
	return &canvas{width: width, height: height, lines: lines}
}

// paint composites block onto the canvas with its top-left corner at (x, y).
// Rows outside the canvas are dropped; columns are spliced width-aware so
// styled (ANSI-escaped) content keeps its alignment.
func (c *canvas) paint(block string, x, y int) {
	blockLines := splitLines(block)
	blockWidth := maxLineWidth(blockLines)
	for i, line := range blockLines {
		row := y + i
		if row < 0 || row >= c.height {
			continue
		}
		painted := padRight(line, blockWidth)
		drawX := x
		if drawX < 0 {
			// Block hangs off the left edge: drop the hidden columns.
			painted = ansi.TruncateLeft(painted, -drawX, "")
			drawX = 0
		}
		target := c.lines[row]
		left := ansi.Truncate(target, drawX, "")
		leftWidth := ansi.StringWidth(left)
		if leftWidth < drawX {
			left += strings.Repeat(" ", drawX-leftWidth)
		}

		pos := drawX + ansi.StringWidth(painted)
		right := ""
		if c.width > 0 {
			right = ansi.TruncateLeft(target, pos, "")
			rightWidth := ansi.StringWidth(right)
			gap := c.width - pos - rightWidth
			if gap > 0 {
				right = strings.Repeat(" ", gap) + right
			}
		}

		c.lines[row] = ansi.Truncate(left+painted+right, c.width, "")
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// ---------------------------------------------------------------------------
// String utilities
// ---------------------------------------------------------------------------

// splitLines splits a string on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// maxLineWidth returns the visual width of the widest line.
func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate shortens s to width cells, appending an ellipsis if truncated.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
