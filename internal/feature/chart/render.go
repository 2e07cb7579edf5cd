// Package chart renders a finished CandleTable in the terminal: a candlestick
// chart of open/high/low/close and a line chart of high against datetime.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pricehistory/internal/feature/pricehistory/domain/entity"
)

var (
	bullStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#26a641"))
	bearStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e05c5c"))
	wickStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	lineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff"))
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#aaaaaa"))
)

const (
	yAxisWidth  = 11 // "  12345.67 │"
	labelEvery  = 10
	minHeight   = 3
	noDataLabel = "no data"
)

// Size is the drawing area in terminal cells, axes included.
type Size struct {
	Width  int
	Height int
}

// Candlesticks draws one two-cell column per candle, newest on the right.
// Candles that do not fit the width are dropped from the left.
func Candlesticks(title string, table entity.CandleTable, size Size) string {
	candles := visible(table.Candles, size.Width, 2)
	if len(candles) == 0 {
		return titleStyle.Render(title) + "\n" + noDataLabel + "\n"
	}
	h := plotHeight(size)

	hi, lo := priceRange(candles, func(c entity.Candle) (float64, float64) { return c.High, c.Low })
	grid := newGrid(h, len(candles)*2)
	for i, c := range candles {
		paintCandle(grid, c, i*2, h, hi, lo)
	}
	return frame(title, grid, candles, 2, hi, lo)
}

// Line draws the high of each candle against its datetime, one cell per candle.
func Line(title string, table entity.CandleTable, size Size) string {
	candles := visible(table.Candles, size.Width, 1)
	if len(candles) == 0 {
		return titleStyle.Render(title) + "\n" + noDataLabel + "\n"
	}
	h := plotHeight(size)

	hi, lo := priceRange(candles, func(c entity.Candle) (float64, float64) { return c.High, c.High })
	grid := newGrid(h, len(candles))
	prev := -1
	for i, c := range candles {
		row := priceToRow(c.High, h, hi, lo)
		// 前の点との間を縦線でつなぐ
		if prev >= 0 && abs(row-prev) > 1 {
			from, to := prev, row
			if from > to {
				from, to = to, from
			}
			for r := from + 1; r < to; r++ {
				grid[r][i] = lineStyle.Render("│")
			}
		}
		grid[row][i] = lineStyle.Render("•")
		prev = row
	}
	return frame(title, grid, candles, 1, hi, lo)
}

func visible(candles []entity.Candle, width, cellWidth int) []entity.Candle {
	maxCols := (width - yAxisWidth) / cellWidth
	if maxCols < 1 {
		maxCols = 1
	}
	if len(candles) > maxCols {
		return candles[len(candles)-maxCols:]
	}
	return candles
}

// plotHeight reserves one title line, one axis line and one label line.
func plotHeight(size Size) int {
	h := size.Height - 3
	if h < minHeight {
		h = minHeight
	}
	return h
}

func newGrid(rows, cols int) [][]string {
	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, cols)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}
	return grid
}

// frame adds the title, y-axis labels, x-axis and time labels around grid.
func frame(title string, grid [][]string, candles []entity.Candle, cellWidth int, hi, lo float64) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')

	h := len(grid)
	for row := 0; row < h; row++ {
		b.WriteString(axisStyle.Render(fmt.Sprintf("%9.2f │", rowToPrice(row, h, hi, lo))))
		b.WriteString(strings.Join(grid[row], ""))
		b.WriteByte('\n')
	}

	cols := len(candles) * cellWidth
	b.WriteString(axisStyle.Render(strings.Repeat("─", yAxisWidth) + strings.Repeat("─", cols)))
	b.WriteByte('\n')

	labels := []byte(strings.Repeat(" ", cols))
	next := 0
	for i, c := range candles {
		x := i * cellWidth
		if i%labelEvery != 0 || x < next {
			continue
		}
		l := c.Datetime.Format("01/02 15:04")
		if x+len(l) > cols {
			break
		}
		copy(labels[x:], l)
		next = x + len(l) + 1
	}
	b.WriteString(strings.Repeat(" ", yAxisWidth))
	b.WriteString(strings.TrimRight(string(labels), " "))
	b.WriteByte('\n')

	return b.String()
}

// paintCandle paints one candle into the grid at column x (2 wide).
func paintCandle(grid [][]string, c entity.Candle, x, h int, hi, lo float64) {
	style := bullStyle
	if c.Close < c.Open {
		style = bearStyle
	}

	bodyTop := priceToRow(math.Max(c.Open, c.Close), h, hi, lo)
	bodyBot := priceToRow(math.Min(c.Open, c.Close), h, hi, lo)
	wickTop := priceToRow(c.High, h, hi, lo)
	wickBot := priceToRow(c.Low, h, hi, lo)

	for row := 0; row < h; row++ {
		switch {
		case row >= bodyTop && row <= bodyBot:
			grid[row][x] = style.Render("█")
			grid[row][x+1] = style.Render("█")
		case row >= wickTop && row <= wickBot:
			grid[row][x] = wickStyle.Render("│")
		}
	}
}

// priceToRow converts a price to a grid row (0 = top = high).
func priceToRow(price float64, h int, hi, lo float64) int {
	if hi == lo {
		return h / 2
	}
	r := int(math.Round((hi - price) / (hi - lo) * float64(h-1)))
	if r < 0 {
		r = 0
	}
	if r >= h {
		r = h - 1
	}
	return r
}

// rowToPrice is the inverse of priceToRow.
func rowToPrice(row, h int, hi, lo float64) float64 {
	if h <= 1 {
		return hi
	}
	return hi - float64(row)/float64(h-1)*(hi-lo)
}

func priceRange(candles []entity.Candle, bounds func(entity.Candle) (float64, float64)) (hi, lo float64) {
	hi, lo = -math.MaxFloat64, math.MaxFloat64
	for _, c := range candles {
		h, l := bounds(c)
		hi = math.Max(hi, h)
		lo = math.Min(lo, l)
	}
	return hi, lo
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
