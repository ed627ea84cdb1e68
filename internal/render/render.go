// Package render writes statistic tables and charts as terminal text. It is
// a thin presentation layer: all numbers come from the stats package.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"github.com/ktrang/chatstat/internal/parse"
	"github.com/ktrang/chatstat/internal/stats"
)

const (
	colorReset = "\033[0m"
	colorDim   = "\033[2m"
	colorBar   = "\033[36m" // cyan bars
)

// heat is a cold-to-hot 256-color ramp for heatmap cells.
var heat = []string{
	"\033[38;5;240m", // near-zero: gray
	"\033[38;5;30m",
	"\033[38;5;37m",
	"\033[38;5;178m",
	"\033[38;5;208m",
	"\033[1;38;5;196m", // hottest: bold red
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	return table
}

// UserTable writes the per-user counts ranked by activity.
func UserTable(w io.Writer, users []stats.UserCount) {
	table := newTable(w)
	table.SetHeader([]string{"Sender", "Messages", "Share", "Words", "Media", "Emoji", "Links"})
	for _, u := range users {
		table.Append([]string{
			u.Sender,
			strconv.Itoa(u.Messages),
			fmt.Sprintf("%.1f%%", u.Percent),
			strconv.Itoa(u.Words),
			strconv.Itoa(u.Media),
			strconv.Itoa(u.Emojis),
			strconv.Itoa(u.Links),
		})
	}
	table.Render()
}

// FreqTable writes a ranked token table, at most top rows (0 = all).
func FreqTable(w io.Writer, header string, entries []stats.Freq, top int) {
	if top > 0 && len(entries) > top {
		entries = entries[:top]
	}
	table := newTable(w)
	table.SetHeader([]string{"#", header, "Count"})
	for i, e := range entries {
		table.Append([]string{strconv.Itoa(i + 1), e.Token, strconv.Itoa(e.Count)})
	}
	table.Render()
}

// MonthlyBars writes one bar per month, scaled so the busiest month fills
// width columns.
func MonthlyBars(w io.Writer, tl []stats.MonthCount, width int) {
	max := 0
	for _, m := range tl {
		if m.Count > max {
			max = m.Count
		}
	}
	for _, m := range tl {
		label := fmt.Sprintf("%s %d", m.Month.String()[:3], m.Year)
		writeBar(w, label, m.Count, max, width)
	}
}

// DailyBars writes one bar per calendar day.
func DailyBars(w io.Writer, tl []stats.DayCount, width int) {
	max := 0
	for _, d := range tl {
		if d.Count > max {
			max = d.Count
		}
	}
	for _, d := range tl {
		writeBar(w, d.Date.Format("2006-01-02"), d.Count, max, width)
	}
}

func writeBar(w io.Writer, label string, count, max, width int) {
	if width <= 0 {
		width = 40
	}
	n := 0
	if max > 0 {
		n = count * width / max
	}
	if count > 0 && n == 0 {
		n = 1 // visible trace for small non-zero counts
	}
	fmt.Fprintf(w, "%s %s%5d%s %s%s%s\n",
		runewidth.FillRight(label, 10),
		colorDim, count, colorReset,
		colorBar, strings.Repeat("█", n), colorReset)
}

// HeatmapGrid writes the 7x24 day-of-week x hour grid with a color ramp
// scaled to the busiest cell.
func HeatmapGrid(w io.Writer, grid [7][24]int) {
	max := 0
	for _, row := range grid {
		for _, c := range row {
			if c > max {
				max = c
			}
		}
	}

	fmt.Fprint(w, strings.Repeat(" ", 10))
	for h := 0; h < 24; h++ {
		fmt.Fprintf(w, "%s%4d%s", colorDim, h, colorReset)
	}
	fmt.Fprintln(w)

	for i, row := range grid {
		fmt.Fprint(w, runewidth.FillRight(stats.Weekdays[i], 10))
		for _, c := range row {
			if c == 0 {
				fmt.Fprintf(w, "%s   .%s", colorDim, colorReset)
				continue
			}
			fmt.Fprintf(w, "%s%4d%s", heatColor(c, max), c, colorReset)
		}
		fmt.Fprintln(w)
	}
}

func heatColor(count, max int) string {
	if max <= 0 {
		return heat[0]
	}
	idx := count * len(heat) / (max + 1)
	if idx >= len(heat) {
		idx = len(heat) - 1
	}
	return heat[idx]
}

// Warnings lists parse warnings, dimmed, one per line.
func Warnings(w io.Writer, warns []parse.Warning) {
	for _, warn := range warns {
		fmt.Fprintf(w, "%sWARN: %s%s\n", colorDim, warn, colorReset)
	}
}
