// Package tui is the interactive report: a sender list on the left, a
// scrollable statistics panel for the selection on the right.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ktrang/chatstat/internal/parse"
	"github.com/ktrang/chatstat/internal/stats"
)

// first list entry: the whole chat, no sender filter
const overallItem = "Overall"

const (
	listWidth = 28
	topTokens = 10
)

type model struct {
	msgs  []parse.Message
	warns []parse.Warning
	opts  stats.Options

	items      []string // overallItem + senders ranked by activity
	counts     map[string]stats.UserCount
	cursor     int
	listOffset int

	panel  viewport.Model
	width  int
	height int
	ready  bool
}

// Run starts the TUI and blocks until the user quits.
func Run(msgs []parse.Message, warns []parse.Warning, opts stats.Options) error {
	opts.Sender = "" // the list drives the filter
	overall, err := stats.New(msgs, opts)
	if err != nil {
		return err
	}

	counts := make(map[string]stats.UserCount)
	items := []string{overallItem}
	for _, u := range overall.PerUser() {
		counts[u.Sender] = u
		items = append(items, u.Sender)
	}

	m := model{
		msgs:   msgs,
		warns:  warns,
		opts:   opts,
		items:  items,
		counts: counts,
		panel:  viewport.New(0, 0),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.panel.Width = m.panelWidth()
		m.panel.Height = m.contentHeight()
		m.ready = true
		m.refreshPanel()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.contentHeight())
				m.refreshPanel()
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
				m.adjustListScroll(m.contentHeight())
				m.refreshPanel()
			}
		case key.Matches(msg, keys.PanelUp):
			m.panel.LineUp(3)
		case key.Matches(msg, keys.PanelDn):
			m.panel.LineDown(3)
		case key.Matches(msg, keys.PageUp):
			m.panel.LineUp(m.contentHeight())
		case key.Matches(msg, keys.PageDown):
			m.panel.LineDown(m.contentHeight())
		}
	}
	return m, nil
}

func (m model) panelWidth() int {
	w := m.width - listWidth - 6 // borders and gap
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) contentHeight() int {
	h := m.height - 4 // borders and status bar
	if h < 3 {
		h = 3
	}
	return h
}

func (m *model) refreshPanel() {
	sel := m.items[m.cursor]
	opts := m.opts
	if sel != overallItem {
		opts.Sender = sel
	}
	report, err := stats.New(m.msgs, opts)
	if err != nil {
		m.panel.SetContent(styleMuted.Render(err.Error()))
		return
	}
	m.panel.SetContent(renderStats(sel, report))
	m.panel.GotoTop()
}

// renderStats builds the right panel text for one selection.
func renderStats(name string, r *stats.Report) string {
	var b strings.Builder

	first, last := r.Span()
	b.WriteString(styleSection.Render(name) + "\n")
	b.WriteString(styleMuted.Render(fmt.Sprintf("%s — %s",
		first.Format("2 Jan 2006"), last.Format("2 Jan 2006"))) + "\n\n")

	users := r.PerUser()
	messages, words, media, emojis, links := 0, 0, 0, 0, 0
	for _, u := range users {
		messages += u.Messages
		words += u.Words
		media += u.Media
		emojis += u.Emojis
		links += u.Links
	}
	b.WriteString(styleSection.Render("Totals") + "\n")
	b.WriteString(fmt.Sprintf("  messages %s   words %s   media %s   emoji %s   links %s\n\n",
		styleValue.Render(fmt.Sprint(messages)),
		styleValue.Render(fmt.Sprint(words)),
		styleValue.Render(fmt.Sprint(media)),
		styleValue.Render(fmt.Sprint(emojis)),
		styleValue.Render(fmt.Sprint(links))))

	if day, hour, ok := busiest(r.Heatmap()); ok {
		b.WriteString(styleSection.Render("Peak activity") + "\n")
		b.WriteString(fmt.Sprintf("  %s around %s\n\n",
			styleValue.Render(stats.Weekdays[day]),
			styleValue.Render(fmt.Sprintf("%02d:00", hour))))
	}

	b.WriteString(tokenSection("Top words", r.WordFrequency()))
	b.WriteString(tokenSection("Top emoji", r.EmojiFrequency()))

	return b.String()
}

func tokenSection(title string, entries []stats.Freq) string {
	if len(entries) == 0 {
		return ""
	}
	if len(entries) > topTokens {
		entries = entries[:topTokens]
	}
	var b strings.Builder
	b.WriteString(styleSection.Render(title) + "\n")
	for i, e := range entries {
		b.WriteString(fmt.Sprintf("  %2d. %s %s\n", i+1,
			runewidth.FillRight(e.Token, 16),
			styleMuted.Render(fmt.Sprint(e.Count))))
	}
	b.WriteString("\n")
	return b.String()
}

// busiest locates the hottest heatmap cell.
func busiest(grid [7][24]int) (day, hour int, ok bool) {
	max := 0
	for d, row := range grid {
		for h, c := range row {
			if c > max {
				max, day, hour = c, d, h
			}
		}
	}
	return day, hour, max > 0
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}

	height := m.contentHeight()
	list := m.renderList(listWidth, height)

	left := styleActiveBorder.Width(listWidth).Height(height).Render(list)
	right := stylePanelBorder.Width(m.panelWidth()).Height(height).Render(m.panel.View())

	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	status := fmt.Sprintf("%d messages · %d senders · %d warnings · up/dn select · C-u/C-d scroll · q quit",
		len(m.msgs), len(m.items)-1, len(m.warns))
	return panes + "\n" + styleStatusBar.Render(truncate(status, m.width-2))
}

// renderList renders the sender list with scrolling and activity counts.
func (m model) renderList(width, height int) string {
	var lines []string
	for i, item := range m.items {
		if i < m.listOffset {
			continue
		}
		if len(lines) >= height {
			break
		}
		label := item
		if u, ok := m.counts[item]; ok {
			label = fmt.Sprintf("%s %s", item, styleMuted.Render(fmt.Sprint(u.Messages)))
		}
		switch {
		case i == m.cursor:
			lines = append(lines, styleListSelected.Render("> ")+label)
		case item == overallItem:
			lines = append(lines, "  "+styleOverall.Render(label))
		default:
			lines = append(lines, "  "+styleListNormal.Render(truncate(label, width-2)))
		}
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *model) adjustListScroll(height int) {
	if height < 1 {
		height = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+height {
		m.listOffset = m.cursor - height + 1
	}
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
