package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"seq/internal/driver"
)

var (
	accent  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	faint   = lipgloss.NewStyle().Faint(true)

	statusStyles = map[driver.Status]lipgloss.Style{
		driver.StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		driver.StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		driver.StatusWorking: accent,
	}
	idleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

const statusWidth = 10

func (m *expandModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(heading.Render(m.header()))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-16, 20)
	for _, it := range m.items {
		writeItem(&b, it, nameWidth)
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *expandModel) header() string {
	finished, failed := m.counts()
	h := fmt.Sprintf("%s %d/%d", m.title, finished, len(m.items))
	if failed > 0 {
		h += fmt.Sprintf(", %d failed", failed)
	}
	if m.done {
		return fmt.Sprintf("done: %s in %s", h, time.Since(m.started).Round(time.Millisecond))
	}
	return m.spinner.View() + " " + h
}

func writeItem(b *strings.Builder, it fileItem, nameWidth int) {
	style, ok := statusStyles[it.status]
	if !ok {
		style = idleStyle
	}
	fmt.Fprintf(b, "  %s %s", style.Render(fmt.Sprintf("%*s", statusWidth, itemLabel(it))), truncate(it.path, nameWidth))
	if it.finished() {
		b.WriteString(" " + faint.Render(it.elapsed.Round(time.Microsecond).String()))
	}
	if it.err != nil {
		fmt.Fprintf(b, "\n  %*s %s", statusWidth, "", truncate(it.err.Error(), nameWidth))
	}
	b.WriteString("\n")
}

// truncate fits value into width terminal cells. Paths share their
// prefix more often than their tail, so the head is cut.
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	rs := []rune(value)
	cut, w := len(rs), 0
	for cut > 0 {
		rw := runewidth.RuneWidth(rs[cut-1])
		if w+rw > width-3 {
			break
		}
		w += rw
		cut--
	}
	return "..." + string(rs[cut:])
}
