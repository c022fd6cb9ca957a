package views

import (
	"fmt"
	"strings"

	"github.com/xolan/timelog/internal/cli"
	"github.com/xolan/timelog/internal/report"
	"github.com/xolan/timelog/internal/timelog"
	"github.com/xolan/timelog/internal/tui/ui"
)

// itemPrefixWidth is the widest "H h MM min (HH:MM-HH:MM) " prefix of an item line
const itemPrefixWidth = 28

// RenderItems renders items one per line as "H h MM min (HH:MM-HH:MM) text".
// Slacking items use the slacking style. Text is truncated to fit width.
func RenderItems(items []timelog.Item, styles ui.Styles, width int) string {
	var b strings.Builder
	for _, item := range items {
		duration := styles.ItemDuration.Render(report.FormatDuration(item.Duration))
		span := styles.ItemTime.Render(fmt.Sprintf("(%s-%s)", item.Start.Format("15:04"), item.Stop.Format("15:04")))

		textWidth := 0
		if width > 0 {
			textWidth = max(width-itemPrefixWidth, 10)
		}
		text := cli.Truncate(item.Text, textWidth)
		if item.Slacking {
			text = styles.ItemSlacking.Render(text)
		} else {
			text = styles.ItemText.Render(text)
		}

		b.WriteString(duration + " " + span + " " + text)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderDays renders each logical day under its header, separated by a blank line
func RenderDays(days []timelog.Day, styles ui.Styles, width int) string {
	var b strings.Builder
	for i, day := range days {
		if i > 0 {
			b.WriteString("\n")
		}
		if len(days) > 1 {
			b.WriteString(styles.DayHeader.Render(cli.FormatDayHeader(day.Date)))
			b.WriteString("\n")
		}
		b.WriteString(RenderItems(day.Items, styles, width))
	}
	return b.String()
}

func renderStatLine(styles ui.Styles, label, value string) string {
	return styles.StatLabel.Render(label) + " " + styles.StatValue.Render(value) + "\n"
}

func rule(width int) string {
	return strings.Repeat("─", min(50, max(width, 0)))
}
