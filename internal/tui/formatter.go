package tui

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kitbuilder587/newsdesk/internal/domain"
)

// titleWidth caps collapsed titles; full titles show in the expanded view.
const titleWidth = 90

var countPrinter = message.NewPrinter(language.English)

// FormatPublished renders a NewsAPI publish stamp as "2006-01-02 15:04" in
// the stamp's own zone. Пустое значение - "Unknown date", непарсибельное -
// возвращается как есть.
func FormatPublished(raw string) string {
	if raw == "" {
		return "Unknown date"
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02T15:04:05", raw)
	}
	if err != nil {
		return raw
	}

	return t.Format("2006-01-02 15:04")
}

// TruncateTitle cuts at max runes, appending "..." when something was cut.
func TruncateTitle(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max]) + "..."
}

func formatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

func collapsedLine(index int, a domain.ArticleSummary) string {
	return fmt.Sprintf("%s %s  📌 %s | 🕐 %s",
		dimStyle.Render(fmt.Sprintf("%d.", index)),
		titleStyle.Render(TruncateTitle(a.Title, titleWidth)),
		sourceStyle.Render(a.Source),
		dateStyle.Render(FormatPublished(a.PublishedAt)))
}

func expandedView(a classifiedArticle) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(a.Title) + "\n")
	sb.WriteString(fmt.Sprintf("Topics: %s\n", strings.Join(a.Topics, ", ")))
	sb.WriteString(fmt.Sprintf("Source: %s | Published: %s\n", a.Source, FormatPublished(a.PublishedAt)))
	sb.WriteString(linkStyle.Render(a.URL) + "\n")

	if a.Description != "" {
		sb.WriteString("\n" + a.Description + "\n")
	}
	if a.Content != "" {
		sb.WriteString("\n" + dimStyle.Render(a.Content) + "\n")
	}

	return sb.String()
}
