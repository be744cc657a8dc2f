package topics

import (
	"strings"

	"github.com/kitbuilder587/newsdesk/internal/domain"
)

// Classifier maps an article to the topics whose keywords appear in its
// title or description. Matching is plain case-insensitive substring search
// over title+description, so короткие ключи вроде "ai" цепляют и части слов.
type Classifier struct {
	table Table
}

func NewClassifier(table Table) *Classifier {
	if table == nil {
		table = DefaultTable()
	}
	return &Classifier{table: table}
}

// Classify returns the matching topic names in table order, or the
// Uncategorized sentinel when nothing matches.
func (c *Classifier) Classify(a domain.ArticleSummary) []string {
	text := strings.ToLower(a.Title + " " + a.Description)

	var matched []string
	for _, topic := range c.table {
		for _, kw := range topic.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				matched = append(matched, topic.Name)
				break
			}
		}
	}

	if len(matched) == 0 {
		return []string{Uncategorized}
	}
	return matched
}
