package domain

// UnknownSource is shown when the upstream article carries no source name.
const UnknownSource = "Unknown"

// ArticleSummary - проекция статьи, которую гейтвей отдает клиенту.
// Гарантированы только title/source/publishedAt/url, остальное opt-in.
type ArticleSummary struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
}
