package tui

import (
	"slices"
	"sort"

	"github.com/kitbuilder587/newsdesk/internal/domain"
	"github.com/kitbuilder587/newsdesk/internal/topics"
)

type classifiedArticle struct {
	domain.ArticleSummary
	Topics []string
}

func classifyAll(c *topics.Classifier, articles []domain.ArticleSummary) []classifiedArticle {
	out := make([]classifiedArticle, len(articles))
	for i, a := range articles {
		out[i] = classifiedArticle{ArticleSummary: a, Topics: c.Classify(a)}
	}
	return out
}

// filterBySelected keeps articles carrying at least one selected topic.
// An empty selection means no filter.
func filterBySelected(articles []classifiedArticle, selected []string) []classifiedArticle {
	if len(selected) == 0 {
		return articles
	}

	var out []classifiedArticle
	for _, a := range articles {
		for _, topic := range a.Topics {
			if slices.Contains(selected, topic) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

type topicGroup struct {
	Name     string
	Articles []classifiedArticle
}

// groupByTopic buckets articles under each of their topics, restricted to the
// selected ones when a filter is active. Статья с двумя темами попадает в обе
// группы. Groups come back in alphabetical order, articles keep their order.
func groupByTopic(articles []classifiedArticle, selected []string) []topicGroup {
	buckets := make(map[string][]classifiedArticle)
	for _, a := range articles {
		for _, topic := range a.Topics {
			if len(selected) > 0 && !slices.Contains(selected, topic) {
				continue
			}
			buckets[topic] = append(buckets[topic], a)
		}
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]topicGroup, len(names))
	for i, name := range names {
		groups[i] = topicGroup{Name: name, Articles: buckets[name]}
	}
	return groups
}
