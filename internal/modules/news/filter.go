package news

import "strings"

// FilterByKeyword keeps articles whose title or description contains keyword, ignoring case.
// Display fallbacks never match. An empty keyword keeps everything.
func FilterByKeyword(articles []Article, keyword string) []Article {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return articles
	}
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		title := a.Title
		if a.untitled {
			title = ""
		}
		if strings.Contains(strings.ToLower(title), keyword) ||
			strings.Contains(strings.ToLower(a.Description), keyword) {
			out = append(out, a)
		}
	}
	return out
}
