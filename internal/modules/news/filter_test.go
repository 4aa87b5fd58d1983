package news

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestFilterByKeyword(t *testing.T) {
	articles := []Article{
		{Title: "Tesla deliveries beat estimates", Description: "EV maker reports record quarter"},
		{Title: "Oil slides", Description: "Crude falls as TESLA rivals expand"},
		{Title: "Gold steady", Description: ""},
	}

	tests := []struct {
		name    string
		keyword string
		want    int
	}{
		{name: "empty keeps all", keyword: "", want: 3},
		{name: "blank keeps all", keyword: "   ", want: 3},
		{name: "case insensitive title and description", keyword: "tesla", want: 2},
		{name: "description only", keyword: "record", want: 1},
		{name: "no match excludes all", keyword: "bitcoin", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, len(FilterByKeyword(articles, tt.keyword)))
		})
	}
}

func TestFilterByKeywordIgnoresFallbackTitle(t *testing.T) {
	untitled := headlineArticle{}.toArticle()
	assert.Equal(t, NoTitle, untitled.Title)

	articles := []Article{untitled, {Title: "No title fight for the Fed chair", Description: "Markets wait"}}

	kept := FilterByKeyword(articles, "no title")
	assert.Equal(t, 1, len(kept))
	assert.Equal(t, "No title fight for the Fed chair", kept[0].Title)
}

func TestClampCount(t *testing.T) {
	assert.Equal(t, 5, ClampCount(0, 5, 20))
	assert.Equal(t, 10, ClampCount(10, 5, 20))
	assert.Equal(t, 20, ClampCount(21, 5, 20))
}
