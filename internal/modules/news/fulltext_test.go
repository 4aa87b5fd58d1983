package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

const articlePage = `<!DOCTYPE html>
<html><head><title>Markets rally</title></head>
<body>
<nav><a href="/">Home</a></nav>
<article>
<h1>Markets rally on rate cut hopes</h1>
<p>Stocks climbed on Monday as investors bet that the central bank would cut interest rates at its next meeting, sending the benchmark index to a record close.</p>
<p>Technology shares led the gains, with chipmakers rising sharply after upbeat guidance from several large suppliers in the sector, while energy stocks lagged behind.</p>
<p>Bond yields fell across the curve and the dollar weakened against a basket of major currencies as traders priced in a more accommodative policy path.</p>
</article>
<footer>Copyright</footer>
</body></html>`

func TestFullTextReader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	r := NewFullTextReader(time.Second, nil)
	text, err := r.Read(context.Background(), srv.URL+"/markets")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(text, "Technology shares led the gains"))
}

func TestFullTextReaderFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := NewFullTextReader(time.Second, nil)
	a := Article{Title: "Markets rally", Description: "Stocks climbed.", URL: srv.URL}
	assert.Equal(t, "Stocks climbed.", r.TextFor(context.Background(), a))

	a.URL = NoURL
	assert.Equal(t, "Stocks climbed.", r.TextFor(context.Background(), a))
}
