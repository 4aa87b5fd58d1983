package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/finwire/newsdesk/internal/middleware"
	"github.com/finwire/newsdesk/internal/modules/session"
	"github.com/finwire/newsdesk/internal/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	jwt.SetSecret("dashboard-test-secret")
	r := gin.New()
	r.Use(middleware.Session(session.NewManager(nil, time.Hour, nil), time.Hour, false, zap.NewNop()))
	NewHandler(svc, nil).RegisterRoutes(r, r.Group("/api/v1"))
	return r
}

func TestFeedHandler(t *testing.T) {
	c := &counters{}
	r := newTestRouter(newTestService(&fakeFetcher{articles: testArticles}, fakeLLM{c: c}, c))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/feed?count=5&keyword=apple&length=Very+Short", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var body FeedResult
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, len(body.Items))
	assert.Equal(t, "Apple posts record quarter", body.Items[0].Title)
	assert.Equal(t, "Reuters", body.Items[0].Source)
}

func TestFeedHandlerValidatesQuery(t *testing.T) {
	c := &counters{}
	r := newTestRouter(newTestService(&fakeFetcher{articles: testArticles}, fakeLLM{c: c}, c))

	for _, q := range []string{"count=abc", "count=4", "count=21", "length=Huge"} {
		t.Run(q, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/feed?"+q, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Equal(t, 0, c.completed)
}

func TestChatHandler(t *testing.T) {
	c := &counters{}
	r := newTestRouter(newTestService(&fakeFetcher{}, fakeLLM{c: c}, c))

	empty := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{"message":""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(empty, req)
	assert.Equal(t, http.StatusBadRequest, empty.Code)

	w := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{"message":"What is a bond?"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var body ChatResult
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, len(body.Turns))
	assert.Equal(t, "What is a bond?", body.Turns[1].Text)

	// Same cookie sees the same transcript.
	get := httptest.NewRequest(http.MethodGet, "/api/v1/chat", nil)
	for _, ck := range w.Result().Cookies() {
		get.AddCookie(ck)
	}
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, get)
	var transcript struct {
		Turns []TurnView `json:"turns"`
	}
	assert.Equal(t, nil, json.Unmarshal(w2.Body.Bytes(), &transcript))
	assert.Equal(t, 3, len(transcript.Turns))
}

func TestPageRenders(t *testing.T) {
	c := &counters{}
	r := newTestRouter(newTestService(&fakeFetcher{articles: testArticles}, fakeLLM{c: c}, c))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?length=Medium", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	html := w.Body.String()
	assert.Equal(t, true, strings.Contains(html, "1. Apple posts record quarter (Reuters)"))
	assert.Equal(t, true, strings.Contains(html, `<span class="entity-badge">Apple</span>`))
	assert.Equal(t, true, strings.Contains(html, `<option value="Medium" selected>`))
	assert.Equal(t, true, strings.Contains(html, "Hi, ask me about markets."))
}

func TestPageShowsNoArticles(t *testing.T) {
	c := &counters{}
	r := newTestRouter(newTestService(&fakeFetcher{articles: testArticles}, fakeLLM{c: c}, c))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?keyword=zzz", nil))
	assert.Equal(t, true, strings.Contains(w.Body.String(), NoArticles))
}

func TestBlocked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Blocked(r, r.Group("/api/v1"), "Please set NEWSAPI_KEY in the environment or the .env file")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, true, strings.Contains(w.Body.String(), "Please set NEWSAPI_KEY"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/chat", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
