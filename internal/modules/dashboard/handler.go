package dashboard

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/finwire/newsdesk/internal/middleware"
	"github.com/finwire/newsdesk/internal/modules/session"
	"github.com/finwire/newsdesk/internal/modules/summary"
	"github.com/finwire/newsdesk/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").ParseFS(templateFS, "templates/index.html"))

// Handler serves the dashboard page and its JSON API.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger.Named("dashboard")}
}

// RegisterRoutes mounts the page on r and the API under api.
func (h *Handler) RegisterRoutes(r gin.IRoutes, api *gin.RouterGroup) {
	r.GET("/", h.page)

	api.GET("/feed", h.feed)
	api.GET("/chat", h.transcript)
	api.POST("/chat", h.chat)
	api.GET("/options", h.options)
}

type pageData struct {
	Blocked    string
	Options    Options
	Query      queryView
	Feed       FeedResult
	Transcript []TurnView
}

type queryView struct {
	Count   int
	Keyword string
	Length  string
}

func (h *Handler) page(c *gin.Context) {
	q, err := h.parseQuery(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sess := middleware.CurrentSession(c)
	ctx := c.Request.Context()

	data := pageData{
		Options: h.svc.Options(),
		Query:   queryView{Count: q.Count, Keyword: q.Keyword, Length: q.Verbosity.String()},
		Feed:    h.svc.Feed(ctx, sess, q),
	}
	if turns, err := h.svc.Transcript(ctx, sess); err != nil {
		h.logger.Warn("load transcript failed", zap.Error(err))
	} else {
		data.Transcript = turns
	}
	renderPage(c, http.StatusOK, data)
}

func (h *Handler) feed(c *gin.Context) {
	q, err := h.parseQuery(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, h.svc.Feed(c.Request.Context(), middleware.CurrentSession(c), q))
}

func (h *Handler) transcript(c *gin.Context) {
	turns, err := h.svc.Transcript(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"turns": turns})
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.svc.Chat(c.Request.Context(), middleware.CurrentSession(c), req.Message)
	switch {
	case err == nil:
		response.OK(c, result)
	case errors.Is(err, ErrEmptyMessage):
		response.BadRequest(c, err.Error())
	case errors.Is(err, session.ErrBusy):
		response.Conflict(c, err.Error())
	default:
		_ = c.Error(err)
		response.BadGateway(c, "The assistant could not answer: "+err.Error())
	}
}

func (h *Handler) options(c *gin.Context) {
	response.OK(c, h.svc.Options())
}

// parseQuery reads count, keyword and length, falling back to the configured defaults.
func (h *Handler) parseQuery(c *gin.Context) (FeedQuery, error) {
	opts := h.svc.Options()
	q := FeedQuery{Count: opts.DefaultCount, Keyword: strings.TrimSpace(c.Query("keyword"))}

	if raw := strings.TrimSpace(c.Query("count")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, errors.New("count must be a number")
		}
		if n < opts.MinCount || n > opts.MaxCount {
			return q, errors.New("count must be between " + strconv.Itoa(opts.MinCount) + " and " + strconv.Itoa(opts.MaxCount))
		}
		q.Count = n
	}

	length := strings.TrimSpace(c.Query("length"))
	if length == "" {
		length = opts.DefaultLength
	}
	v, err := summary.ParseVerbosity(length)
	if err != nil {
		return q, err
	}
	q.Verbosity = v
	return q, nil
}

func renderPage(c *gin.Context, status int, data pageData) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(c.Writer, data); err != nil {
		_ = c.Error(err)
	}
}

// Blocked serves the page with message and answers every API call with 503. It is used
// when required secrets are missing.
func Blocked(r gin.IRoutes, api *gin.RouterGroup, message string) {
	r.GET("/", func(c *gin.Context) {
		renderPage(c, http.StatusServiceUnavailable, pageData{Blocked: message})
	})
	api.Any("/*path", func(c *gin.Context) {
		response.ServiceUnavailable(c, message)
	})
}
