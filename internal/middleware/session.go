package middleware

import (
	"net/http"
	"time"

	"github.com/finwire/newsdesk/internal/modules/session"
	"github.com/finwire/newsdesk/internal/pkg/jwt"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	SessionCookie     = "newsdesk_session"
	ContextKeySession = "session"
)

// Session binds the request to a dashboard session carried in a signed cookie. A missing,
// expired or forged cookie starts a new session; a valid one is re-signed past half its lifetime.
func Session(manager *session.Manager, ttl time.Duration, secure bool, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sid string
		var expires time.Time
		if raw, err := c.Cookie(SessionCookie); err == nil && raw != "" {
			if claims, err := jwt.Parse(raw); err == nil {
				sid = claims.SessionID
				if claims.ExpiresAt != nil {
					expires = claims.ExpiresAt.Time
				}
			}
		}

		s := manager.GetOrCreate(sid)
		// active sessions outlive ttl, their cookie must too
		if s.ID != sid || time.Until(expires) < ttl/2 {
			token, err := jwt.Sign(s.ID, ttl)
			if err != nil {
				log.Error("sign session cookie failed", zap.Error(err))
			} else {
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", secure, true)
			}
		}

		c.Set(ContextKeySession, s)
		c.Next()
	}
}

// CurrentSession returns the session bound by Session, or nil.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(ContextKeySession)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}
