package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"
)

type contextKey string

const accountContextKey contextKey = "account"

const (
	sessionCookieName = "fitdesk_session"
	sessionTTL        = 24 * time.Hour
)

// SecureCookies controls the Secure flag on session and CSRF cookies.
// main sets it for production; local HTTP development leaves it off.
var SecureCookies = false

// Session is one authenticated login.
type Session struct {
	AccountID string
	Email     string
	Role      string
	CreatedAt time.Time
}

// SessionStore keeps sessions in memory, keyed by an opaque token. A restart
// logs everyone out, which is acceptable for a single-process deployment.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
	}
}

// Create stores a session for the account and returns its token.
func (ss *SessionStore) Create(accountID, email, role string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[token] = Session{
		AccountID: accountID,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	return token, nil
}

// Get returns the session for token, dropping it once past the TTL.
func (ss *SessionStore) Get(token string) (Session, bool) {
	ss.mu.RLock()
	sess, ok := ss.sessions[token]
	ss.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if time.Since(sess.CreatedAt) > sessionTTL {
		ss.Delete(token)
		return Session{}, false
	}
	return sess, true
}

func (ss *SessionStore) Delete(token string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, token)
}

// Auth resolves the session cookie into a context value. It never blocks a
// request: role checks happen in the handlers.
func Auth(sessions *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
				if sess, ok := sessions.Get(cookie.Value); ok {
					r = r.WithContext(ContextWithSession(r.Context(), sess))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetSessionFromContext returns the session Auth attached, if any.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(accountContextKey).(Session)
	return sess, ok
}

// ContextWithSession attaches a session to ctx. Handlers get this via Auth;
// tests use it to simulate a logged-in request.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, accountContextKey, sess)
}

func sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   maxAge,
	}
}

// SetSessionCookie attaches the session token to the response.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, sessionCookie(token, int(sessionTTL.Seconds())))
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, sessionCookie("", -1))
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
