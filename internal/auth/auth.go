package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	CookieName    = "derbybracket_session"
	SessionExpiry = 24 * time.Hour

	// Login attempts allowed per client before throttling, refilled at LoginRate
	LoginBurst = 5
	LoginRate  = rate.Limit(1.0 / 12)

	limiterIdle    = 10 * time.Minute
	limiterCleanup = 500
)

// Bracket-themed words for password generation
var passwordWords = []string{
	"bracket", "seed", "round", "final", "trophy",
	"bye", "upset", "champion", "rally", "score",
	"semis", "title", "arrow", "blue", "gold",
	"tiger", "wolf", "bear", "podium",
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Auth handles admin authentication
type Auth struct {
	password string
	sessions map[string]time.Time
	mu       sync.RWMutex

	limit    rate.Limit
	burst    int
	limiters map[string]*limiterEntry
	limMu    sync.Mutex
}

// Option configures an Auth
type Option func(*Auth)

// WithLoginLimit overrides the login throttle
func WithLoginLimit(r rate.Limit, burst int) Option {
	return func(a *Auth) {
		a.limit = r
		a.burst = burst
	}
}

// New creates a new Auth instance with the given password
func New(password string, opts ...Option) *Auth {
	a := &Auth{
		password: password,
		sessions: make(map[string]time.Time),
		limit:    LoginRate,
		burst:    LoginBurst,
		limiters: make(map[string]*limiterEntry),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GeneratePassword creates a random 3-word password
func GeneratePassword() string {
	words := make([]string, 3)
	for i := range words {
		idx := randomInt(len(passwordWords))
		words[i] = passwordWords[idx]
	}
	return strings.Join(words, "-")
}

// Login validates the password and returns a session token if valid
func (a *Auth) Login(password string) (string, bool) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) != 1 {
		return "", false
	}

	token := generateToken()
	a.mu.Lock()
	a.sessions[token] = time.Now().Add(SessionExpiry)
	a.mu.Unlock()

	return token, true
}

// AllowLogin reports whether the client may attempt another login. Each call
// spends one token from the client's bucket.
func (a *Auth) AllowLogin(client string) bool {
	a.limMu.Lock()
	defer a.limMu.Unlock()

	now := time.Now()
	if len(a.limiters) > limiterCleanup {
		cutoff := now.Add(-limiterIdle)
		for k, e := range a.limiters {
			if e.lastSeen.Before(cutoff) {
				delete(a.limiters, k)
			}
		}
	}

	e, ok := a.limiters[client]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(a.limit, a.burst)}
		a.limiters[client] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// ClientKey identifies the caller for login throttling
func ClientKey(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// Logout invalidates a session token
func (a *Auth) Logout(token string) {
	a.mu.Lock()
	delete(a.sessions, token)
	a.mu.Unlock()
}

// ValidateSession checks if a session token is valid
func (a *Auth) ValidateSession(token string) bool {
	a.mu.RLock()
	expiry, exists := a.sessions[token]
	a.mu.RUnlock()

	if !exists {
		return false
	}

	if time.Now().After(expiry) {
		a.mu.Lock()
		delete(a.sessions, token)
		a.mu.Unlock()
		return false
	}

	return true
}

// GetSessionFromRequest extracts and validates the session from a request
func (a *Auth) GetSessionFromRequest(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	return a.ValidateSession(cookie.Value)
}

// RequireAuth middleware for admin pages (redirects to login)
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.GetSessionFromRequest(r) {
			next.ServeHTTP(w, r)
			return
		}
		http.Redirect(w, r, "/admin/login", http.StatusFound)
	})
}

// RequireAuthAPI middleware for API endpoints (returns 401)
func (a *Auth) RequireAuthAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.GetSessionFromRequest(r) {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"UNAUTHORIZED","error":"Unauthorized - please log in"}`))
	})
}

// SetSessionCookie sets the session cookie on the response
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionExpiry.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// generateToken creates a random session token
func generateToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// randomInt returns a random int in [0, max)
func randomInt(max int) int {
	bytes := make([]byte, 1)
	rand.Read(bytes)
	return int(bytes[0]) % max
}
