// Package auth observes the authentication lifecycle. Token issuance
// and refresh belong to the external auth provider; this package only
// derives the current user identity from whatever token the provider
// has stored, and notifies subscribers when that identity changes.
package auth

import (
	"log"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the JWT claims carried by session tokens.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// GetUserID returns the user ID from the claims.
func (c *Claims) GetUserID() uuid.UUID {
	return c.UserID
}

// TokenStore supplies the raw session token managed by the auth
// provider. An empty string means signed out.
type TokenStore interface {
	Token() string
}

// TokenFunc adapts a func to the TokenStore interface.
type TokenFunc func() string

// Token returns the wrapped func's result.
func (f TokenFunc) Token() string { return f() }

// Change describes an authentication state transition.
type Change struct {
	UserID    *uuid.UUID
	IsLoading bool
}

// Watcher tracks the authenticated identity. It starts in the loading
// state until the first Refresh completes, so consumers (the hydration
// controller) never act on a half-initialized session.
type Watcher struct {
	mu      sync.Mutex
	store   TokenStore
	secret  []byte
	loading bool
	userID  *uuid.UUID
	token   string
	subs    map[int]func(Change)
	nextID  int
}

// NewWatcher creates a watcher validating tokens against the given HMAC
// secret.
func NewWatcher(store TokenStore, secret string) *Watcher {
	return &Watcher{
		store:   store,
		secret:  []byte(secret),
		loading: true,
		subs:    make(map[int]func(Change)),
	}
}

// Refresh re-reads the stored token and notifies subscribers if the
// authenticated identity changed. Invalid or expired tokens read as
// signed out.
func (w *Watcher) Refresh() {
	token := ""
	if w.store != nil {
		token = w.store.Token()
	}

	var userID *uuid.UUID
	if token != "" {
		claims, err := w.parse(token)
		if err != nil {
			log.Printf("auth: stored token rejected, treating as signed out: %v", err)
		} else {
			id := claims.UserID
			userID = &id
		}
	}

	w.mu.Lock()
	changed := w.loading || !sameIdentity(w.userID, userID)
	w.loading = false
	w.userID = userID
	w.token = token
	subs := make([]func(Change), 0, len(w.subs))
	for _, fn := range w.subs {
		subs = append(subs, fn)
	}
	w.mu.Unlock()

	if !changed {
		return
	}
	change := Change{UserID: userID, IsLoading: false}
	for _, fn := range subs {
		fn(change)
	}
}

// parse validates a token and returns its claims.
func (w *Watcher) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return w.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// CurrentUserID returns the authenticated identity, or nil when signed
// out.
func (w *Watcher) CurrentUserID() *uuid.UUID {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.userID == nil {
		return nil
	}
	id := *w.userID
	return &id
}

// IsLoading reports whether the first refresh has not yet completed.
func (w *Watcher) IsLoading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loading
}

// Authenticated reports whether a session exists. Implements
// syncer.Session.
func (w *Watcher) Authenticated() bool {
	return w.CurrentUserID() != nil
}

// Token returns the raw session token for bearer auth. Implements
// gateway.TokenSource.
func (w *Watcher) Token() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.loading || w.userID == nil {
		return ""
	}
	return w.token
}

// Subscribe registers a callback for identity changes. The returned
// cancel func removes the subscription.
func (w *Watcher) Subscribe(fn func(Change)) (cancel func()) {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		delete(w.subs, id)
		w.mu.Unlock()
	}
}

func sameIdentity(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
