package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cast"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
	"github.com/AssiaOU26/Cars-front/internal/logger"
)

// IdentityProvider yields the signed-in identity, if any.
type IdentityProvider interface {
	Identity() (domain.Identity, bool)
}

// StaticIdentity pins an identity, typically the one returned by /api/me.
type StaticIdentity domain.Identity

func (s StaticIdentity) Identity() (domain.Identity, bool) {
	return domain.Identity(s), s.ID != ""
}

// Session holds the bearer token and the identity hint decoded from it.
// The token is mirrored to local storage so it survives restarts.
type Session struct {
	mu       sync.RWMutex
	store    ports.LocalStorage
	log      *logger.Logger
	token    string
	identity *domain.Identity

	subscribers []func()
}

var (
	_ ports.TokenSource = (*Session)(nil)
	_ IdentityProvider  = (*Session)(nil)
)

// NewSession restores a persisted token. A token that cannot be decoded is
// dropped silently.
func NewSession(ctx context.Context, store ports.LocalStorage, log *logger.Logger) (*Session, error) {
	if log == nil {
		log = logger.Discard()
	}
	s := &Session{store: store, log: log}

	token, ok, err := store.Get(ctx, ports.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if !ok || token == "" {
		return s, nil
	}

	identity, err := DecodeIdentity(token)
	if err != nil {
		log.Warnf("session: discarding undecodable token: %v", err)
		if err := store.Remove(ctx, ports.KeyToken); err != nil {
			log.Warnf("session: remove token: %v", err)
		}
		return s, nil
	}

	s.token = token
	s.identity = &identity
	return s, nil
}

// DecodeIdentity reads the claims of a token without verifying its signature.
// The result is a hint only; /api/me is authoritative.
func DecodeIdentity(token string) (domain.Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return domain.Identity{}, fmt.Errorf("decode token: %w", err)
	}

	var id string
	for _, claim := range []string{"id", "userId", "user_id", "sub"} {
		if id = cast.ToString(claims[claim]); id != "" {
			break
		}
	}
	role, _ := domain.ParseRole(cast.ToString(claims["role"]))

	return domain.Identity{
		ID:       domain.ID(id),
		Username: cast.ToString(claims["username"]),
		Email:    cast.ToString(claims["email"]),
		Role:     role,
		Status:   domain.AccountStatus(cast.ToString(claims["status"])),
	}, nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Identity() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Login stores the token and refreshes the identity hint. A token that does
// not decode is an invalid session: it is discarded like on restore.
func (s *Session) Login(ctx context.Context, token string) error {
	identity, err := DecodeIdentity(token)
	if err != nil {
		s.log.Warnf("session: discarding undecodable token: %v", err)
		if err := s.Logout(ctx); err != nil {
			s.log.Warnf("session: %v", err)
		}
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if err := s.store.Set(ctx, ports.KeyToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.identity = &identity
	s.mu.Unlock()
	return nil
}

// Logout clears memory first so the session is gone even if storage fails.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.identity = nil
	s.mu.Unlock()

	if err := s.store.Remove(ctx, ports.KeyToken); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Invalidate is called when the backend rejects the token.
func (s *Session) Invalidate(ctx context.Context) {
	if err := s.Logout(ctx); err != nil {
		s.log.Warnf("session: %v", err)
	}
	s.log.Infof("session: token rejected by backend, signed out")

	s.mu.RLock()
	subs := append([]func(){}, s.subscribers...)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

// OnInvalidate registers fn to run after the backend rejects the session.
func (s *Session) OnInvalidate(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}
