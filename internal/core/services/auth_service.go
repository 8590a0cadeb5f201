package services

import (
	"context"
	"errors"
	"strings"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
	"github.com/AssiaOU26/Cars-front/internal/logger"
)

const minPasswordLength = 6

type AuthService struct {
	api     ports.Backend
	session *Session
	toast   ports.Toaster
	log     *logger.Logger
}

func NewAuthService(api ports.Backend, session *Session, toast ports.Toaster, log *logger.Logger) *AuthService {
	if log == nil {
		log = logger.Discard()
	}
	return &AuthService{
		api:     api,
		session: session,
		toast:   toast,
		log:     log,
	}
}

// Login exchanges credentials for a token and opens the session.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	token, err := s.api.Login(ctx, domain.Credentials{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		s.toast.Error(failureText(err, MsgLoginFailed))
		return err
	}

	if err := s.session.Login(ctx, token); err != nil {
		s.toast.Error(MsgLoginFailed)
		return err
	}
	s.toast.Success(MsgSignedIn)
	return nil
}

// Register creates a pending account. Short passwords are rejected locally.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (ports.RegisterResult, error) {
	if len(reg.Password) < minPasswordLength {
		s.toast.Error(MsgPasswordTooShort)
		return ports.RegisterResult{}, ErrPasswordTooShort
	}
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)

	result, err := s.api.Register(ctx, reg)
	if err != nil {
		s.toast.Error(failureText(err, MsgRegisterFailed))
		return ports.RegisterResult{}, err
	}

	msg := result.Message
	if msg == "" {
		msg = MsgRegistered
	}
	s.toast.Success(msg)
	return result, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.Logout(ctx); err != nil {
		return err
	}
	s.toast.Success(MsgSignedOut)
	return nil
}

// Me asks the backend who the token belongs to.
func (s *AuthService) Me(ctx context.Context) (domain.Identity, error) {
	if !s.session.Authenticated() {
		return domain.Identity{}, ErrNotAuthenticated
	}
	account, err := s.api.FetchMe(ctx)
	if err != nil {
		return domain.Identity{}, err
	}
	if account == nil {
		return domain.Identity{}, ErrNotAuthenticated
	}
	return domain.FromAccount(*account), nil
}

// ResolveViewer picks the view for the signed-in user. The backend answer
// wins; the token hint is used only when /api/me is unreachable.
func (s *AuthService) ResolveViewer(ctx context.Context) (domain.Identity, domain.ViewerKind, error) {
	identity, err := s.Me(ctx)
	if err == nil {
		return identity, domain.ResolveViewer(identity), nil
	}
	if errors.Is(err, ErrNotAuthenticated) || ports.IsSessionExpired(err) || ctx.Err() != nil {
		return domain.Identity{}, domain.ViewerPending, err
	}

	hint, ok := s.session.Identity()
	if !ok || hint.ID == "" {
		return domain.Identity{}, domain.ViewerPending, err
	}
	s.log.Warnf("auth: /api/me unavailable, using token claims: %v", err)
	return hint, domain.ResolveViewer(hint), nil
}

// failureText prefers the message the backend sent with a rejected call.
func failureText(err error, fallback string) string {
	var backendErr interface{ SessionExpired() bool }
	if errors.As(err, &backendErr) {
		if msg := err.Error(); msg != "" {
			return msg
		}
	}
	return fallback
}
