package ports

import "context"

// Storage keys shared by the session and the onboarding wizard.
const (
	KeyToken               = "token"
	KeyOnboardingCompleted = "onboardingCompleted"
	KeyOnboardingProfile   = "onboarding.profile"
)

// LocalStorage is the client-side key/value store that survives restarts.
type LocalStorage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
