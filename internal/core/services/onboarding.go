package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
	"github.com/AssiaOU26/Cars-front/internal/logger"
)

const (
	OnboardingSteps = 2
	MaxOneLiner     = 60
	MaxSkills       = 3
	LinkSlots       = 2
)

var HourlyOptions = []string{
	"$20 - $40/hr",
	"$40 - $80/hr",
	"$80 - $120/hr",
	"$120 - $200/hr",
}

// OnboardingProfile is persisted as JSON under onboarding.profile.
type OnboardingProfile struct {
	OneLiner     string   `json:"oneLiner"`
	Skills       []string `json:"skills"`
	Hourly       string   `json:"hourly"`
	Links        []string `json:"links"`
	PhotoPreview string   `json:"photoPreview,omitempty"`
	CompletedAt  int64    `json:"completedAt,omitempty"`
}

func (p OnboardingProfile) CompletedSince() string {
	if p.CompletedAt == 0 {
		return ""
	}
	return humanize.Time(time.UnixMilli(p.CompletedAt))
}

// ShouldShowOnboarding is true for signed-in users who have not finished
// the wizard.
func ShouldShowOnboarding(ctx context.Context, store ports.LocalStorage, authenticated bool) bool {
	if !authenticated {
		return false
	}
	done, ok, err := store.Get(ctx, ports.KeyOnboardingCompleted)
	if err != nil {
		return false
	}
	return !ok || done != "true"
}

type OnboardingWizard struct {
	store ports.LocalStorage
	log   *logger.Logger
	now   func() time.Time

	step       int
	skillDraft string
	profile    OnboardingProfile
}

// NewOnboardingWizard opens the wizard, restoring any cached profile.
func NewOnboardingWizard(ctx context.Context, store ports.LocalStorage, log *logger.Logger) *OnboardingWizard {
	if log == nil {
		log = logger.Discard()
	}
	w := &OnboardingWizard{
		store:   store,
		log:     log,
		now:     time.Now,
		step:    1,
		profile: OnboardingProfile{Skills: []string{}, Links: make([]string, LinkSlots)},
	}

	raw, ok, err := store.Get(ctx, ports.KeyOnboardingProfile)
	if err != nil {
		log.Warnf("onboarding: read cached profile: %v", err)
		return w
	}
	if !ok || raw == "" {
		return w
	}
	var cached OnboardingProfile
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		log.Warnf("onboarding: ignoring unreadable cached profile: %v", err)
		return w
	}

	w.SetOneLiner(cached.OneLiner)
	for _, s := range cached.Skills {
		w.addSkill(s)
	}
	if validHourly(cached.Hourly) {
		w.profile.Hourly = cached.Hourly
	}
	for i := 0; i < LinkSlots && i < len(cached.Links); i++ {
		w.profile.Links[i] = cached.Links[i]
	}
	w.profile.PhotoPreview = cached.PhotoPreview
	return w
}

func (w *OnboardingWizard) Step() int                  { return w.step }
// Profile returns a copy of the draft; callers may keep its slices.
func (w *OnboardingWizard) Profile() OnboardingProfile {
	p := w.profile
	p.Skills = append([]string(nil), w.profile.Skills...)
	p.Links = append([]string(nil), w.profile.Links...)
	return p
}

func (w *OnboardingWizard) Next() {
	if w.step < OnboardingSteps {
		w.step++
	}
}

func (w *OnboardingWizard) Prev() {
	if w.step > 1 {
		w.step--
	}
}

// SetOneLiner keeps at most MaxOneLiner characters.
func (w *OnboardingWizard) SetOneLiner(v string) {
	if utf8.RuneCountInString(v) > MaxOneLiner {
		v = string([]rune(v)[:MaxOneLiner])
	}
	w.profile.OneLiner = v
}

func (w *OnboardingWizard) SetSkillDraft(v string) { w.skillDraft = v }

func (w *OnboardingWizard) CanAddSkill() bool {
	return strings.TrimSpace(w.skillDraft) != "" && len(w.profile.Skills) < MaxSkills
}

// AddSkill moves the draft into the skill list. Duplicates are ignored.
func (w *OnboardingWizard) AddSkill() bool {
	if !w.CanAddSkill() {
		return false
	}
	added := w.addSkill(w.skillDraft)
	w.skillDraft = ""
	return added
}

func (w *OnboardingWizard) addSkill(raw string) bool {
	skill := strings.TrimSpace(raw)
	if skill == "" || len(w.profile.Skills) >= MaxSkills {
		return false
	}
	for _, s := range w.profile.Skills {
		if s == skill {
			return false
		}
	}
	w.profile.Skills = append(w.profile.Skills, skill)
	return true
}

func (w *OnboardingWizard) RemoveSkill(skill string) {
	out := make([]string, 0, len(w.profile.Skills))
	for _, s := range w.profile.Skills {
		if s != skill {
			out = append(out, s)
		}
	}
	w.profile.Skills = out
}

func validHourly(v string) bool {
	for _, opt := range HourlyOptions {
		if v == opt {
			return true
		}
	}
	return false
}

// SetHourly accepts one of HourlyOptions, or "" to clear.
func (w *OnboardingWizard) SetHourly(v string) error {
	if v != "" && !validHourly(v) {
		return fmt.Errorf("%w: hourly %q", ErrInvalidOption, v)
	}
	w.profile.Hourly = v
	return nil
}

func (w *OnboardingWizard) SetLink(slot int, url string) error {
	if slot < 0 || slot >= LinkSlots {
		return ErrStepOutOfRange
	}
	w.profile.Links[slot] = strings.TrimSpace(url)
	return nil
}

// SetPhoto keeps the photo as a data URL preview.
func (w *OnboardingWizard) SetPhoto(p domain.Photo) error {
	if err := validatePhoto(&p); err != nil {
		return err
	}
	w.profile.PhotoPreview = "data:" + p.ContentType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
	return nil
}

func (w *OnboardingWizard) ClearPhoto() { w.profile.PhotoPreview = "" }

// Complete stores the profile and marks onboarding finished.
func (w *OnboardingWizard) Complete(ctx context.Context) error {
	w.profile.CompletedAt = w.now().UnixMilli()
	payload, err := json.Marshal(w.profile)
	if err != nil {
		return fmt.Errorf("encode onboarding profile: %w", err)
	}
	if err := w.store.Set(ctx, ports.KeyOnboardingProfile, string(payload)); err != nil {
		return fmt.Errorf("save onboarding profile: %w", err)
	}
	if err := w.store.Set(ctx, ports.KeyOnboardingCompleted, "true"); err != nil {
		return fmt.Errorf("mark onboarding completed: %w", err)
	}
	w.log.Infof("onboarding: completed with %d skills", len(w.profile.Skills))
	return nil
}
