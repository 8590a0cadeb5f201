package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/services"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	muted   = color.New(color.FgHiBlack)
)

func statusBadge(s domain.RequestStatus) string {
	switch s {
	case domain.StatusCompleted:
		return color.New(color.FgGreen).Sprintf("[%s]", s)
	case domain.StatusInProgress:
		return color.New(color.FgBlue).Sprintf("[%s]", s)
	default:
		return color.New(color.FgYellow).Sprintf("[%s]", orText(string(s), "Submitted"))
	}
}

func urgencyBadge(u domain.Urgency) string {
	if !u.Present() {
		return ""
	}
	c := color.New(color.FgYellow)
	switch u {
	case domain.UrgencyLow:
		c = color.New(color.FgGreen)
	case domain.UrgencyHigh:
		c = color.New(color.FgRed)
	case domain.UrgencyEmergency:
		c = color.New(color.FgWhite, color.BgRed, color.Bold)
	}
	return c.Sprintf(" %s ", u)
}

func accountBadge(s domain.AccountStatus) string {
	switch s {
	case domain.AccountActive:
		return color.New(color.FgGreen).Sprint(s)
	case domain.AccountInactive, domain.AccountDenied:
		return color.New(color.FgRed).Sprint(s)
	default:
		return color.New(color.FgYellow).Sprint(s)
	}
}

func orText(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// RenderCard prints one request card with the actions it offers.
func RenderCard(w io.Writer, c services.RequestCard) {
	info := c.Customer
	fmt.Fprintf(w, "#%s %s %s\n", c.ID(), statusBadge(c.Status()), urgencyBadge(c.Urgency()))
	fmt.Fprintf(w, "  %s  %s\n", heading.Sprint(info.Name), muted.Sprint(info.Vehicle))
	fmt.Fprintf(w, "  phone: %s  location: %s\n", info.Phone, info.Location)
	fmt.Fprintf(w, "  issue: %s\n", info.Issue)
	if c.Request.ContactName != "" {
		fmt.Fprintf(w, "  operator: %s", c.Request.ContactName)
		if c.Request.UserName != "" {
			fmt.Fprintf(w, " (by %s)", c.Request.UserName)
		}
		fmt.Fprintln(w)
	}
	if c.Request.CreatedAt != nil {
		fmt.Fprintf(w, "  created %s\n", humanize.Time(*c.Request.CreatedAt))
	}
	fmt.Fprintf(w, "  image: %s\n", c.ImageURL())

	var actions []string
	if c.HasResolve() {
		actions = append(actions, toggle("resolve", c.CanResolve()))
	}
	if c.HasAssign() {
		actions = append(actions, toggle(strings.ToLower(c.AssignLabel()), c.CanAssign()))
	}
	if c.HasDelete() {
		actions = append(actions, toggle("delete", c.CanDelete()))
	}
	if len(actions) > 0 {
		fmt.Fprintf(w, "  actions: %s\n", strings.Join(actions, " "))
	}
}

func toggle(label string, enabled bool) string {
	if enabled {
		return label
	}
	return muted.Sprintf("(%s)", label)
}

func RenderCards(w io.Writer, cards []services.RequestCard) {
	if len(cards) == 0 {
		fmt.Fprintln(w, muted.Sprint("No requests found."))
		return
	}
	for _, c := range cards {
		RenderCard(w, c)
	}
}

func RenderStats(w io.Writer, s domain.OverviewStats) {
	fmt.Fprintf(w, "%s total %d | submitted %d | in progress %d | completed %d\n",
		heading.Sprint("Overview"), s.TotalRequests, s.Submitted, s.InProgress, s.Completed)
}

func RenderSnapshotHeader(w io.Writer, snap services.Snapshot) {
	RenderStats(w, snap.Stats)
	filter := "all"
	if snap.Filter.Status != "" {
		filter = string(snap.Filter.Status)
	}
	if snap.Filter.Query != "" {
		filter += fmt.Sprintf(" matching %q", snap.Filter.Query)
	}
	updated := "never"
	if !snap.LoadedAt.IsZero() {
		updated = humanize.Time(snap.LoadedAt)
	}
	fmt.Fprintf(w, "%s\n", muted.Sprintf("filter: %s, updated %s", filter, updated))
}

func RenderContacts(w io.Writer, contacts []domain.Contact) {
	if len(contacts) == 0 {
		fmt.Fprintln(w, muted.Sprint("No operators yet."))
		return
	}
	for _, c := range contacts {
		fmt.Fprintf(w, "#%s %s [%s] %s %s\n", c.ID, heading.Sprint(c.Name), c.Role, c.Phone, muted.Sprint(c.Email))
	}
}

// RenderUsers prints accounts with the transitions offered for each.
func RenderUsers(w io.Writer, users []domain.Account, actions func(domain.Account) []services.UserAction) {
	if len(users) == 0 {
		fmt.Fprintln(w, muted.Sprint("No accounts."))
		return
	}
	for _, u := range users {
		var labels []string
		for _, a := range actions(u) {
			labels = append(labels, strings.ToLower(a.Label))
		}
		fmt.Fprintf(w, "#%s %s <%s> %s %s", u.ID, heading.Sprint(u.Username), u.Email, u.Role.Label(), accountBadge(u.EffectiveStatus()))
		if len(labels) > 0 {
			fmt.Fprintf(w, "  actions: %s", strings.Join(labels, " "))
		}
		fmt.Fprintln(w)
	}
}

func RenderPending(w io.Writer, id domain.Identity) {
	fmt.Fprintln(w, heading.Sprint("Account Pending Approval"))
	fmt.Fprintf(w, "Hi %s, an administrator still has to approve your account.\n", orText(id.Username, id.Email))
}

func RenderNoAccess(w io.Writer) {
	fmt.Fprintln(w, color.New(color.FgRed).Sprint("You do not have admin privileges for this platform."))
}

func RenderOnboarding(w io.Writer, wiz *services.OnboardingWizard) {
	p := wiz.Profile()
	fmt.Fprintf(w, "%s step %d/%d\n", heading.Sprint("Onboarding"), wiz.Step(), services.OnboardingSteps)
	fmt.Fprintf(w, "  one-liner: %s\n", p.OneLiner)
	fmt.Fprintf(w, "  skills: %s\n", strings.Join(p.Skills, ", "))
	fmt.Fprintf(w, "  hourly: %s\n", p.Hourly)
	fmt.Fprintf(w, "  links: %s\n", strings.Join(p.Links, " "))
	if p.PhotoPreview != "" {
		fmt.Fprintf(w, "  photo: %s\n", humanize.Bytes(uint64(len(p.PhotoPreview))))
	}
	if since := p.CompletedSince(); since != "" {
		fmt.Fprintf(w, "  completed %s\n", since)
	}
}

func RenderAssignments(w io.Writer, history []domain.Assignment) {
	if len(history) == 0 {
		fmt.Fprintln(w, "  (no earlier assignments)")
		return
	}
	for _, a := range history {
		when := "unknown time"
		if a.CreatedAt != nil {
			when = humanize.Time(*a.CreatedAt)
		}
		fmt.Fprintf(w, "  %s  staff #%s  operator #%s  %s  %s\n",
			a.Status, orText(string(a.UserID), "-"), orText(string(a.OperatorID), "-"), when, a.Notes)
	}
}
