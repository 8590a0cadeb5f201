package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/services"
	"github.com/AssiaOU26/Cars-front/internal/logger"
)

var ErrQuit = errors.New("quit")

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

// Shell is a line-oriented front end for the dashboards.
type Shell struct {
	in  io.Reader
	out io.Writer
	log *logger.Logger

	// ctx interrupts pending reads; loop sets it for the life of a view.
	ctx     context.Context
	start   sync.Once
	lines   chan string
	readErr error
}

func NewShell(in io.Reader, out io.Writer, log *logger.Logger) *Shell {
	if log == nil {
		log = logger.Discard()
	}
	return &Shell{in: in, out: out, log: log}
}

// readLine waits for the next input line or for the current view to end.
func (s *Shell) readLine() (string, error) {
	s.start.Do(func() {
		s.lines = make(chan string)
		go func() {
			defer close(s.lines)
			sc := bufio.NewScanner(s.in)
			for sc.Scan() {
				s.lines <- sc.Text()
			}
			s.readErr = sc.Err()
		}()
	})

	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			if s.readErr != nil {
				return "", s.readErr
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// Ask prints label and reads one line.
func (s *Shell) Ask(label string) (string, error) {
	fmt.Fprintf(s.out, "%s: ", label)
	line, err := s.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskLines reads lines until an empty one.
func (s *Shell) AskLines(label string) (string, error) {
	fmt.Fprintf(s.out, "%s (end with an empty line):\n", label)
	var lines []string
	for {
		line, err := s.readLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Shell) loop(ctx context.Context, prompt string, commands map[string]command) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	help := func() {
		for _, name := range names {
			fmt.Fprintf(s.out, "  %-12s %s\n", name, commands[name].usage)
		}
		fmt.Fprintf(s.out, "  %-12s %s\n", "quit", "leave the console")
	}
	help()

	outer := s.ctx
	s.ctx = ctx
	defer func() { s.ctx = outer }()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprintf(s.out, "%s> ", prompt)
		line, err := s.readLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		name, args := strings.ToLower(fields[0]), fields[1:]
		switch name {
		case "quit", "exit":
			return nil
		case "help":
			help()
			continue
		}
		cmd, ok := commands[name]
		if !ok {
			fmt.Fprintf(s.out, "unknown command %q, try help\n", name)
			continue
		}
		if err := cmd.run(ctx, args); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Debugf("console: %s: %v", name, err)
			if isUsageError(err) {
				fmt.Fprintln(s.out, err)
			}
		}
	}
}

type usageError string

func (e usageError) Error() string { return "usage: " + string(e) }

func isUsageError(err error) bool {
	var u usageError
	return errors.As(err, &u) ||
		errors.Is(err, services.ErrInvalidOption) ||
		errors.Is(err, domain.ErrRequestCompleted) ||
		errors.Is(err, services.ErrActionUnavailable) ||
		errors.Is(err, services.ErrPhotoTooLarge) ||
		errors.Is(err, services.ErrPhotoNotImage)
}

func parseRequestStatus(raw string) (domain.RequestStatus, error) {
	norm := strings.ToLower(strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(raw)))
	switch norm {
	case "all", "":
		return "", nil
	case "inprogress", "progress":
		return domain.StatusInProgress, nil
	case "done":
		return domain.StatusCompleted, nil
	}
	for _, status := range domain.RequestStatuses() {
		if norm == strings.ToLower(string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: status %q", services.ErrInvalidOption, raw)
}

func statusUsage() string {
	names := []string{"all"}
	for _, status := range domain.RequestStatuses() {
		names = append(names, strings.ReplaceAll(strings.ToLower(string(status)), " ", "-"))
	}
	return "<" + strings.Join(names, "|") + ">"
}

func panelUsage() string {
	names := make([]string, 0, len(services.Panels()))
	for _, p := range services.Panels() {
		names = append(names, string(p))
	}
	return "<" + strings.Join(names, "|") + ">"
}

func findCard(cards []services.RequestCard, id string) (services.RequestCard, bool) {
	for _, c := range cards {
		if c.ID().String() == id {
			return c, true
		}
	}
	return services.RequestCard{}, false
}

// RunAdmin drives the admin dashboard until quit or EOF.
func (s *Shell) RunAdmin(ctx context.Context, d *services.AdminDashboard) error {
	return s.loop(ctx, "admin", s.adminCommands(d, d.Cards))
}

func (s *Shell) adminCommands(d *services.AdminDashboard, cards func() []services.RequestCard) map[string]command {
	return map[string]command{
		"list": {"show requests", func(ctx context.Context, _ []string) error {
			RenderSnapshotHeader(s.out, d.Snapshot())
			RenderCards(s.out, cards())
			return nil
		}},
		"refresh": {"reload now", func(ctx context.Context, _ []string) error {
			return d.Load(ctx)
		}},
		"filter": {statusUsage(), func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return usageError("filter " + statusUsage())
			}
			status, err := parseRequestStatus(args[0])
			if err != nil {
				return err
			}
			f := d.Snapshot().Filter
			f.Status = status
			return d.SetFilter(ctx, f)
		}},
		"search": {"<text> (empty clears)", func(ctx context.Context, args []string) error {
			f := d.Snapshot().Filter
			f.Query = strings.Join(args, " ")
			return d.SetFilter(ctx, f)
		}},
		"resolve": {"<id> mark a request completed", func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return usageError("resolve <id>")
			}
			card, ok := findCard(cards(), args[0])
			if !ok {
				return d.Resolve(ctx, domain.ID(args[0]))
			}
			return card.Resolve(ctx)
		}},
		"assign": {"<id> assign a request", func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return usageError("assign <id>")
			}
			card, ok := findCard(cards(), args[0])
			if !ok {
				return fmt.Errorf("%w: request %s", services.ErrActionUnavailable, args[0])
			}
			if err := card.Assign(ctx); err != nil {
				return err
			}
			return s.fillAssignment(ctx, d)
		}},
		"create": {"create a request for a customer", func(ctx context.Context, _ []string) error {
			return s.fillCreateRequest(ctx, d)
		}},
	}
}

func (s *Shell) fillAssignment(ctx context.Context, d *services.AdminDashboard) error {
	form := d.Assignment
	defer func() {
		if form.IsOpen() {
			form.Close()
		}
	}()

	snap := d.Snapshot()
	fmt.Fprintln(s.out, heading.Sprint("Assignees"))
	for _, u := range d.Assignees() {
		fmt.Fprintf(s.out, "  #%s %s (%s)\n", u.ID, u.Username, u.Role.Label())
	}
	fmt.Fprintln(s.out, heading.Sprint("Operators"))
	RenderContacts(s.out, snap.Contacts)
	if history, err := d.AssignmentHistory(ctx, form.Draft().RequestID); err == nil {
		fmt.Fprintln(s.out, heading.Sprint("History"))
		RenderAssignments(s.out, history)
	}

	assignee, err := s.Ask("assignee id")
	if err != nil {
		return err
	}
	form.SetAssignee(domain.ID(assignee))
	operator, err := s.Ask("operator id (optional)")
	if err != nil {
		return err
	}
	form.SetOperator(domain.ID(operator))
	status, err := s.Ask("status [assigned|in_progress|completed]")
	if err != nil {
		return err
	}
	if status != "" {
		if err := form.SetStatus(domain.AssignmentStatus(status)); err != nil {
			return err
		}
	}
	notes, err := s.Ask("notes (optional)")
	if err != nil {
		return err
	}
	form.SetNotes(notes)
	return form.Submit(ctx)
}

func (s *Shell) fillCreateRequest(ctx context.Context, d *services.AdminDashboard) error {
	form := d.CreateRequest
	form.Open()
	defer func() {
		if form.IsOpen() {
			form.Close()
		}
	}()

	info, err := s.AskLines("customer info: name, vehicle, phone, location, one per line")
	if err != nil {
		return err
	}
	form.EditCustomerInfo(info)
	form.BlurCustomerInfo()
	draft := form.Draft()
	fmt.Fprintf(s.out, "%s\n", muted.Sprintf("parsed: %s / %s %s / %s / %s",
		draft.CustomerName, draft.CarModel, draft.CarYear, draft.CustomerPhone, draft.Location))

	issue, err := s.Ask("issue")
	if err != nil {
		return err
	}
	form.SetIssue(issue)

	urgency, err := s.Ask("urgency [low|medium|high|emergency] (default medium)")
	if err != nil {
		return err
	}
	if urgency != "" {
		if err := form.SetUrgency(urgency); err != nil {
			return err
		}
	}

	image, err := s.Ask("photo path or image URL (optional)")
	if err != nil {
		return err
	}
	if err := s.applyImage(form, image); err != nil {
		return err
	}

	RenderContacts(s.out, d.Snapshot().Contacts)
	operator, err := s.Ask("assign to operator id (optional)")
	if err != nil {
		return err
	}
	form.SetOperator(domain.ID(operator))

	created, err := form.Submit(ctx)
	if created != nil {
		fmt.Fprintf(s.out, "created request #%s\n", created.ID)
	}
	return err
}

func (s *Shell) applyImage(form *services.CreateRequestForm, image string) error {
	switch {
	case image == "":
		return nil
	case strings.HasPrefix(image, "http://"), strings.HasPrefix(image, "https://"):
		form.SetImageURL(image)
		return nil
	default:
		photo, err := ReadPhoto(image)
		if err != nil {
			return err
		}
		return form.AttachPhoto(photo)
	}
}

// ReadPhoto loads a photo from disk; the content type is sniffed later.
func ReadPhoto(path string) (domain.Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("read photo: %w", err)
	}
	return domain.Photo{Filename: filepath.Base(path), Data: data}, nil
}

// RunSuperAdmin drives the super admin dashboard until quit or EOF.
func (s *Shell) RunSuperAdmin(ctx context.Context, d *services.SuperAdminDashboard) error {
	commands := s.adminCommands(d.AdminDashboard, d.Cards)

	commands["panel"] = command{panelUsage(), func(ctx context.Context, args []string) error {
		if len(args) != 1 {
			return usageError("panel " + panelUsage())
		}
		if err := d.SetPanel(services.Panel(strings.ToLower(args[0]))); err != nil {
			return err
		}
		return s.showPanel(d)
	}}
	commands["show"] = command{"show the current panel", func(ctx context.Context, _ []string) error {
		return s.showPanel(d)
	}}
	commands["delete"] = command{"<id> delete a request", func(ctx context.Context, args []string) error {
		if len(args) != 1 {
			return usageError("delete <id>")
		}
		if !s.confirm("Delete request #" + args[0] + "?") {
			return nil
		}
		return d.DeleteRequest(ctx, domain.ID(args[0]))
	}}
	commands["operator"] = command{"add | edit <id> | delete <id>", func(ctx context.Context, args []string) error {
		return s.operatorCommand(ctx, d, args)
	}}
	commands["account"] = command{"add | edit <id>", func(ctx context.Context, args []string) error {
		return s.accountCommand(ctx, d, args)
	}}
	for _, name := range []string{"approve", "deny", "deactivate", "reactivate"} {
		name := name
		commands[name] = command{"<user id>", func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return usageError(name + " <user id>")
			}
			id := domain.ID(args[0])
			switch name {
			case "approve":
				return d.Approve(ctx, id)
			case "deny":
				return d.Deny(ctx, id)
			case "deactivate":
				return d.Deactivate(ctx, id)
			default:
				return d.Reactivate(ctx, id)
			}
		}}
	}
	commands["role"] = command{"<user id> <user|admin|super_admin>", func(ctx context.Context, args []string) error {
		if len(args) != 2 {
			return usageError("role <user id> <user|admin|super_admin>")
		}
		role, ok := domain.ParseRole(args[1])
		if !ok {
			return fmt.Errorf("%w: role %q", services.ErrInvalidOption, args[1])
		}
		return d.SetUserRole(ctx, domain.ID(args[0]), role)
	}}

	return s.loop(ctx, "superadmin", commands)
}

func (s *Shell) confirm(question string) bool {
	answer, err := s.Ask(question + " [y/N]")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func (s *Shell) showPanel(d *services.SuperAdminDashboard) error {
	snap := d.Snapshot()
	switch d.Panel() {
	case services.PanelOperators:
		fmt.Fprintln(s.out, heading.Sprint("Operators"))
		RenderContacts(s.out, snap.Contacts)
	case services.PanelRequests:
		RenderSnapshotHeader(s.out, snap)
		RenderCards(s.out, d.Cards())
	case services.PanelUsers:
		fmt.Fprintln(s.out, heading.Sprint("Pending approval"))
		RenderUsers(s.out, d.PendingUsers(), d.UserActions)
		fmt.Fprintln(s.out, heading.Sprint("Accounts"))
		RenderUsers(s.out, d.ManagedUsers(), d.UserActions)
	}
	return nil
}

func (s *Shell) operatorCommand(ctx context.Context, d *services.SuperAdminDashboard, args []string) error {
	if len(args) == 0 {
		return usageError("operator add | edit <id> | delete <id>")
	}
	switch args[0] {
	case "add":
		d.OpenContact(nil)
	case "edit", "delete":
		if len(args) != 2 {
			return usageError("operator " + args[0] + " <id>")
		}
		if args[0] == "delete" {
			if !s.confirm("Delete operator #" + args[1] + "?") {
				return nil
			}
			return d.DeleteContact(ctx, domain.ID(args[1]))
		}
		var found *domain.Contact
		for _, c := range d.Snapshot().Contacts {
			if c.ID.String() == args[1] {
				c := c
				found = &c
			}
		}
		if found == nil {
			return fmt.Errorf("%w: operator %s", services.ErrInvalidOption, args[1])
		}
		d.OpenContact(found)
	default:
		return usageError("operator add | edit <id> | delete <id>")
	}

	form := d.Contact
	defer func() {
		if form.IsOpen() {
			form.Close()
		}
	}()
	draft := form.Draft()
	for _, field := range []struct {
		label   string
		current string
		set     func(string)
	}{
		{"name", draft.Name, form.SetName},
		{"phone", draft.Phone, form.SetPhone},
		{"email", draft.Email, form.SetEmail},
	} {
		v, err := s.Ask(fmt.Sprintf("%s [%s]", field.label, field.current))
		if err != nil {
			return err
		}
		if v != "" {
			field.set(v)
		}
	}
	role, err := s.Ask(fmt.Sprintf("role mechanic|towing|emergency|support [%s]", draft.Role))
	if err != nil {
		return err
	}
	if role != "" {
		if err := form.SetRole(domain.ContactRole(role)); err != nil {
			return err
		}
	}
	return form.Submit(ctx)
}

func (s *Shell) accountCommand(ctx context.Context, d *services.SuperAdminDashboard, args []string) error {
	if len(args) == 0 {
		return usageError("account add | edit <id>")
	}
	switch args[0] {
	case "add":
		d.OpenAdmin(nil)
	case "edit":
		if len(args) != 2 {
			return usageError("account edit <id>")
		}
		var found *domain.Account
		for _, u := range d.Snapshot().Users {
			if u.ID.String() == args[1] {
				u := u
				found = &u
			}
		}
		if found == nil {
			return fmt.Errorf("%w: account %s", services.ErrInvalidOption, args[1])
		}
		d.OpenAdmin(found)
	default:
		return usageError("account add | edit <id>")
	}

	form := d.Admin
	defer func() {
		if form.IsOpen() {
			form.Close()
		}
	}()

	if !form.Editing() {
		for _, field := range []struct {
			label string
			set   func(string)
		}{
			{"full name", form.SetName},
			{"username", form.SetUsername},
			{"email", form.SetEmail},
			{"phone", form.SetPhone},
			{"password", form.SetPassword},
		} {
			v, err := s.Ask(field.label)
			if err != nil {
				return err
			}
			field.set(v)
		}
	}

	draft := form.Draft()
	level, err := s.Ask(fmt.Sprintf("level admin|super_admin [%s]", draft.Level))
	if err != nil {
		return err
	}
	if level != "" {
		if err := form.SetLevel(domain.Role(level)); err != nil {
			return err
		}
	}
	status, err := s.Ask(fmt.Sprintf("status active|inactive [%s]", draft.Status))
	if err != nil {
		return err
	}
	if status != "" {
		if err := form.SetStatus(domain.AccountStatus(status)); err != nil {
			return err
		}
	}
	return form.Submit(ctx)
}

// RunOnboarding walks the wizard; it returns nil once completed or skipped.
func (s *Shell) RunOnboarding(ctx context.Context, wiz *services.OnboardingWizard) error {
	RenderOnboarding(s.out, wiz)

	oneLiner, err := s.Ask(fmt.Sprintf("one-liner (max %d chars)", services.MaxOneLiner))
	if err != nil {
		return err
	}
	if oneLiner != "" {
		wiz.SetOneLiner(oneLiner)
	}
	for len(wiz.Profile().Skills) < services.MaxSkills {
		skill, err := s.Ask(fmt.Sprintf("skill %d/%d (empty to continue)", len(wiz.Profile().Skills)+1, services.MaxSkills))
		if err != nil {
			return err
		}
		if skill == "" {
			break
		}
		wiz.SetSkillDraft(skill)
		if !wiz.AddSkill() {
			fmt.Fprintln(s.out, muted.Sprint("skill already listed"))
		}
	}
	wiz.Next()

	fmt.Fprintln(s.out, strings.Join(services.HourlyOptions, " | "))
	hourly, err := s.Ask("hourly band")
	if err != nil {
		return err
	}
	if err := wiz.SetHourly(hourly); err != nil {
		fmt.Fprintln(s.out, err)
	}
	for i := 0; i < services.LinkSlots; i++ {
		link, err := s.Ask(fmt.Sprintf("link %d (optional)", i+1))
		if err != nil {
			return err
		}
		_ = wiz.SetLink(i, link)
	}
	photo, err := s.Ask("photo path (optional)")
	if err != nil {
		return err
	}
	if photo != "" {
		p, err := ReadPhoto(photo)
		if err == nil {
			err = wiz.SetPhoto(p)
		}
		if err != nil {
			fmt.Fprintln(s.out, err)
		}
	}

	if err := wiz.Complete(ctx); err != nil {
		s.log.Warnf("console: %v", err)
	}
	RenderOnboarding(s.out, wiz)
	return nil
}

// SubmitUserRequest is the plain user's form.
func (s *Shell) SubmitUserRequest(ctx context.Context, svc *services.UserRequestService) error {
	info, err := s.AskLines("describe who you are, your vehicle, phone, location and the problem")
	if err != nil {
		return err
	}
	image, err := s.Ask("photo path or image URL (optional)")
	if err != nil {
		return err
	}

	sub := services.UserSubmission{UserInfo: info}
	switch {
	case image == "":
	case strings.HasPrefix(image, "http://"), strings.HasPrefix(image, "https://"):
		sub.ImageURL = image
	default:
		photo, err := ReadPhoto(image)
		if err != nil {
			return err
		}
		sub.Photo = &photo
	}
	_, err = svc.Submit(ctx, sub)
	return err
}
