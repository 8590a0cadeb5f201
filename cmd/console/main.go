package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/AssiaOU26/Cars-front/internal/adapters/console"
	"github.com/AssiaOU26/Cars-front/internal/adapters/gateway"
	"github.com/AssiaOU26/Cars-front/internal/adapters/handler"
	"github.com/AssiaOU26/Cars-front/internal/adapters/messaging"
	"github.com/AssiaOU26/Cars-front/internal/adapters/outbox"
	"github.com/AssiaOU26/Cars-front/internal/adapters/storage"
	"github.com/AssiaOU26/Cars-front/internal/config"
	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
	"github.com/AssiaOU26/Cars-front/internal/core/services"
	"github.com/AssiaOU26/Cars-front/internal/logger"
	"github.com/AssiaOU26/Cars-front/internal/telemetry"
)

const usage = `usage: cars-console <command>

commands:
  login        sign in with email and password
  register     create an account
  logout       sign out
  whoami       show the signed-in account
  dashboard    open the view for your role (default)
  submit       send a service request
  onboarding   fill in your profile
`

type app struct {
	cfg     *config.Config
	log     *logger.Logger
	store   ports.LocalStorage
	session *services.Session
	api     *gateway.Client
	auth    *services.AuthService
	toast   *console.Toaster
	shell   *console.Shell
	notify  ports.DispatchNotifier
}

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	command := "dashboard"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg := config.Load()
	log := logger.New(logger.ParseLevel(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, "cars-front-console", cfg.Version, log)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warnf("telemetry shutdown: %v", err)
		}
	}()

	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	defer closeStore()

	session, err := services.NewSession(ctx, store, log)
	if err != nil {
		log.Fatalf("failed to restore session: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	api := gateway.NewClient(gateway.Options{
		BaseURL: cfg.APIBase,
		Tokens:  session,
		Timeout: cfg.HTTPTimeout,
		Metrics: gateway.NewMetrics(registry),
		Logger:  log,
	})

	var (
		notify ports.DispatchNotifier = ports.NopNotifier{}
		relay  *outbox.Relay
	)
	if cfg.Dispatch.Enabled() {
		broker, err := messaging.NewDispatchBroker(cfg.Dispatch)
		if err != nil {
			log.Warnf("dispatch broker unavailable, assignments will not be published: %v", err)
		} else {
			defer broker.Close()
			relay = outbox.NewRelay(store, broker, log)
			go relay.Start(ctx)
			notify = relay
		}
	}

	if cfg.StatusAddr != "" {
		health := handler.NewHealthHandler(store, api, cfg.Version, log)
		if relay != nil {
			health.WithOutbox(relay)
		}
		srv := &http.Server{
			Addr: cfg.StatusAddr,
			Handler: handler.NewRouter(handler.RouterOptions{
				Health:            health,
				Gatherer:          registry,
				AllowedOrigins:    cfg.StatusCORS,
				RequestsPerMinute: cfg.StatusRPM,
			}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Infof("status server listening on %s", cfg.StatusAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("status server: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	toast := console.NewToaster(os.Stdout)
	a := &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		session: session,
		api:     api,
		auth:    services.NewAuthService(api, session, toast, log),
		toast:   toast,
		shell:   console.NewShell(os.Stdin, os.Stdout, log),
		notify:  notify,
	}

	if err := a.run(ctx, command); err != nil {
		log.Errorf("%s: %v", command, err)
		stop()
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string) error {
	switch command {
	case "login":
		return a.login(ctx)
	case "register":
		return a.register(ctx)
	case "logout":
		return a.auth.Logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "dashboard":
		return a.dashboard(ctx)
	case "submit":
		if !a.session.Authenticated() {
			return services.ErrNotAuthenticated
		}
		return a.shell.SubmitUserRequest(ctx, services.NewUserRequestService(a.api, a.toast, a.log))
	case "onboarding":
		return a.onboarding(ctx, true)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context) error {
	email, err := a.shell.Ask("email")
	if err != nil {
		return err
	}
	password, err := a.shell.Ask("password")
	if err != nil {
		return err
	}
	if err := a.auth.Login(ctx, email, password); err != nil {
		return err
	}
	return a.onboarding(ctx, false)
}

func (a *app) register(ctx context.Context) error {
	var reg domain.Registration
	for _, field := range []struct {
		label string
		dst   *string
	}{
		{"username", &reg.Username},
		{"email", &reg.Email},
		{"password", &reg.Password},
	} {
		v, err := a.shell.Ask(field.label)
		if err != nil {
			return err
		}
		*field.dst = v
	}
	_, err := a.auth.Register(ctx, reg)
	return err
}

func (a *app) whoami(ctx context.Context) error {
	id, kind, err := a.auth.ResolveViewer(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("#%s %s <%s> role=%s status=%s view=%s\n", id.ID, id.Username, id.Email, id.Role, id.Status, kind)
	return nil
}

// onboarding runs the wizard; unless forced it only runs when still pending.
func (a *app) onboarding(ctx context.Context, force bool) error {
	if !force && !services.ShouldShowOnboarding(ctx, a.store, a.session.Authenticated()) {
		return nil
	}
	if !a.session.Authenticated() {
		return services.ErrNotAuthenticated
	}
	return a.shell.RunOnboarding(ctx, services.NewOnboardingWizard(ctx, a.store, a.log))
}

func (a *app) dashboard(ctx context.Context) error {
	if !a.session.Authenticated() {
		fmt.Println("Please sign in first: cars-console login")
		return services.ErrNotAuthenticated
	}

	id, kind, err := a.auth.ResolveViewer(ctx)
	if err != nil {
		return err
	}
	a.log.Debugf("viewer %s resolved as %s", id.ID, kind)

	viewCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.session.OnInvalidate(func() {
		fmt.Println("Your session has expired. Please sign in again.")
		cancel()
	})

	opts := services.DashboardOptions{
		PollInterval: a.cfg.PollInterval,
		RequestLimit: a.cfg.RequestLimit,
		Toaster:      a.toast,
		Notifier:     a.notify,
		Logger:       a.log,
	}

	switch kind {
	case domain.ViewerPending:
		console.RenderPending(os.Stdout, id)
		return nil
	case domain.ViewerSuperAdmin:
		d := services.NewSuperAdminDashboard(a.api, services.StaticIdentity(id), opts)
		go d.Run(viewCtx)
		return viewEnded(ctx, a.shell.RunSuperAdmin(viewCtx, d))
	case domain.ViewerAdmin:
		d := services.NewAdminDashboard(a.api, services.StaticIdentity(id), opts)
		go d.Run(viewCtx)
		return viewEnded(ctx, a.shell.RunAdmin(viewCtx, d))
	default:
		console.RenderNoAccess(os.Stdout)
		if err := a.onboarding(viewCtx, false); err != nil {
			return err
		}
		fmt.Println("You can send a service request with: cars-console submit")
		return nil
	}
}

// viewEnded treats a view closed by session expiry as a clean exit.
func viewEnded(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) && ctx.Err() == nil {
		return nil
	}
	return err
}
