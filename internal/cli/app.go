package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/podlift/podlift/internal/api"
	"github.com/podlift/podlift/internal/cache"
	"github.com/podlift/podlift/internal/config"
	"github.com/podlift/podlift/internal/localdata"
	"github.com/podlift/podlift/internal/logging"
	"github.com/podlift/podlift/internal/notify"
	"github.com/podlift/podlift/internal/services"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// App holds the wired-up client: one REST client, one cache, one local
// database, and the services the REPL commands call.
type App struct {
	config   *config.Config
	log      logging.Logger
	client   api.Client
	repos    *localdata.Repositories
	monitor  *services.Monitor
	queue    *notify.Queue
	userName string

	auth           *services.AuthService
	campaigns      *services.CampaignService
	mediaKits      *services.MediaKitService
	placements     *services.PlacementService
	pitches        *services.PitchService
	questionnaires *services.QuestionnaireService
	settings       *services.SettingsService

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	repos, err := localdata.InitDatabase(ctx, cfg.DataFile)
	if err != nil {
		return nil, err
	}

	client := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout)
	monitor := services.NewMonitor(client, log)
	queue := notify.NewQueue(32)

	deps := services.Deps{
		Client:    client,
		Resolver:  cache.NewResolver(cache.NewMemoryStore(cfg.CacheTTL)),
		Snapshots: repos.Snapshots,
		Notifier:  queue,
		Log:       log,
		Online:    monitor.Online,
	}

	return &App{
		config:         cfg,
		log:            log,
		client:         client,
		repos:          repos,
		monitor:        monitor,
		queue:          queue,
		auth:           services.NewAuthService(client, repos.Metadata, repos.Snapshots, log),
		campaigns:      services.NewCampaignService(deps),
		mediaKits:      services.NewMediaKitService(deps),
		placements:     services.NewPlacementService(deps),
		pitches:        services.NewPitchService(deps),
		questionnaires: services.NewQuestionnaireService(deps),
		settings:       services.NewSettingsService(deps),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}, nil
}

// DefaultLogger builds the slog-backed logger the CLI runs with.
func DefaultLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))
}

func (a *App) mode() Mode {
	if a.monitor.Online() {
		return ModeOnline
	}
	return ModeOffline
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

// Run resumes any stored session, starts the connectivity watcher, and
// blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.repos.DB.Close()
	defer a.client.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if ok, err := a.auth.Resume(ctx); err != nil {
		a.log.Warn(ctx, "session resume failed", "error", err)
	} else if ok {
		if email, err := a.auth.Email(ctx); err == nil {
			a.userName = email
		}
	}

	go a.monitor.Watch(ctx, a.config.OnlineCheckInterval)

	a.Root(ctx)
	return nil
}

// requestCtx bounds one command's work independently of the REPL lifetime.
func (a *App) requestCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout+time.Second)
}
