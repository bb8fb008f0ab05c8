package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/promptbook/internal/client/client"
	"github.com/dmitrijs2005/promptbook/internal/client/config"
	"github.com/dmitrijs2005/promptbook/internal/client/models"
	metarepo "github.com/dmitrijs2005/promptbook/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/promptbook/internal/client/services"
	"github.com/dmitrijs2005/promptbook/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// signInWait bounds how long a command waits for the session event that
// follows a successful sign-in or sign-out.
const signInWait = 5 * time.Second

// Backend is the remote store the CLI drives. *client.GRPCClient satisfies it.
type Backend interface {
	client.RemoteStore
	Ping(ctx context.Context) error
	Close() error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	backend Backend
	db      *sql.DB

	state   *services.State
	nav     *services.Navigator
	prompts *services.PromptStore
	session *services.SessionController

	reader *bufio.Reader
	out    io.Writer

	// filter is the search box and category chip of the list screens.
	filter services.Filter
	// listed is the last list shown, so "open 2" can refer to it.
	listed []models.Prompt

	modeMu sync.RWMutex
	mode   Mode
}

// NewApp opens the local session database, connects to the backend and
// builds the session, prompt and navigation services on top of it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewPromptBookClient(c.ServerEndpointAddr, metarepo.NewSQLiteRepository(db), logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := newApp(c, apiClient, logger, os.Stdin, os.Stdout)
	app.db = db
	return app, nil
}

func newApp(c *config.Config, backend Backend, logger logging.Logger, in io.Reader, out io.Writer) *App {
	if logger == nil {
		logger = logging.Nop{}
	}
	state := services.NewState()
	nav := services.NewNavigator(state)
	prompts := services.NewPromptStore(backend, state, nav, logger)
	return &App{
		config:  c,
		logger:  logger,
		backend: backend,
		state:   state,
		nav:     nav,
		prompts: prompts,
		session: services.NewSessionController(backend, prompts, state, nav, logger),
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

// Mode reports the connectivity last observed by the online watcher.
func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

// Run restores a stored session, starts the online watcher and runs the REPL
// until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Start(ctx)
	a.session.RestoreSession(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("Welcome to PromptBook CLI (type 'help' for commands)")
	if a.isLoggedIn() {
		a.render()
	} else {
		printlnFn("Not signed in: use 'login', 'register' or 'oauth <provider>'")
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close stops the session listener and releases the backend and the local
// database.
func (a *App) Close() {
	a.session.Close()
	if err := a.backend.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing backend", "error", err)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.state.View() != models.ViewUnauthenticated
}

// commandContext applies the configured per-command timeout.
func (a *App) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout > 0 {
		return context.WithTimeout(ctx, a.config.RequestTimeout)
	}
	return context.WithCancel(ctx)
}

func (a *App) getStatus() string {
	s := ""
	if id := a.state.Identity(); id != nil {
		s = id.Name + " "
	}
	s += a.state.View().String()
	if m := a.Mode(); m != "" {
		s += " " + string(m)
	}
	return fmt.Sprintf("(%s)", s)
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// connectivity mode. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.backend.Ping(pingCtx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
