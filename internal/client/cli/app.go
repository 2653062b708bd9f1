package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/notelance/notelance/internal/client/config"
	"github.com/notelance/notelance/internal/client/remote"
	"github.com/notelance/notelance/internal/client/repositories/metadata"
	"github.com/notelance/notelance/internal/client/services"
	"github.com/notelance/notelance/internal/client/storage"
	"github.com/notelance/notelance/internal/client/sync"
	"github.com/notelance/notelance/internal/logging"
)

// App wires the CLI commands to the note and category services and the
// sync orchestrator. One App owns one database handle for its lifetime.
type App struct {
	config       *config.Config
	notes        *services.NoteService
	categories   *services.CategoryService
	orchestrator *sync.Orchestrator
	meta         metadata.Repository
	db           *sql.DB
	log          logging.Logger
	reader       *bufio.Reader
	out          io.Writer
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	clientID, err := metadata.EnsureClientID(ctx, repos.Metadata)
	if err != nil {
		repos.DB.Close()
		return nil, err
	}
	log.Info(ctx, "client identity ready", "client_id", clientID)

	apiKey := c.RemoteAPIKey
	if apiKey == "" {
		apiKey, err = GetAPIKey(os.Stdout)
		if err != nil {
			repos.DB.Close()
			return nil, err
		}
	}

	rc := remote.NewHTTPClient(c.RemoteBaseURL, apiKey, c.RequestTimeout)

	return &App{
		config:       c,
		notes:        services.NewNoteService(repos.Notes, repos.Categories),
		categories:   services.NewCategoryService(repos.DB, repos.Categories),
		orchestrator: sync.NewOrchestrator(rc, repos.Categories, repos.Notes, repos.Metadata, log),
		meta:         repos.Metadata,
		db:           repos.DB,
		log:          log,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}, nil
}

// Run drives the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, func() string { return string(a.orchestrator.Status()) }, scanner)
}
