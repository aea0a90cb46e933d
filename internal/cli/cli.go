// Package cli wires the builder into a cobra command tree: form CRUD,
// template instantiation, OpenAPI import, interactive fill and response
// management, all against a configurable storage backend.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/fill"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/workspace"
)

// App holds the shared state behind every command.
type App struct {
	ws     *workspace.Workspace
	logger *zap.Logger
	driver fill.PromptDriver

	dataDir string
	backend string
	closer  func() error
}

// Option customises the app, mostly for tests.
type Option func(*App)

// WithWorkspace injects a pre-built workspace and skips storage setup.
func WithWorkspace(ws *workspace.Workspace) Option {
	return func(a *App) {
		a.ws = ws
	}
}

// WithLogger injects the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithPromptDriver injects the prompt driver used by the fill command.
func WithPromptDriver(driver fill.PromptDriver) Option {
	return func(a *App) {
		a.driver = driver
	}
}

// New builds the root command.
func New(options ...Option) *cobra.Command {
	app := &App{logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(app)
		}
	}

	root := &cobra.Command{
		Use:           "formbuilder",
		Short:         "Build, fill and manage multi-step forms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.close()
		},
	}
	root.PersistentFlags().StringVar(&app.dataDir, "data", defaultDataDir(), "data directory")
	root.PersistentFlags().StringVar(&app.backend, "storage", "file", "storage backend: file, sqlite or memory")

	root.AddCommand(
		app.createCmd(),
		app.listCmd(),
		app.templateCmd(),
		app.duplicateCmd(),
		app.deleteCmd(),
		app.importCmd(),
		app.fillCmd(),
		app.responsesCmd(),
	)
	return root
}

// open builds the workspace against the selected backend and loads the
// persisted state. A workspace injected through WithWorkspace wins.
func (a *App) open(cmd *cobra.Command) error {
	if a.ws != nil {
		return a.ws.Open(cmd.Context())
	}

	var kv storage.KV
	switch a.backend {
	case "memory":
		kv = storage.NewMemory()
	case "file":
		fileKV, err := storage.NewFile(a.dataDir)
		if err != nil {
			return fmt.Errorf("open data directory: %w", err)
		}
		kv = fileKV
	case "sqlite":
		if err := os.MkdirAll(a.dataDir, 0o755); err != nil {
			return fmt.Errorf("open data directory: %w", err)
		}
		sqliteKV, err := storage.OpenSQLite(cmd.Context(), filepath.Join(a.dataDir, "formbuilder.db"))
		if err != nil {
			return fmt.Errorf("open sqlite store: %w", err)
		}
		kv = sqliteKV
		a.closer = sqliteKV.Close
	default:
		return fmt.Errorf("unknown storage backend %q", a.backend)
	}

	a.ws = workspace.New(
		workspace.WithKV(kv),
		workspace.WithLogger(a.logger),
	)
	return a.ws.Open(cmd.Context())
}

func (a *App) close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".formbuilder"
	}
	return filepath.Join(home, ".formbuilder")
}

func printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
