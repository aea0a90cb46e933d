// Package workspace wires the form store, response store, session state and
// undo history into one facade. Callers route every form mutation through
// Apply so the history log stays consistent with the store.
package workspace

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/history"
	"github.com/goliatone/go-formbuilder/pkg/response"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/store"
)

// Workspace bundles the editor state for one builder instance.
type Workspace struct {
	forms     *store.Store
	responses *response.Store
	session   *session.Session
	undo      *history.Log[store.Snapshot]
}

type config struct {
	kv           storage.KV
	logger       *zap.Logger
	newID        func() string
	now          func() time.Time
	historyDepth int
}

// Option customises the workspace.
type Option func(*config)

// WithKV injects the durable snapshot adapter shared by every component.
func WithKV(kv storage.KV) Option {
	return func(c *config) {
		c.kv = kv
	}
}

// WithLogger injects the logger shared by every component.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIDGenerator overrides the identifier generator for forms and
// responses alike.
func WithIDGenerator(newID func() string) Option {
	return func(c *config) {
		c.newID = newID
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// WithHistoryDepth caps the undo stack. Non-positive values keep the
// default.
func WithHistoryDepth(depth int) Option {
	return func(c *config) {
		c.historyDepth = depth
	}
}

// New assembles a workspace. Without a KV adapter everything is
// memory-only.
func New(options ...Option) *Workspace {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	storeOpts := []store.Option{
		store.WithKV(cfg.kv),
		store.WithLogger(cfg.logger),
	}
	responseOpts := []response.Option{
		response.WithKV(cfg.kv),
		response.WithLogger(cfg.logger),
	}
	if cfg.newID != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(cfg.newID))
		responseOpts = append(responseOpts, response.WithIDGenerator(cfg.newID))
	}
	if cfg.now != nil {
		storeOpts = append(storeOpts, store.WithClock(cfg.now))
		responseOpts = append(responseOpts, response.WithClock(cfg.now))
	}

	return &Workspace{
		forms:     store.New(storeOpts...),
		responses: response.New(responseOpts...),
		session:   session.New(session.WithKV(cfg.kv), session.WithLogger(cfg.logger)),
		undo:      history.New[store.Snapshot](cfg.historyDepth),
	}
}

// Open restores forms, responses and the theme preference from the KV
// adapter. Call once before use.
func (w *Workspace) Open(ctx context.Context) error {
	if err := w.forms.Load(ctx); err != nil {
		return err
	}
	if err := w.responses.Load(ctx); err != nil {
		return err
	}
	return w.session.LoadTheme(ctx)
}

// Forms exposes the form store for reads. Mutations go through Apply.
func (w *Workspace) Forms() *store.Store {
	return w.forms
}

// Responses exposes the response store.
func (w *Workspace) Responses() *response.Store {
	return w.responses
}

// Session exposes the UI state.
func (w *Workspace) Session() *session.Session {
	return w.session
}

// Apply runs a mutation against the form store with undo capture. The
// pre-mutation snapshot is pushed only when the mutation reports that it
// changed something, so rejected no-ops never pollute the history.
func (w *Workspace) Apply(mutate func(*store.Store) bool) bool {
	before := w.forms.Snapshot()
	if !mutate(w.forms) {
		return false
	}
	w.undo.Push(before)
	return true
}

// Undo steps the form store back one mutation.
func (w *Workspace) Undo() bool {
	restored, ok := w.undo.Undo(w.forms.Snapshot())
	if !ok {
		return false
	}
	w.forms.Restore(restored)
	return true
}

// Redo reapplies the most recently undone mutation.
func (w *Workspace) Redo() bool {
	restored, ok := w.undo.Redo(w.forms.Snapshot())
	if !ok {
		return false
	}
	w.forms.Restore(restored)
	return true
}

// CanUndo reports whether an undo step is available.
func (w *Workspace) CanUndo() bool {
	return w.undo.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (w *Workspace) CanRedo() bool {
	return w.undo.CanRedo()
}

// ClearHistory drops the undo and redo stacks, for example after loading a
// fresh document set.
func (w *Workspace) ClearHistory() {
	w.undo.Clear()
}
