// Package session holds the per-tab UI state: field selection, preview
// device, sidebar view, config panel visibility and the theme preference.
// Only the theme survives restarts; everything else is ephemeral.
package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/storage"
)

// Theme is the persisted appearance preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// PreviewMode selects the simulated device width in the preview pane.
type PreviewMode string

const (
	PreviewDesktop PreviewMode = "desktop"
	PreviewTablet  PreviewMode = "tablet"
	PreviewMobile  PreviewMode = "mobile"
)

// SidebarView selects which panel the builder sidebar shows.
type SidebarView string

const (
	SidebarFields     SidebarView = "fields"
	SidebarProperties SidebarView = "properties"
)

// Session is the UI state container.
type Session struct {
	selectedFieldID string
	previewMode     PreviewMode
	theme           Theme
	sidebarView     SidebarView
	configPanelOpen bool

	kv     storage.KV
	logger *zap.Logger
}

// Option customises the session.
type Option func(*Session)

// WithKV injects the adapter used to persist the theme preference.
func WithKV(kv storage.KV) Option {
	return func(s *Session) {
		s.kv = kv
	}
}

// WithLogger injects the logger used for persistence warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a session with the default light theme, desktop preview and
// fields sidebar.
func New(options ...Option) *Session {
	s := &Session{
		previewMode: PreviewDesktop,
		theme:       ThemeLight,
		sidebarView: SidebarFields,
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SelectField marks a field as selected. Selecting a field opens the config
// panel; selecting the empty id clears the selection and closes it.
func (s *Session) SelectField(fieldID string) {
	s.selectedFieldID = fieldID
	s.configPanelOpen = fieldID != ""
}

// SelectedFieldID reports the current selection, empty when none.
func (s *Session) SelectedFieldID() string {
	return s.selectedFieldID
}

// ConfigPanelOpen reports whether the config panel shows.
func (s *Session) ConfigPanelOpen() bool {
	return s.configPanelOpen
}

// ToggleConfigPanel flips the config panel without touching the selection.
func (s *Session) ToggleConfigPanel() {
	s.configPanelOpen = !s.configPanelOpen
}

// CloseConfigPanel hides the panel and clears the selection.
func (s *Session) CloseConfigPanel() {
	s.configPanelOpen = false
	s.selectedFieldID = ""
}

// PreviewMode reports the active preview device.
func (s *Session) PreviewMode() PreviewMode {
	return s.previewMode
}

// SetPreviewMode switches the preview device. Unknown modes are ignored.
func (s *Session) SetPreviewMode(mode PreviewMode) bool {
	switch mode {
	case PreviewDesktop, PreviewTablet, PreviewMobile:
		s.previewMode = mode
		return true
	}
	return false
}

// SidebarView reports the visible sidebar panel.
func (s *Session) SidebarView() SidebarView {
	return s.sidebarView
}

// SetSidebarView switches the sidebar panel. Unknown views are ignored.
func (s *Session) SetSidebarView(view SidebarView) bool {
	switch view {
	case SidebarFields, SidebarProperties:
		s.sidebarView = view
		return true
	}
	return false
}

// Theme reports the active theme.
func (s *Session) Theme() Theme {
	return s.theme
}

// SetTheme switches and persists the theme. Unknown themes are ignored.
func (s *Session) SetTheme(theme Theme) bool {
	switch theme {
	case ThemeLight, ThemeDark:
		s.theme = theme
		s.persistTheme()
		return true
	}
	return false
}

// ToggleTheme flips between light and dark and persists the result.
func (s *Session) ToggleTheme() Theme {
	if s.theme == ThemeLight {
		s.theme = ThemeDark
	} else {
		s.theme = ThemeLight
	}
	s.persistTheme()
	return s.theme
}

// LoadTheme restores the persisted theme preference. Absent or unrecognized
// values leave the default in place.
func (s *Session) LoadTheme(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	data, ok, err := s.kv.Get(ctx, storage.KeyTheme)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	switch Theme(data) {
	case ThemeLight, ThemeDark:
		s.theme = Theme(data)
	}
	return nil
}

func (s *Session) persistTheme() {
	if s.kv == nil {
		return
	}
	if err := s.kv.Set(context.Background(), storage.KeyTheme, []byte(s.theme)); err != nil {
		s.logger.Warn("persisting theme preference failed", zap.Error(err))
	}
}
