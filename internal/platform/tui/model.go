package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
	"github.com/vovakirdan/tui-asteroids/internal/storage"
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	fixedSeed  bool // Restarts reuse the configured seed
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current run has been stored
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil store disables run history; a nil logger discards.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	fixed := cfg.Seed != 0
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		fixedSeed:  fixed,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only from the pause screen
	if m.inputFrame.Has(core.ActionBack) && m.gameState.Paused {
		m.saveRun()
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. The field is resolution
// independent, so the run continues at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) {
		m.saveRun()
		if !m.fixedSeed {
			m.config.Seed = time.Now().UnixNano()
		}
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	in := m.inputFrame.Clone()
	m.inputFrame.Clear()

	result := m.game.Step(in)
	m.gameState = result.State

	if result.Collisions > 0 {
		m.logger.Debug("ship contact", "tick", m.gameState.Tick, "asteroids", result.Collisions)
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the current run once. Runs that never ticked are skipped.
func (m *Model) saveRun() {
	if m.runSaved || m.store == nil {
		return
	}
	m.runSaved = true

	st := m.game.State()
	if st.Tick == 0 {
		return
	}

	id, err := m.store.SaveRun(RunFromState(m.game.ID(), m.config.Seed, st))
	if err != nil {
		m.logger.Warn("could not save run", "err", err)
		return
	}
	m.logger.Info("run saved", "id", id, "mode", m.game.ID(), "ticks", st.Tick)
}

// RunFromState builds a history record from a game state.
func RunFromState(mode string, seed int64, st core.GameState) storage.Run {
	return storage.Run{
		Mode:       mode,
		Seed:       seed,
		Ticks:      st.Tick,
		Elapsed:    st.Elapsed,
		Spawned:    st.Stats.Spawned,
		Shots:      st.Stats.Shots,
		Collisions: st.Stats.Collisions,
		Hits:       st.Stats.Hits,
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Config returns the runtime config of the current run.
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
