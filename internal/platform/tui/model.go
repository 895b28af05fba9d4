package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-parallax/internal/core"
)

// statusLines is the number of rows below the map: status bar plus the
// prompt/message line.
const statusLines = 2

// Model is the Bubble Tea model for the viewer.
type Model struct {
	viewer     *Viewer
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keys       KeyMap
	help       help.Model
	prompt     textinput.Model
	slots      *SlotsModel
	prompting  bool
	message    string
	failed     bool
	quitting   bool
}

// NewModel creates a Bubble Tea model around a viewer.
func NewModel(v *Viewer, cfg core.RuntimeConfig) Model {
	ti := textinput.New()
	ti.Prompt = ":"
	ti.Placeholder = "help"
	ti.CharLimit = 256

	m := Model{
		viewer:     v,
		config:     cfg,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-statusLines, 1)),
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		prompt:     ti,
	}
	v.Resize(cfg.ScreenW, max(cfg.ScreenH-statusLines, 1))
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case m.prompting:
			return m.handlePromptKey(msg)
		case m.slots != nil:
			return m.handleSlotsKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	if m.prompting {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input on the map.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Saves):
		slots, err := m.viewer.Slots()
		sm := NewSlotsModel(slots, err, m.config.ScreenW, m.config.ScreenH)
		m.slots = &sm
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionPrompt) {
		m.inputFrame.Clear()
		m.prompting = true
		m.prompt.SetValue("")
		return m, m.prompt.Focus()
	}
	return m, nil
}

// handlePromptKey edits and submits the command line.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	case tea.KeyEnter:
		m.prompting = false
		m.prompt.Blur()
		m.runCommand(m.prompt.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// runCommand executes a prompt line and records its output.
func (m *Model) runCommand(line string) {
	out, err := m.viewer.Exec(line)
	if err != nil {
		m.message, m.failed = err.Error(), true
		return
	}
	m.message, m.failed = out, false
}

// handleSlotsKey drives the save browser.
func (m Model) handleSlotsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc", "q", "o":
		m.slots = nil
		return m, nil
	case "enter":
		if name, ok := m.slots.Selected(); ok {
			m.runCommand("load " + name)
		}
		m.slots = nil
		return m, nil
	}

	sm, cmd := m.slots.Update(msg)
	m.slots = &sm
	return m, cmd
}

// handleResize processes window resize events. Only the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	h := max(msg.Height-statusLines, 1)
	m.screen.Resize(msg.Width, h)
	m.viewer.Resize(msg.Width, h)
	m.help.Width = msg.Width
	if m.slots != nil {
		sm := NewSlotsModel(m.slots.slots, m.slots.err, msg.Width, msg.Height)
		m.slots = &sm
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if err := m.viewer.Step(m.inputFrame); err != nil {
		m.message, m.failed = err.Error(), true
	}
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.slots != nil {
		return m.slots.View()
	}

	m.screen.Clear()
	m.viewer.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteByte('\n')
	b.WriteString(RenderStatus(m.status(), m.config.ScreenW))
	b.WriteByte('\n')
	b.WriteString(m.bottomLine())
	return b.String()
}

func (m Model) status() StatusInfo {
	s := m.viewer.Session
	info := StatusInfo{
		Scope:  m.viewer.Scene().Scope().String(),
		Layers: m.viewer.Scene().Layers(),
		X:      s.Player.X(),
		Y:      s.Player.Y(),
	}
	if s.Map != nil {
		info.MapName = s.Map.Def.Name
	}
	return info
}

func (m Model) bottomLine() string {
	switch {
	case m.prompting:
		return m.prompt.View()
	case m.message != "":
		// Multi-line output (help, list) shows its first line here.
		line, _, _ := strings.Cut(m.message, "\n")
		if m.failed {
			return errorStyle.Render(line)
		}
		return messageStyle.Render(line)
	}
	return helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program with the given viewer.
func Run(v *Viewer, cfg core.RuntimeConfig) error {
	model := NewModel(v, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
