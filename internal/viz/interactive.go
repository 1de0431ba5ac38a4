package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/ballpit/internal/config"
)

var presetInfo = map[string]string{
	"triangle": "staggered row at rest",
	"pair":     "two overlapping balls",
	"stacked":  "three coincident centres",
	"corner":   "wall and corner bounces",
	"break":    "cue ball into the row",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuInactive = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuDesc     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// app walks the user from a preset menu through a parameter screen into a
// running Model.
type app struct {
	state, cursor int
	presets       []string
	selected      string
	base, cfg     *config.Config
	paramNames    []string
	paramCursor   int
	editing       bool
	editBuf       string
	err           error
	width, height int
	liveModel     Model
}

func NewInteractiveApp(base *config.Config) *app {
	if base == nil {
		base = config.DefaultConfig()
	}
	return &app{
		state:      stateMenu,
		presets:    config.ListPresets(),
		base:       base.Clone(),
		cfg:        base.Clone(),
		paramNames: []string{"gain", "restitution", "damping", "deadzone", "fps"},
		width:      80,
		height:     24,
	}
}

func (m app) Init() tea.Cmd { return nil }

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateSim {
			return m.forward(msg)
		}
		return m, nil
	default:
		if m.state == stateSim {
			return m.forward(msg)
		}
	}
	return m, nil
}

func (m app) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	newLive, cmd := m.liveModel.Update(msg)
	m.liveModel = newLive.(Model)
	return m, cmd
}

func (m app) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		return m.forward(msg)
	}
	return m, nil
}

func (m app) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.cfg = config.ApplyPreset(m.base, m.selected)
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m app) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil {
				m.setParam(m.paramNames[m.paramCursor], val)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, fmt.Sprintf("%g", m.param(m.paramNames[m.paramCursor]))
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "s":
		return m.start()
	}
	return m, nil
}

func (m *app) param(name string) float64 {
	p := m.cfg.Physics
	switch name {
	case "gain":
		return p.Gain
	case "restitution":
		return p.Restitution
	case "damping":
		return p.Damping
	case "deadzone":
		return p.Deadzone
	case "fps":
		return float64(m.cfg.FPS)
	}
	return 0
}

func (m *app) setParam(name string, v float64) {
	switch name {
	case "gain":
		m.cfg.Physics.Gain = v
	case "restitution":
		m.cfg.Physics.Restitution = v
	case "damping":
		m.cfg.Physics.Damping = v
	case "deadzone":
		m.cfg.Physics.Deadzone = v
	case "fps":
		m.cfg.FPS = int(v)
	}
}

func (m *app) nudge(dir float64) {
	name := m.paramNames[m.paramCursor]
	step := 0.01
	if name == "fps" {
		step = 5
	}
	m.setParam(name, m.param(name)+dir*step)
}

// start validates the edited config and hands over to the live model. An
// invalid config keeps the user on the parameter screen.
func (m app) start() (tea.Model, tea.Cmd) {
	live, err := NewModel(m.cfg, m.selected)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.liveModel = live
	m.state, m.err = stateSim, nil
	return m, m.liveModel.Init()
}

func (m app) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(menuKey.Render(pairs[i]) + menuInactive.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m app) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("BALLPIT") + "\n    " + menuSub.Render("soft collision sandbox") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-12s", name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuInactive.Render(fmt.Sprintf("  %-12s", name)), menuInactive.Render(desc)))
		}
	}
	b.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m app) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(m.selected)) + "\n    " + menuSub.Render(presetInfo[m.selected]) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.paramNames {
		valStr := fmt.Sprintf("%8.3f", m.param(name))
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-12s", name)), menuDesc.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuInactive.Render(fmt.Sprintf("  %-12s", name)), menuInactive.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + StatusRecording.UnsetBlink().Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyHints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive opens the preset menu. base supplies the surface size and
// colours every preset is shown with.
func RunInteractive(base *config.Config) error {
	_, err := tea.NewProgram(NewInteractiveApp(base), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// RunLive skips the menu and runs cfg directly.
func RunLive(cfg *config.Config, title string) error {
	m, err := NewModel(cfg, title)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
