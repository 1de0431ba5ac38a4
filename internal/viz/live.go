package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/interaction"
	"github.com/san-kum/ballpit/internal/particle"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
)

const (
	canvasRows      = 32
	historyCapacity = 600
	recordingPath   = "ballpit.gif"
)

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the terminal host: it owns a simulator drawing onto a braille
// canvas and feeds it terminal mouse events as pointer input.
type Model struct {
	sim           *sim.Simulator
	canvas        *Canvas
	surface       *Surface
	title         string
	fps           int
	running       bool
	theme         Theme
	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
	pointer       particle.Vec2
	energyHistory []float64
	speedHistory  []float64
	recording     bool
	frames        []*image.Paletted
	showHelp      bool
	message       string
	width, height int
}

// NewModel builds the particle set described by cfg and a canvas whose
// sub-pixel grid keeps the surface's aspect ratio.
func NewModel(cfg *config.Config, title string) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	ps, err := cfg.InitialParticles()
	if err != nil {
		return Model{}, err
	}
	store, err := particle.NewStore(ps)
	if err != nil {
		return Model{}, err
	}
	style, err := cfg.RenderStyle()
	if err != nil {
		return Model{}, err
	}

	world := physics.NewWorld(cfg.Width, cfg.Height)
	world.Params = cfg.Physics

	cols := int(math.Round(2 * canvasRows * cfg.Width / cfg.Height))
	cols = min(max(cols, 16), 120)
	canvas := NewCanvas(cols, canvasRows)
	surface := NewSurface(canvas, cfg.Width, cfg.Height)

	params := world.GetParams()
	keys := make([]string, 0, len(params))
	initialParams := make(map[string]float64, len(params))
	for k, v := range params {
		keys = append(keys, k)
		initialParams[k] = v
	}
	sort.Strings(keys)

	theme := ThemeClassic
	theme.Ball = lipgloss.Color(cfg.Style.Fill)
	if name := cfg.Style.Theme; name != "" {
		theme = GetTheme(name)
		if theme.Name != name {
			return Model{}, fmt.Errorf("unknown theme %q (available: %v)", name, ThemeNames())
		}
	}

	m := Model{
		sim:           sim.New(store, world, surface, style),
		canvas:        canvas,
		surface:       surface,
		title:         title,
		fps:           cfg.FPS,
		running:       true,
		theme:         theme,
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
		energyHistory: make([]float64, 0, historyCapacity),
		speedHistory:  make([]float64, 0, historyCapacity),
	}
	m.sim.Redraw()
	return m, nil
}

func (m Model) Simulator() *sim.Simulator { return m.sim }

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running {
				m.step()
				m.drawOverlay()
			}
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "t":
			m.theme = m.theme.Next()
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		if m.running {
			m.step()
		} else {
			m.sim.Redraw()
		}
		m.drawOverlay()
		if m.recording {
			m.captureFrame()
		}
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

// handleMouse maps a terminal cell under the pointer to model space. The
// canvas sits at the top left of the view, inset by its padding.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	col, row := interaction.Local(float64(msg.X), float64(msg.Y),
		float64(canvasStyle.GetPaddingLeft()), float64(canvasStyle.GetPaddingTop()))
	x, y := m.surface.ToModel(col, row)
	m.pointer = particle.Vec2{X: x, Y: y}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.sim.Handle(interaction.Event{Kind: interaction.Down, X: x, Y: y})
		}
	case tea.MouseActionMotion:
		m.sim.Handle(interaction.Event{Kind: interaction.Move, X: x, Y: y})
	case tea.MouseActionRelease:
		m.sim.Handle(interaction.Event{Kind: interaction.Up, X: x, Y: y})
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

// adjustParam scales the selected parameter. Values the world rejects are
// reported and leave the parameter unchanged.
func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	if err := m.sim.World().SetParam(key, newVal); err != nil {
		m.message = err.Error()
		return
	}
	m.params[key] = newVal
	m.message = ""
}

// step advances the simulation one frame and records telemetry.
func (m *Model) step() {
	if !m.sim.Tick() {
		return
	}
	ps := m.sim.Store().Particles()

	m.energyHistory = appendCapped(m.energyHistory, particle.TotalKineticEnergy(ps))

	top := 0.0
	for _, p := range ps {
		top = math.Max(top, p.Vel.Len())
	}
	m.speedHistory = appendCapped(m.speedHistory, top)
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// drawOverlay draws the drag line from the anchor to the pointer.
func (m *Model) drawOverlay() {
	ctrl := m.sim.Controller()
	if _, ok := ctrl.Active(); !ok {
		return
	}
	a := ctrl.Anchor()
	m.surface.Line(a.X, a.Y, m.pointer.X, m.pointer.Y)
}

// reset restores the initial layout and parameters.
func (m *Model) reset() {
	m.sim.Reset()
	for k, v := range m.initialParams {
		m.params[k] = v
		m.sim.World().SetParam(k, v)
	}
	m.energyHistory = m.energyHistory[:0]
	m.speedHistory = m.speedHistory[:0]
	m.message = ""
	m.sim.Redraw()
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = make([]*image.Paletted, 0)
		return
	}
	if err := m.saveGIF(recordingPath); err != nil {
		m.message = err.Error()
		log.Error("recording failed", "err", err)
	} else {
		m.message = fmt.Sprintf("saved %s (%d frames)", recordingPath, len(m.frames))
		log.Info("recording saved", "path", recordingPath, "frames", len(m.frames))
	}
	m.recording = false
	m.frames = nil
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(lipgloss.NewStyle().Foreground(m.theme.Ball).Render(m.canvas.String()))
	header := headerStyle.Foreground(m.theme.Accent)
	label := labelStyle.Foreground(m.theme.Muted)
	value := valueStyle.Foreground(m.theme.Text)
	active := activeParamStyle.Foreground(m.theme.Accent)
	help := helpStyle.Foreground(m.theme.Muted)

	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	energy, speed := 0.0, 0.0
	if n := len(m.energyHistory); n > 0 {
		energy = m.energyHistory[n-1]
		speed = m.speedHistory[len(m.speedHistory)-1]
	}
	s.WriteString(label.Render("Frame") + value.Render(fmt.Sprintf("%d", m.sim.Frame())) + "\n")
	s.WriteString(label.Render("Particles") + value.Render(fmt.Sprintf("%d", m.sim.Store().Len())) + "\n")
	s.WriteString(label.Render("Energy") + value.Render(fmt.Sprintf("%.2f", energy)) + "\n")
	s.WriteString(label.Render("Top speed") + value.Render(fmt.Sprintf("%.2f", speed)) + "\n")
	s.WriteString(label.Render("") + SparklineChart(m.speedHistory, 30) + "\n")
	s.WriteString(label.Render("Theme") + value.Render(m.theme.Name) + "\n")

	s.WriteString("\nPARAMETERS\n")
	for i, k := range m.paramKeys {
		val, initial := m.params[k], m.initialParams[k]
		barWidth, ratio := 10, 0.5
		if initial != 0 {
			ratio = val / (2.0 * initial)
		}
		ratio = math.Min(math.Max(ratio, 0), 1)
		filled := int(ratio * float64(barWidth))
		bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
		line := fmt.Sprintf("%-11s %s %.3f", k, bar, val)
		if i == m.selected {
			s.WriteString(active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + label.Render(line) + "\n")
		}
	}
	if m.message != "" {
		s.WriteString("\n" + Subtle.Render(m.message) + "\n")
	}

	if m.showHelp {
		s.WriteString(help.Render(`
Mouse     drag a ball, release to fling
Space     pause/resume
N         single step while paused
R         reset layout and parameters
Tab       cycle parameters
Up/K      increase parameter (+5%)
Down/J    decrease parameter (-5%)
T         cycle themes
G         toggle GIF recording
?         toggle this help
Q         quit`))
	} else {
		s.WriteString(help.Render("\n" + Separator(22) + "\nSP:Pause N:Step R:Reset\nT:Theme  G:Record ?:Help\nTab ↑↓:Tune  Q:Quit"))
	}

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

func (m Model) status() string {
	var parts []string
	if m.running {
		parts = append(parts, StatusRunning.Render("RUNNING"))
	} else {
		parts = append(parts, StatusPaused.Render("PAUSED"))
	}
	if i, ok := m.sim.Controller().Active(); ok {
		parts = append(parts, StatusDragging.Render(fmt.Sprintf("DRAG #%d", i)))
	}
	if m.recording {
		parts = append(parts, StatusRecording.Render(fmt.Sprintf("● REC %d", len(m.frames))))
	}
	return strings.Join(parts, "  ")
}

// captureFrame rasterises the braille canvas into a two-colour frame using
// the configured background and fill.
func (m *Model) captureFrame() {
	const charW, charH = 8, 16
	st := m.sim.Style()
	imgW, imgH := m.canvas.Width*charW, m.canvas.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{st.Background, st.Fill})

	dotW, dotH := charW/2, charH/4
	for y := 0; y < m.canvas.Height*4; y++ {
		for x := 0; x < m.canvas.Width*2; x++ {
			if !m.canvas.Lit(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF(path string) error {
	if len(m.frames) == 0 {
		return fmt.Errorf("nothing recorded")
	}
	anim := gif.GIF{LoopCount: 0}
	delay := max(100/m.fps, 1)
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
