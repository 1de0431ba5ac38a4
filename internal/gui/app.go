package gui

import (
	"fmt"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/interaction"
	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/particle"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
)

var (
	ColText    = rl.NewColor(60, 60, 60, 255)
	ColTextDim = rl.NewColor(150, 150, 150, 255)
	ColSelect  = rl.NewColor(0, 0, 0, 255)
	ColAccent  = rl.NewColor(255, 140, 0, 255)
	ColLine    = rl.NewColor(120, 120, 120, 200)
)

const telemetryCapacity = 200

type App struct {
	Base      *config.Config
	Cfg       *config.Config
	Sim       *sim.Simulator
	Surface   *windowSurface
	Energy    *metrics.Energy
	Preset    string
	Running   bool
	InMenu    bool
	Presets   []string
	Selected  int
	Telemetry []float64
	ShowHUD   bool
	quit      bool
}

func initWindow(cfg *config.Config) {
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "ballpit")
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
}

// NewApp builds the window host. When interactive is set it opens on the
// preset menu; otherwise base runs immediately under the given name.
func NewApp(base *config.Config, name string, interactive bool) (*App, error) {
	app := &App{
		Base:      base,
		Presets:   config.ListPresets(),
		InMenu:    interactive,
		Telemetry: make([]float64, 0, telemetryCapacity),
		ShowHUD:   true,
	}
	if !interactive {
		if err := app.load(base, name); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Run opens a window sized to cfg and blocks until it is closed.
func Run(cfg *config.Config, name string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	initWindow(cfg)
	defer rl.CloseWindow()

	app, err := NewApp(cfg, name, false)
	if err != nil {
		return err
	}
	app.RunLoop()
	return nil
}

// RunInteractive opens the preset menu first. Presets keep the window size
// and colours of base.
func RunInteractive(base *config.Config) error {
	if err := base.Validate(); err != nil {
		return err
	}
	initWindow(base)
	defer rl.CloseWindow()

	app, err := NewApp(base, "", true)
	if err != nil {
		return err
	}
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
	log.Info("window closed")
}

func (a *App) load(cfg *config.Config, name string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ps, err := cfg.InitialParticles()
	if err != nil {
		return err
	}
	store, err := particle.NewStore(ps)
	if err != nil {
		return err
	}
	style, err := cfg.RenderStyle()
	if err != nil {
		return err
	}

	world := physics.NewWorld(cfg.Width, cfg.Height)
	world.Params = cfg.Physics

	a.Cfg = cfg
	a.Preset = name
	a.Surface = &windowSurface{width: cfg.Width, height: cfg.Height, background: style.Background}
	a.Sim = sim.New(store, world, a.Surface, style)
	a.Energy = metrics.NewEnergy()
	a.Sim.AddMetric(a.Energy)
	a.Telemetry = a.Telemetry[:0]
	a.Running = true

	log.Info("scene loaded", "preset", name, "particles", store.Len())
	return nil
}

// loadPreset swaps in the preset's particles, keeping everything else from
// the base config.
func (a *App) loadPreset(name string) error {
	cfg := config.ApplyPreset(a.Base, name)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s", name)
	}
	return a.load(cfg, name)
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}

	if a.InMenu {
		a.updateMenu()
		return
	}

	if rl.IsKeyPressed(rl.KeyEscape) && a.Base != nil {
		a.InMenu = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Sim.Reset()
		a.Telemetry = a.Telemetry[:0]
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}

	a.handleMouse()
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected++
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected--
	}

	if a.Selected >= len(a.Presets) {
		a.Selected = 0
	}
	if a.Selected < 0 {
		a.Selected = len(a.Presets) - 1
	}

	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		if err := a.loadPreset(a.Presets[a.Selected]); err != nil {
			log.Error("load preset", "preset", a.Presets[a.Selected], "err", err)
			return
		}
		a.InMenu = false
	}
}

// handleMouse forwards the left button to the drag controller. The window
// is the surface, so window coordinates are already surface-local.
func (a *App) handleMouse() {
	pos := rl.GetMousePosition()
	x, y := float64(pos.X), float64(pos.Y)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.Sim.Handle(interaction.Event{Kind: interaction.Down, X: x, Y: y})
	}
	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		a.Sim.Handle(interaction.Event{Kind: interaction.Move, X: x, Y: y})
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.Sim.Handle(interaction.Event{Kind: interaction.Up, X: x, Y: y})
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()

	if a.InMenu {
		rl.ClearBackground(rl.RayWhite)
		a.drawMenu()
		rl.EndDrawing()
		return
	}

	stepOnce := !a.Running && rl.IsKeyPressed(rl.KeyN)
	if a.Running || stepOnce {
		if a.Sim.Tick() {
			a.record()
		}
	} else {
		a.Sim.Redraw()
	}

	a.drawDragLine()
	if a.ShowHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) record() {
	a.Telemetry = append(a.Telemetry, a.Sim.Store().KineticEnergy())
	if len(a.Telemetry) > telemetryCapacity {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) drawDragLine() {
	ctrl := a.Sim.Controller()
	if _, ok := ctrl.Active(); !ok {
		return
	}
	anchor := ctrl.Anchor()
	rl.DrawLineV(rl.NewVector2(float32(anchor.X), float32(anchor.Y)), rl.GetMousePosition(), ColLine)
}

func (a *App) DrawHUD() {
	h := int(a.Cfg.Height)

	a.drawText("ballpit", 20, 16, 20, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Preset), 110, 20, 14, ColText)

	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	if i, ok := a.Sim.Controller().Active(); ok {
		status, col = fmt.Sprintf("DRAG #%d", i), ColAccent
	}
	a.drawText(status, int(a.Cfg.Width)-120, 20, 14, col)

	a.DrawTelemetry()

	a.drawText(fmt.Sprintf("frame %d  mean E %.2f", a.Sim.Frame(), a.Energy.Value()), 20, h-50, 12, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 20, h-30, 12, ColTextDim)
	a.drawText("[SPACE] PAUSE  [N] STEP  [R] RESET  [H] HUD  [ESC] MENU  [Q] QUIT", 110, h-30, 12, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), color)
}

// DrawTelemetry plots recent kinetic energy as a line strip in the top
// left corner.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 20, 50
	width, height := 200, 40

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("E: %.2f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 12, ColText)
}

func (a *App) drawMenu() {
	a.drawText("ballpit", 50, 50, 40, ColSelect)
	a.drawText("Select preset", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Presets {
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 50, int(a.Base.Height)-40, 14, ColTextDim)
}
