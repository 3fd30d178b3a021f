// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/younwookim/raykin/internal/application/replay"
	"github.com/younwookim/raykin/internal/application/scene"
	"github.com/younwookim/raykin/internal/application/sim"
	"github.com/younwookim/raykin/internal/application/state"
	"github.com/younwookim/raykin/internal/application/system"
	"github.com/younwookim/raykin/internal/domain/entity"
	"github.com/younwookim/raykin/internal/infrastructure/config"
	"github.com/younwookim/raykin/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

// Colors for rendering.
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorSolid    = colornames.Slategray
	colorOneWay   = colornames.Goldenrod
	colorPlatform = colornames.Steelblue
	colorPlayer   = color.RGBA{100, 200, 100, 255}
	colorContact  = colornames.Orangered
	colorRay      = color.RGBA{255, 80, 80, 160}
)

// Playing is the main gameplay scene.
type Playing struct {
	config    *config.PhysicsConfig
	stageCfg  *config.StageConfig
	stageName string
	sim       *sim.Simulation
	colliders []entity.Shape
	state     state.GameState
	resume    state.GameState
	snap      sim.PlayerSnapshot

	inputSystem *system.InputSystem
	replayer    *replay.Replayer

	screenW  int
	screenH  int
	ppu      float64
	showRays bool

	// Input recording
	recorder       *replay.Recorder
	recordFilename string

	// Hot reload
	loader  *config.Loader
	watcher *config.Watcher
}

// New creates a new Playing scene driven by the keyboard.
// If recordPath is not empty, gameplay will be recorded.
func New(cfg *config.PhysicsConfig, stageName string, stageCfg *config.StageConfig, recordPath string) (*Playing, error) {
	p := &Playing{
		config:         cfg,
		stageCfg:       stageCfg,
		stageName:      stageName,
		state:          state.StatePlaying,
		inputSystem:    system.NewInputSystem(),
		screenW:        cfg.Display.ScreenWidth,
		screenH:        cfg.Display.ScreenHeight,
		ppu:            cfg.Display.PixelsPerUnit,
		recordFilename: recordPath,
	}
	if err := p.reset(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewReplay creates a Playing scene driven by a recording.
func NewReplay(cfg *config.PhysicsConfig, stageName string, stageCfg *config.StageConfig, r *replay.Replayer) (*Playing, error) {
	p, err := New(cfg, stageName, stageCfg, "")
	if err != nil {
		return nil, err
	}
	p.replayer = r
	p.state = state.StateReplaying
	return p, nil
}

// WatchConfig reloads tuning and stage files when the watcher reports them.
func (p *Playing) WatchConfig(loader *config.Loader, watcher *config.Watcher) {
	p.loader = loader
	p.watcher = watcher
}

// State returns the current run mode.
func (p *Playing) State() state.GameState {
	return p.state
}

// Simulation returns the running simulation.
func (p *Playing) Simulation() *sim.Simulation {
	return p.sim
}

func (p *Playing) reset() error {
	s, err := sim.New(p.config, p.stageCfg)
	if err != nil {
		return err
	}
	p.sim = s
	p.colliders = s.Stage().Shapes()
	p.snap = s.Snapshot()

	if p.replayer != nil {
		p.replayer.Reset()
	}
	if p.recordFilename != "" {
		p.recorder = replay.NewRecorder(p.stageName)
		logger.Info("recording enabled", zap.String("file", p.recordFilename))
	}
	return nil
}

// Update proceeds the game state (implements scene.Scene).
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	p.pollConfig()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		p.showRays = !p.showRays
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := p.reset(); err != nil {
			return nil, err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.togglePause()
	}

	switch p.state {
	case state.StatePlaying:
		p.stepLive()
	case state.StateReplaying:
		p.stepReplay()
	case state.StatePaused:
		// frame advance
		if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
			if p.resume == state.StateReplaying {
				p.stepReplay()
			} else {
				p.stepLive()
			}
		}
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) togglePause() {
	if p.state == state.StatePaused {
		p.state = p.resume
		return
	}
	p.resume = p.state
	p.state = state.StatePaused
}

func (p *Playing) stepLive() {
	input := p.inputSystem.GetInput()
	if p.recorder != nil {
		p.recorder.RecordFrame(input)
	}
	p.snap = p.sim.Step(input)
}

func (p *Playing) stepReplay() {
	input, ok := p.replayer.Next()
	if !ok {
		if p.state != state.StatePaused {
			logger.Info("replay finished", zap.Int("frames", p.replayer.TotalFrames()))
			p.resume = state.StateReplaying
			p.state = state.StatePaused
		}
		return
	}
	p.snap = p.sim.Step(input)
}

func (p *Playing) pollConfig() {
	if p.watcher == nil || p.loader == nil {
		return
	}
	names, err := p.watcher.Poll()
	if err != nil {
		logger.Warn("config watcher error", zap.Error(err))
	}

	var physicsChanged, stageChanged bool
	for _, name := range names {
		if filepath.Base(name) == config.PhysicsFile {
			physicsChanged = true
		} else {
			stageChanged = true
		}
	}
	if physicsChanged {
		p.reloadPhysics()
	}
	if stageChanged {
		p.reloadStage()
	}
}

func (p *Playing) reloadPhysics() {
	cfg, err := p.loader.LoadPhysics()
	if err != nil {
		logger.Error("physics reload failed", zap.Error(err))
		return
	}
	if err := p.sim.Reconfigure(cfg); err != nil {
		logger.Error("physics reload rejected", zap.Error(err))
		return
	}
	p.config = p.sim.Config()
}

func (p *Playing) reloadStage() {
	stageCfg, err := p.loader.LoadStage(p.stageName)
	if err != nil {
		logger.Error("stage reload failed", zap.String("stage", p.stageName), zap.Error(err))
		return
	}
	p.stageCfg = stageCfg
	if err := p.reset(); err != nil {
		logger.Error("stage rebuild failed", zap.Error(err))
		return
	}
	logger.Info("stage reloaded", zap.String("stage", p.stageName))
}

// saveRecording saves the current recording to file.
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		logger.Warn("failed to save recording", zap.Error(err))
		return
	}
	logger.Info("recording saved", zap.String("file", filename), zap.Int("frames", p.recorder.FrameCount()))
}

// camera returns the world position of the screen's bottom-left corner.
func (p *Playing) camera() cp.Vector {
	viewW := float64(p.screenW) / p.ppu
	viewH := float64(p.screenH) / p.ppu
	world := p.sim.Stage().WorldSize()

	cam := p.snap.Position.Sub(cp.Vector{X: viewW / 2, Y: viewH / 2})
	cam.X = math.Max(0, math.Min(cam.X, world.X-viewW))
	cam.Y = math.Max(0, math.Min(cam.Y, world.Y-viewH))
	return cam
}

// toScreen converts world coordinates (y up) to screen pixels (y down).
func (p *Playing) toScreen(cam, v cp.Vector) (float32, float32) {
	x := (v.X - cam.X) * p.ppu
	y := float64(p.screenH) - (v.Y-cam.Y)*p.ppu
	return float32(x), float32(y)
}

// Draw renders the game screen.
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	cam := p.camera()

	p.drawColliders(screen, cam)
	for _, pl := range p.sim.Platforms() {
		p.drawBox(screen, cam, pl.Box, colorPlatform)
	}
	p.drawPlayer(screen, cam)
	if p.showRays {
		p.drawRays(screen, cam)
	}
	p.drawUI(screen)
}

func (p *Playing) drawColliders(screen *ebiten.Image, cam cp.Vector) {
	for _, shape := range p.colliders {
		c := colorSolid
		if shape.OneWay {
			c = colorOneWay
		}
		n := len(shape.Verts)
		for i := range shape.Verts {
			x0, y0 := p.toScreen(cam, shape.Verts[i])
			x1, y1 := p.toScreen(cam, shape.Verts[(i+1)%n])
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, c, false)
		}
	}
}

func (p *Playing) drawBox(screen *ebiten.Image, cam cp.Vector, b entity.Box, c color.Color) {
	x, y := p.toScreen(cam, cp.Vector{X: b.Min().X, Y: b.Max().Y})
	size := b.Size().Mult(p.ppu)
	vector.FillRect(screen, x, y, float32(size.X), float32(size.Y), c, false)
}

func (p *Playing) drawPlayer(screen *ebiten.Image, cam cp.Vector) {
	player := p.sim.Player()
	p.drawBox(screen, cam, player.Box, colorPlayer)

	// contact edges
	lo, hi := player.Box.Min(), player.Box.Max()
	c := p.snap.Collisions
	edges := []struct {
		on   bool
		a, b cp.Vector
	}{
		{c.Below, lo, cp.Vector{X: hi.X, Y: lo.Y}},
		{c.Above, cp.Vector{X: lo.X, Y: hi.Y}, hi},
		{c.Left, lo, cp.Vector{X: lo.X, Y: hi.Y}},
		{c.Right, cp.Vector{X: hi.X, Y: lo.Y}, hi},
	}
	for _, e := range edges {
		if !e.on {
			continue
		}
		x0, y0 := p.toScreen(cam, e.a)
		x1, y1 := p.toScreen(cam, e.b)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, colorContact, false)
	}
}

// drawRays shows the rays the next vertical and horizontal passes would cast.
func (p *Playing) drawRays(screen *ebiten.Image, cam cp.Vector) {
	player := p.sim.Player()
	skin := p.config.Collision.SkinWidth
	o := entity.ComputeOrigins(player.Box, skin)
	sp := player.Spacing
	dt := p.config.DT()

	dy := player.Velocity.Y * dt
	vLen := math.Abs(dy) + skin
	vBase, vDir := o.TopLeft, 1.0
	if dy <= 0 {
		vBase, vDir = o.BottomLeft, -1.0
	}
	for i := 0; i < sp.VerticalCount; i++ {
		a := vBase.Add(cp.Vector{X: sp.VerticalSpacing * float64(i)})
		p.drawRay(screen, cam, a, a.Add(cp.Vector{Y: vDir * math.Max(vLen, 0.25)}))
	}

	dir := float64(player.Collisions.FaceDir)
	hBase := o.BottomRight
	if dir < 0 {
		hBase = o.BottomLeft
	}
	hLen := math.Max(math.Abs(player.Velocity.X*dt)+skin, 0.25)
	for i := 0; i < sp.HorizontalCount; i++ {
		a := hBase.Add(cp.Vector{Y: sp.HorizontalSpacing * float64(i)})
		p.drawRay(screen, cam, a, a.Add(cp.Vector{X: dir * hLen}))
	}
}

func (p *Playing) drawRay(screen *ebiten.Image, cam, a, b cp.Vector) {
	x0, y0 := p.toScreen(cam, a)
	x1, y1 := p.toScreen(cam, b)
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, colorRay, false)
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	s := p.snap
	c := s.Collisions
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  tick %d", p.state, s.Tick), 4, 4)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("pos %.2f,%.2f  vel %.2f,%.2f", s.Position.X, s.Position.Y, s.Velocity.X, s.Velocity.Y), 4, 18)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("slope %.1f  jumps %d  wall %v", c.SlopeAngle, s.JumpCount, s.WallSliding), 4, 32)
	if p.state == state.StatePaused {
		ebitenutil.DebugPrintAt(screen, "PAUSED  [.] step  [Esc] resume", 4, p.screenH-16)
	}
}

// OnEnter is called when entering this scene.
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene.
func (p *Playing) OnExit() {
	p.saveRecording()
	if p.watcher != nil {
		_ = p.watcher.Close()
	}
}

// Layout returns the game's screen dimensions (used by game.Game).
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
