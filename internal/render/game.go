package render

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/starshot/ecs"
	"github.com/plus3/starshot/ecs/debugui"
	debugui_ebiten "github.com/plus3/starshot/ecs/debugui/ebiten"
	"github.com/plus3/starshot/internal/config"
	"github.com/plus3/starshot/internal/game"
)

var (
	quitKeys   = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}
	overlayKey = ebiten.KeyF1
)

// Options configures the window. World options are passed through to
// game.NewWorld.
type Options struct {
	Title string
	World game.Options

	// Debug creates the imgui overlay, toggled at runtime with F1.
	Debug bool
}

// Game implements ebiten.Game. The simulation steps in Update, the imgui
// overlay is built in Update and drawn last, and the sprites are drawn in
// Draw by a separate scheduler.
type Game struct {
	World *game.World

	render *ecs.Scheduler
	ui     *ecs.Scheduler
	screen *ecs.Singleton[Screen]

	backend    *ecs.Singleton[debugui_ebiten.ImguiBackend]
	imguiInput *ecs.Singleton[debugui.ImguiInputState]
	overlay    bool

	pressed KeyFunc
	log     *slog.Logger
}

// New builds the world and the schedulers around it. With Debug set it also
// creates the window through the imgui backend.
func New(opts Options) *Game {
	if opts.Title == "" {
		opts.Title = config.WindowTitle
	}
	if opts.World.Width == 0 || opts.World.Height == 0 {
		opts.World.Width, opts.World.Height = config.WindowWidth, config.WindowHeight
	}
	if opts.World.Logger == nil {
		opts.World.Logger = slog.New(slog.DiscardHandler)
	}

	registry := game.NewRegistry()
	debugui.RegisterDebugUIComponents(registry)
	opts.World.Registry = registry

	world := game.NewWorld(opts.World)
	storage := world.Storage

	g := &Game{
		World:   world,
		screen:  ecs.NewSingleton(storage, Screen{}),
		pressed: ebiten.IsKeyPressed,
		log:     opts.World.Logger,
	}

	g.render = ecs.NewScheduler(storage)
	g.render.Register(NewRenderSystem())

	width, height := int(opts.World.Width), int(opts.World.Height)
	if opts.Debug {
		g.backend = ecs.NewSingleton(storage, debugui_ebiten.New(opts.Title, width, height))

		g.ui = ecs.NewScheduler(storage)
		g.ui.Register(&debugui.ImguiSystem{})
		debugui.SpawnDebugUI(storage, world.Scheduler)
		spawnGameStateWindow(storage)
		g.imguiInput = ecs.NewSingleton[debugui.ImguiInputState](storage)
		g.overlay = true
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle(opts.Title)
	}

	return g
}

// keyboardCaptured reports whether the overlay is consuming key presses.
func (g *Game) keyboardCaptured() bool {
	return g.overlay && g.imguiInput != nil && g.imguiInput.Get().WantCaptureKeyboard
}

func (g *Game) Update() error {
	if anyPressed(g.pressed, quitKeys) && !g.keyboardCaptured() {
		return ebiten.Termination
	}

	if g.backend != nil && inpututil.IsKeyJustPressed(overlayKey) {
		g.overlay = !g.overlay
		g.log.Debug("debug overlay toggled", "visible", g.overlay)
	}

	if g.keyboardCaptured() {
		*g.World.Input() = game.InputState{}
	} else {
		*g.World.Input() = readInput(g.pressed)
	}
	g.World.Step()

	if g.backend != nil {
		backend := g.backend.Get()
		backend.BeginFrame()
		if g.overlay {
			g.ui.Once(config.TimeStep)
		} else {
			*g.imguiInput.Get() = debugui.ImguiInputState{}
		}
		backend.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Get().Image = screen
	g.render.Once(0)
	g.screen.Get().Image = nil

	if g.backend != nil {
		g.backend.Get().Draw(screen)
	}
}

// Layout keeps the logical screen at the world size so world coordinates
// map to pixels one to one.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Get().Layout(outsideWidth, outsideHeight)
	}
	var win *game.WinSize
	g.World.Storage.ReadSingleton(&win)
	return int(win.W), int(win.H)
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	return ebiten.RunGame(g)
}
