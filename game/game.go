package game

import (
	"github.com/plus3/boringgame/ecs"
	"github.com/rs/zerolog"
)

// Game owns the store and the systems of one run.
type Game struct {
	cfg    Config
	logger zerolog.Logger

	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	keyboard  *ecs.Singleton[KeyboardState]
	viewport  Viewport
	players   *ecs.View[struct {
		Id ecs.EntityId
		*Player
	}]
}

type Option func(*Game)

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(g *Game) {
		g.cfg = cfg
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithRegistry builds the store on registry, so hosts can register their
// own components next to the game's.
func WithRegistry(registry *ecs.ComponentRegistry) Option {
	return func(g *Game) {
		g.storage = ecs.NewStorage(registry)
	}
}

// New builds a game for viewport and runs its startup stage, which spawns
// the player.
func New(viewport Viewport, opts ...Option) (*Game, error) {
	g := &Game{
		cfg:      DefaultConfig(),
		logger:   zerolog.Nop(),
		viewport: viewport,
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}

	if g.storage == nil {
		g.storage = ecs.NewStorage(ecs.NewComponentRegistry())
	}
	RegisterComponents(g.storage.Registry())

	ecs.NewSingleton(g.storage, viewport)
	g.keyboard = ecs.NewSingleton(g.storage, KeyboardState{})
	g.players = ecs.NewView[struct {
		Id ecs.EntityId
		*Player
	}](g.storage)

	g.scheduler = ecs.NewScheduler(g.storage)
	g.scheduler.RegisterStartup(&PlayerSpawnSystem{
		Config: g.cfg,
		Logger: g.logger,
	})
	g.scheduler.Register(&MovementSystem{
		Logger: g.logger,
	})
	g.scheduler.Startup()

	g.logger.Info().
		Float64("width", viewport.Width).
		Float64("height", viewport.Height).
		Int("tick_rate", g.cfg.TickRate).
		Msg("game initialized")

	return g, nil
}

// Initialize is New for hosts that cannot recover from a bad setup. It
// panics when viewport is nil or the configuration is invalid.
func Initialize(viewport *Viewport, opts ...Option) *Game {
	if viewport == nil {
		panic("game: viewport is required before initialization")
	}
	g, err := New(*viewport, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Tick advances the game by one fixed tick with keys held.
func (g *Game) Tick(keys KeyboardState) {
	g.Step(keys, g.cfg.DeltaTime())
}

// Step advances the game by dt seconds with keys held.
func (g *Game) Step(keys KeyboardState, dt float64) {
	g.keyboard.Set(keys.Clone())
	g.scheduler.Once(dt)
}

// Player returns the player entity. ok is false unless exactly one entity
// carries the Player tag.
func (g *Game) Player() (id ecs.EntityId, ok bool) {
	for item := range g.players.Values() {
		if ok {
			return ecs.InvalidEntity, false
		}
		id, ok = item.Id, true
	}
	return id, ok
}

// Renderables is Renderables over the game's store and viewport.
func (g *Game) Renderables() []Renderable {
	return Renderables(g.storage, g.viewport)
}

func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

func (g *Game) Scheduler() *ecs.Scheduler {
	return g.scheduler
}

func (g *Game) Config() Config {
	return g.cfg
}

func (g *Game) Viewport() Viewport {
	return g.viewport
}

// Tick runs one movement update directly against storage, without a
// scheduler. storage must hold the game's components.
func Tick(storage *ecs.Storage, keys KeyboardState, dt float64) {
	ecs.NewSingleton[KeyboardState](storage).Set(keys.Clone())

	players := ecs.NewQuery[playerMover](storage)
	players.Execute()

	logger := zerolog.Nop()
	movePlayer(players, keys, dt, &logger)
}
