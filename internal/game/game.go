package game

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/partybox/internal/city"
	"github.com/samdwyer/partybox/internal/imposter"
	"github.com/samdwyer/partybox/internal/liar"
	"github.com/samdwyer/partybox/internal/telemetry"
	"github.com/samdwyer/partybox/internal/ui"
)

// view is one game's screens.
type view interface {
	draw(r *ui.Renderer)
	// handleKey applies a key press and reports whether the player asked
	// to leave the game for the launcher.
	handleKey(ctx context.Context, ev *tcell.EventKey) (leave bool)
}

// launcherEntries are the games in launcher order.
var launcherEntries = []State{StateImposter, StateLiar, StateCity}

// Game holds the screen, the active state and one view per game.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	cfg      Config
	state    State
	running  bool
	launcher cursor
	views    map[State]view
	log      zerolog.Logger

	closeOnce sync.Once
}

// New creates a new game instance on the terminal.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, cfg), nil
}

// NewWithScreen creates a game drawing to an already initialised screen.
func NewWithScreen(screen *ui.Screen, cfg Config) *Game {
	g := &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		cfg:      cfg,
		state:    StateLauncher,
		running:  true,
		log:      log.With().Str("component", "game").Logger(),
	}
	g.views = map[State]view{
		StateImposter: newImposterView(cfg, g.goAsync),
		StateLiar:     newLiarView(cfg),
		StateCity:     newCityView(cfg),
	}
	return g
}

// State returns the active screen family.
func (g *Game) State() State {
	return g.state
}

// Running reports whether the loop should keep going.
func (g *Game) Running() bool {
	return g.running
}

// Run executes the main loop until the player quits or ctx ends.
func (g *Game) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tracer := telemetry.Tracer("game")
	_, initSpan := tracer.Start(ctx, "game.init")
	initSpan.SetAttributes(
		attribute.String("session.id", telemetry.SessionID()),
		attribute.Int("categories", len(g.cfg.Categories)),
		attribute.Int("question_categories", len(g.cfg.QuestionCategories)),
	)

	// Controller changes arrive from other goroutines (timer ticks, word
	// lookups); wake the loop so it redraws.
	wake := func() { _ = g.screen.PostEvent(tcell.NewEventInterrupt(nil)) }
	var cancels []func()
	if g.cfg.Imposter != nil {
		cancels = append(cancels, g.cfg.Imposter.Subscribe(func(imposter.Snapshot) { wake() }))
	}
	if g.cfg.Liar != nil {
		cancels = append(cancels, g.cfg.Liar.Subscribe(func(liar.Snapshot) { wake() }))
	}
	if g.cfg.City != nil {
		cancels = append(cancels, g.cfg.City.Subscribe(func(city.Snapshot) { wake() }))
	}
	defer func() {
		for _, c := range cancels {
			c()
		}
	}()
	go func() {
		<-ctx.Done()
		wake()
	}()
	initSpan.End()
	g.log.Info().Str("session", telemetry.SessionID()).Msg("session started")

	for g.running && ctx.Err() == nil {
		g.Draw()
		ev := g.screen.PollEvent()
		if ev == nil {
			break
		}
		g.HandleEvent(ctx, ev)
	}

	g.Close()
	return nil
}

// Draw renders the active screen.
func (g *Game) Draw() {
	if g.state == StateLauncher {
		g.drawLauncher()
		return
	}
	if v, ok := g.views[g.state]; ok {
		v.draw(g.renderer)
	}
}

// HandleEvent processes a single terminal event.
func (g *Game) HandleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		g.running = false
		return
	}

	if g.state == StateLauncher {
		g.handleLauncherKey(ev)
		return
	}

	v, ok := g.views[g.state]
	if !ok {
		g.state = StateLauncher
		return
	}
	if v.handleKey(ctx, ev) {
		g.log.Debug().Stringer("from", g.state).Msg("back to launcher")
		g.state = StateLauncher
	}
}

func (g *Game) handleLauncherKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		g.running = false
	case tcell.KeyUp:
		g.launcher.move(-1, len(launcherEntries))
	case tcell.KeyDown:
		g.launcher.move(1, len(launcherEntries))
	case tcell.KeyEnter:
		g.state = launcherEntries[g.launcher.pos]
		g.log.Debug().Stringer("game", g.state).Msg("game selected")
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case '1', '2', '3':
			g.state = launcherEntries[ev.Rune()-'1']
		}
	}
}

func (g *Game) drawLauncher() {
	r := g.renderer
	pal := g.cfg.Palettes.Get("launcher")
	t := g.cfg.Strings.Get

	r.Begin(pal)
	r.Centered(1, t("app.title"), pal.Title())

	labels := []struct{ name, tag string }{
		{t("launcher.imposter"), t("launcher.imposter.tag")},
		{t("launcher.liar"), t("launcher.liar.tag")},
		{t("launcher.city"), ""},
	}
	for i, l := range labels {
		style := pal.Base()
		if i == g.launcher.pos {
			style = pal.Selected()
		}
		line := "  " + l.name + "  "
		if l.tag != "" {
			line += "[" + l.tag + "]  "
		}
		r.Centered(4+i*2, line, style)
	}

	r.Footer(t("app.keys"), pal.Dim())
	r.End()
}

// goAsync runs a blocking controller action off the event loop.
func (g *Game) goAsync(fn func()) {
	go fn()
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.closeOnce.Do(func() {
		if g.screen != nil {
			g.screen.Close()
		}
	})
}
