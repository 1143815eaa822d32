package game

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/partybox/internal/gamedata"
	"github.com/samdwyer/partybox/internal/imposter"
	"github.com/samdwyer/partybox/internal/round"
	"github.com/samdwyer/partybox/internal/ui"
)

type rowKind int

const (
	rowPlayer rowKind = iota
	rowAddPlayer
	rowCategory
	rowPrompt
	rowCount
	rowTimer
	rowDuration
	rowHints
	rowStart
)

type menuRow struct {
	kind  rowKind
	index int
}

const (
	nameLimit   = 24
	promptLimit = 60
)

type imposterView struct {
	ctrl       *imposter.Controller
	cfg        Config
	async      func(func())
	menu       cursor
	vote       cursor
	revealed   bool
	revealSeen [2]int
}

func newImposterView(cfg Config, async func(func())) *imposterView {
	return &imposterView{ctrl: cfg.Imposter, cfg: cfg, async: async}
}

func (v *imposterView) text(key string) string {
	return v.cfg.Strings.Get(key)
}

func (v *imposterView) rows(s imposter.Snapshot) []menuRow {
	rows := make([]menuRow, 0, len(s.Roster)+8)
	for i := range s.Roster {
		rows = append(rows, menuRow{kind: rowPlayer, index: i})
	}
	rows = append(rows, menuRow{kind: rowAddPlayer}, menuRow{kind: rowCategory})
	if v.isGenerative(s.Settings.Category) {
		rows = append(rows, menuRow{kind: rowPrompt})
	}
	rows = append(rows, menuRow{kind: rowCount}, menuRow{kind: rowTimer})
	if s.Settings.TimerEnabled {
		rows = append(rows, menuRow{kind: rowDuration})
	}
	return append(rows, menuRow{kind: rowHints}, menuRow{kind: rowStart})
}

func (v *imposterView) isGenerative(id string) bool {
	for _, c := range v.cfg.Categories {
		if c.ID == id {
			return c.Generative
		}
	}
	return false
}

func (v *imposterView) categoryLabel(id string) string {
	for _, c := range v.cfg.Categories {
		if c.ID == id {
			return c.Label
		}
	}
	return id
}

func (v *imposterView) nextCategory(id string) string {
	cats := v.cfg.Categories
	if len(cats) == 0 {
		return id
	}
	for i, c := range cats {
		if c.ID == id {
			return cats[(i+1)%len(cats)].ID
		}
	}
	return cats[0].ID
}

// syncReveal hides the card whenever the device moves to another player.
func (v *imposterView) syncReveal(s imposter.Snapshot) {
	seen := [2]int{s.Round, s.RevealIndex}
	if seen != v.revealSeen {
		v.revealSeen = seen
		v.revealed = false
	}
}

func (v *imposterView) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	s := v.ctrl.Snapshot()
	if s.Loading {
		return false
	}
	if s.Stage != imposter.StageMenu && ev.Key() == tcell.KeyEscape {
		v.ctrl.ResetToMenu()
		return false
	}

	switch s.Stage {
	case imposter.StageMenu:
		return v.handleMenuKey(ctx, s, ev)
	case imposter.StageReveal:
		v.syncReveal(s)
		switch {
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			v.revealed = true
		case ev.Key() == tcell.KeyEnter && v.revealed:
			v.revealed = false
			v.ctrl.AdvanceReveal()
		}
	case imposter.StageGameplay:
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'v' || ev.Rune() == 'V') {
			v.ctrl.VoteNow()
		}
	case imposter.StageVoting:
		switch ev.Key() {
		case tcell.KeyUp:
			v.vote.move(-1, len(s.Players))
		case tcell.KeyDown:
			v.vote.move(1, len(s.Players))
		case tcell.KeyEnter:
			if i := v.vote.clamp(len(s.Players)); i < len(s.Players) {
				v.ctrl.CastVote(s.Players[i].ID)
			}
		}
	case imposter.StageResults:
		if ev.Key() != tcell.KeyRune {
			return false
		}
		switch ev.Rune() {
		case 'm', 'M':
			v.ctrl.ResetToMenu()
		case 'c', 'C':
			v.vote = cursor{}
			v.async(func() { v.ctrl.ContinueRound(ctx) })
		}
	}
	return false
}

func (v *imposterView) handleMenuKey(ctx context.Context, s imposter.Snapshot, ev *tcell.EventKey) bool {
	rows := v.rows(s)
	row := rows[v.menu.clamp(len(rows))]

	switch ev.Key() {
	case tcell.KeyEscape:
		return true
	case tcell.KeyUp:
		v.menu.move(-1, len(rows))
		return false
	case tcell.KeyDown, tcell.KeyTab:
		v.menu.move(1, len(rows))
		return false
	}

	switch row.kind {
	case rowPlayer:
		if ev.Key() == tcell.KeyDelete {
			v.ctrl.RemovePlayer(row.index)
			return false
		}
		if ev.Key() == tcell.KeyEnter {
			v.menu.move(1, len(rows))
			return false
		}
		in := ui.NewInput(nameLimit)
		in.SetValue(s.Roster[row.index])
		if in.HandleKey(ev) {
			v.ctrl.SetPlayerName(row.index, in.Value())
		}
	case rowPrompt:
		in := ui.NewInput(promptLimit)
		in.SetValue(s.Settings.CustomPrompt)
		if in.HandleKey(ev) {
			v.ctrl.SetCustomPrompt(in.Value())
		}
	default:
		if !activates(ev) {
			return false
		}
		switch row.kind {
		case rowAddPlayer:
			v.ctrl.AddPlayer()
		case rowCategory:
			v.ctrl.SetCategory(v.nextCategory(s.Settings.Category))
		case rowCount:
			v.ctrl.CycleSpecialCount()
		case rowTimer:
			v.ctrl.SetTimerEnabled(!s.Settings.TimerEnabled)
		case rowDuration:
			v.ctrl.CycleTimerDuration()
		case rowHints:
			v.ctrl.SetHintsEnabled(!s.Settings.HintsEnabled)
		case rowStart:
			v.vote = cursor{}
			v.async(func() { v.ctrl.StartRound(ctx) })
		}
	}
	return false
}

// activates reports whether ev triggers the focused menu row.
func activates(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter, tcell.KeyRight, tcell.KeyLeft:
		return true
	case tcell.KeyRune:
		return ev.Rune() == ' '
	}
	return false
}

func (v *imposterView) onOff(b bool) string {
	if b {
		return v.text("common.on")
	}
	return v.text("common.off")
}

func (v *imposterView) draw(r *ui.Renderer) {
	s := v.ctrl.Snapshot()
	pal := v.cfg.Palettes.Get("imposter")
	r.Begin(pal)
	r.Bar(0, v.text("imposter.title"), pal.Selected())

	if s.Loading {
		r.Centered(4, v.text("common.loading"), pal.Title())
		r.End()
		return
	}

	switch s.Stage {
	case imposter.StageMenu:
		v.drawMenu(r, pal, s)
	case imposter.StageReveal:
		v.syncReveal(s)
		v.drawReveal(r, pal, s)
	case imposter.StageGameplay:
		r.Centered(3, v.text("imposter.discuss"), pal.Title())
		clock := v.text("imposter.no_limit")
		if !s.TimerInfinite {
			clock = round.FormatClock(s.TimeLeft)
		}
		r.Centered(5, clock, pal.Base().Bold(true))
		r.Footer(v.text("imposter.vote_now")+" · "+v.text("common.cancel"), pal.Dim())
	case imposter.StageVoting:
		r.Centered(2, v.text("imposter.who"), pal.Title())
		sel := v.vote.clamp(len(s.Players))
		for i, p := range s.Players {
			style := pal.Base()
			if i == sel {
				style = pal.Selected()
			}
			r.Centered(4+i, "  "+p.Name+"  ", style)
		}
		r.Footer(v.text("common.cancel"), pal.Dim())
	case imposter.StageResults:
		v.drawResults(r, pal, s)
	}
	r.End()
}

func (v *imposterView) drawMenu(r *ui.Renderer, pal ui.Palette, s imposter.Snapshot) {
	rows := v.rows(s)
	sel := v.menu.clamp(len(rows))
	for i, row := range rows {
		var line string
		switch row.kind {
		case rowPlayer:
			name := s.Roster[row.index]
			if name == "" {
				name = "<" + round.DisplayName("", v.text("common.player"), row.index) + ">"
			}
			line = fmt.Sprintf("%2d. %s", row.index+1, name)
		case rowAddPlayer:
			line = v.text("common.add_player")
		case rowCategory:
			line = v.text("imposter.category") + ": " + v.categoryLabel(s.Settings.Category)
		case rowPrompt:
			line = v.text("imposter.custom_prompt") + ": " + s.Settings.CustomPrompt
		case rowCount:
			line = v.text("imposter.count") + ": " + strconv.Itoa(s.Settings.ImposterCount)
		case rowTimer:
			line = v.text("imposter.timer") + ": " + v.onOff(s.Settings.TimerEnabled)
		case rowDuration:
			line = v.text("imposter.duration") + ": " + strconv.Itoa(s.Settings.TimerMinutes)
		case rowHints:
			line = v.text("imposter.hints") + ": " + v.onOff(s.Settings.HintsEnabled)
		case rowStart:
			line = "▶ " + v.text("common.start")
		}
		style := pal.Base()
		if i == sel {
			style = pal.Selected()
		}
		r.Text(2, 2+i, " "+line+" ", style)
	}
	r.Footer(v.text("app.keys")+" · "+v.text("common.remove_player"), pal.Dim())
}

func (v *imposterView) drawReveal(r *ui.Renderer, pal ui.Palette, s imposter.Snapshot) {
	card, ok := s.Card()
	if !ok {
		return
	}
	progress := fmt.Sprintf("%d / %d", s.RevealIndex+1, len(s.Players))
	r.Centered(2, progress, pal.Dim())

	if !v.revealed {
		r.Centered(4, v.text("imposter.pass_to"), pal.Base())
		r.Centered(6, card.PlayerName, pal.Title())
		r.Footer(v.text("imposter.tap_to_reveal"), pal.Dim())
		return
	}

	if card.IsImposter {
		r.Centered(4, v.text("imposter.you_are_imposter"), pal.Title())
		hint := v.text("imposter.no_hint")
		if card.Hint != "" {
			hint = v.text("imposter.hint") + ": " + card.Hint
		}
		r.Centered(6, hint, pal.Base())
	} else {
		r.Centered(4, v.text("imposter.secret_word"), pal.Base())
		r.Centered(6, card.Word, pal.Title())
	}
	r.Footer(v.text("imposter.hide_card"), pal.Dim())
}

func (v *imposterView) drawResults(r *ui.Renderer, pal ui.Palette, s imposter.Snapshot) {
	verdict := v.text("imposter.imposter_wins")
	if s.Outcome == round.OutcomeDefendersWin {
		verdict = v.text("imposter.citizens_win")
	}
	r.Centered(2, verdict, pal.Title())

	r.Centered(4, v.text("imposter.imposters_were"), pal.Base())
	for i, name := range s.ImposterNames() {
		r.Centered(5+i, name, pal.Base().Bold(true))
	}
	y := 6 + len(s.Imposters)
	r.Centered(y, v.text("imposter.word_was")+" "+wordLabel(s.Word), pal.Base())
	r.Footer(v.text("imposter.results_keys"), pal.Dim())
}

func wordLabel(w gamedata.WordItem) string {
	if w.Hint == "" {
		return w.Word
	}
	return w.Word + " (" + w.Hint + ")"
}
