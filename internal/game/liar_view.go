package game

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/partybox/internal/liar"
	"github.com/samdwyer/partybox/internal/round"
	"github.com/samdwyer/partybox/internal/ui"
)

const answerLimit = 80

type liarView struct {
	ctrl    *liar.Controller
	cfg     Config
	menu    cursor
	flipped bool
	answer  *ui.Input
}

func newLiarView(cfg Config) *liarView {
	return &liarView{ctrl: cfg.Liar, cfg: cfg, answer: ui.NewInput(answerLimit)}
}

func (v *liarView) text(key string) string {
	return v.cfg.Strings.Get(key)
}

func (v *liarView) rows(s liar.Snapshot) []menuRow {
	rows := make([]menuRow, 0, len(s.Roster)+4)
	for i := range s.Roster {
		rows = append(rows, menuRow{kind: rowPlayer, index: i})
	}
	return append(rows,
		menuRow{kind: rowAddPlayer},
		menuRow{kind: rowCategory},
		menuRow{kind: rowCount},
		menuRow{kind: rowStart},
	)
}

func (v *liarView) nextCategory(id string) string {
	cats := v.cfg.QuestionCategories
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

func (v *liarView) categoryLabel(id string) string {
	for _, c := range v.cfg.QuestionCategories {
		if c.ID == id {
			return c.Label
		}
	}
	return id
}

func (v *liarView) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	s := v.ctrl.Snapshot()
	if s.Stage != liar.StageMenu && ev.Key() == tcell.KeyEscape {
		v.reset()
		v.ctrl.ResetToMenu()
		return false
	}

	switch s.Stage {
	case liar.StageMenu:
		return v.handleMenuKey(ctx, s, ev)
	case liar.StageInput:
		if !v.flipped {
			if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
				v.flipped = true
			}
			return false
		}
		if ev.Key() == tcell.KeyEnter {
			if round.Clean(v.answer.Value()) == "" {
				return false
			}
			v.ctrl.SubmitAnswer(v.answer.Value())
			v.reset()
			return false
		}
		v.answer.HandleKey(ev)
	case liar.StageBoard:
		if ev.Key() != tcell.KeyRune {
			return false
		}
		switch ev.Rune() {
		case 'r', 'R':
			v.ctrl.ToggleReveal()
		case 'm', 'M':
			v.ctrl.ResetToMenu()
		}
	}
	return false
}

func (v *liarView) reset() {
	v.flipped = false
	v.answer.Clear()
}

func (v *liarView) handleMenuKey(ctx context.Context, s liar.Snapshot, ev *tcell.EventKey) bool {
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

	if row.kind == rowPlayer {
		switch ev.Key() {
		case tcell.KeyDelete:
			v.ctrl.RemovePlayer(row.index)
		case tcell.KeyEnter:
			v.menu.move(1, len(rows))
		default:
			in := ui.NewInput(nameLimit)
			in.SetValue(s.Roster[row.index])
			if in.HandleKey(ev) {
				v.ctrl.SetPlayerName(row.index, in.Value())
			}
		}
		return false
	}

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
	case rowStart:
		v.reset()
		v.ctrl.StartRound(ctx)
	}
	return false
}

func (v *liarView) draw(r *ui.Renderer) {
	s := v.ctrl.Snapshot()
	pal := v.cfg.Palettes.Get("liar")
	r.Begin(pal)
	r.Bar(0, v.text("liar.title"), pal.Selected())

	switch s.Stage {
	case liar.StageMenu:
		v.drawMenu(r, pal, s)
	case liar.StageInput:
		v.drawInput(r, pal, s)
	case liar.StageBoard:
		v.drawBoard(r, pal, s)
	}
	r.End()
}

func (v *liarView) drawMenu(r *ui.Renderer, pal ui.Palette, s liar.Snapshot) {
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
			line = v.text("liar.category") + ": " + v.categoryLabel(s.Settings.Category)
		case rowCount:
			line = v.text("liar.count") + ": " + strconv.Itoa(s.Settings.LiarCount)
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

func (v *liarView) drawInput(r *ui.Renderer, pal ui.Palette, s liar.Snapshot) {
	name, question, ok := s.Prompt()
	if !ok {
		return
	}
	r.Centered(2, fmt.Sprintf("%d / %d", s.ActiveIndex+1, len(s.Players)), pal.Dim())
	r.Centered(4, name, pal.Title())

	if !v.flipped {
		r.Footer(v.text("liar.tap_to_flip"), pal.Dim())
		return
	}

	width, _ := r.Size()
	r.Centered(6, v.text("liar.your_question"), pal.Dim())
	r.Centered(7, ui.Truncate(question, width-2), pal.Base().Bold(true))
	field := v.text("liar.answer") + ": " + v.answer.Value() + "▏"
	r.Text(2, 9, ui.Truncate(field, width-4), pal.Base())
	r.Footer(v.text("liar.submit"), pal.Dim())
}

func (v *liarView) drawBoard(r *ui.Renderer, pal ui.Palette, s liar.Snapshot) {
	width, _ := r.Size()
	y := 2
	if s.Revealed {
		r.Centered(y, v.text("liar.truth_was"), pal.Dim())
		r.Centered(y+1, ui.Truncate(s.Question.Truth, width-2), pal.Base().Bold(true))
		r.Centered(y+2, v.text("liar.liar_was"), pal.Dim())
		r.Centered(y+3, ui.Truncate(s.Question.Liar, width-2), pal.Title())
		y += 5
	} else {
		r.Centered(y, v.text("liar.question"), pal.Dim())
		r.Centered(y+1, ui.Truncate(s.Question.Truth, width-2), pal.Base().Bold(true))
		y += 3
	}

	for _, p := range s.Players {
		x := r.Text(2, y, p.Name+": ", pal.Base().Bold(true))
		x = r.Text(x, y, p.Answer, pal.Base())
		if s.Revealed && p.IsLiar {
			r.Text(x+1, y, "["+v.text("liar.marker")+"]", pal.Title())
		}
		y++
	}
	r.Footer(v.text("liar.reveal")+" · "+v.text("liar.restart"), pal.Dim())
}
