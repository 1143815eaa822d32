package game

import (
	"context"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/partybox/internal/city"
	"github.com/samdwyer/partybox/internal/ui"
)

const (
	rowColumn rowKind = iota + 100
	rowAddColumn
	rowManualLetter
	rowRandomStart
	rowResetScore
)

const categoryLimit = 30

type cityView struct {
	ctrl      *city.Controller
	cfg       Config
	menu      cursor
	sheet     cursor
	newColumn *ui.Input
	letter    *ui.Input
}

func newCityView(cfg Config) *cityView {
	return &cityView{
		ctrl:      cfg.City,
		cfg:       cfg,
		newColumn: ui.NewInput(categoryLimit),
		letter:    ui.NewInput(1),
	}
}

func (v *cityView) text(key string) string {
	return v.cfg.Strings.Get(key)
}

func (v *cityView) rows(s city.Snapshot) []menuRow {
	rows := make([]menuRow, 0, len(s.Categories)+4)
	for i := range s.Categories {
		rows = append(rows, menuRow{kind: rowColumn, index: i})
	}
	return append(rows,
		menuRow{kind: rowAddColumn},
		menuRow{kind: rowRandomStart},
		menuRow{kind: rowManualLetter},
		menuRow{kind: rowResetScore},
	)
}

func (v *cityView) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	s := v.ctrl.Snapshot()
	if s.Stage != city.StageMenu && ev.Key() == tcell.KeyEscape {
		v.ctrl.ResetToMenu()
		return false
	}

	switch s.Stage {
	case city.StageMenu:
		return v.handleMenuKey(s, ev)
	case city.StagePlay:
		v.handlePlayKey(s, ev)
	case city.StageScoring:
		switch ev.Key() {
		case tcell.KeyUp:
			v.sheet.move(-1, len(s.Categories))
		case tcell.KeyDown:
			v.sheet.move(1, len(s.Categories))
		case tcell.KeyEnter:
			v.ctrl.CompleteScoring()
		case tcell.KeyRune:
			if ev.Rune() == ' ' {
				if i := v.sheet.clamp(len(s.Categories)); i < len(s.Categories) {
					v.ctrl.ToggleScore(s.Categories[i])
				}
			}
		}
	}
	return false
}

func (v *cityView) handleMenuKey(s city.Snapshot, ev *tcell.EventKey) bool {
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
	case rowColumn:
		if ev.Key() == tcell.KeyDelete {
			v.ctrl.RemoveCategory(row.index)
		}
	case rowAddColumn:
		if ev.Key() == tcell.KeyEnter {
			v.ctrl.AddCategory(v.newColumn.Value())
			v.newColumn.Clear()
			return false
		}
		v.newColumn.HandleKey(ev)
	case rowManualLetter:
		if ev.Key() == tcell.KeyEnter {
			v.sheet = cursor{}
			v.ctrl.StartManual(v.letter.Value())
			v.letter.Clear()
			return false
		}
		v.letter.HandleKey(ev)
	case rowRandomStart:
		if activates(ev) {
			v.sheet = cursor{}
			v.ctrl.StartRandom()
		}
	case rowResetScore:
		if activates(ev) {
			v.ctrl.ResetScore()
		}
	}
	return false
}

func (v *cityView) handlePlayKey(s city.Snapshot, ev *tcell.EventKey) {
	if !s.HasLetter() {
		if activates(ev) || (ev.Key() == tcell.KeyRune && (ev.Rune() == 's' || ev.Rune() == 'S')) {
			v.ctrl.SpinLetter()
		}
		return
	}

	switch ev.Key() {
	case tcell.KeyCtrlF:
		v.sheet = cursor{}
		v.ctrl.FinishPlay(s.Answers)
		return
	case tcell.KeyUp:
		v.sheet.move(-1, len(s.Categories))
		return
	case tcell.KeyDown, tcell.KeyTab, tcell.KeyEnter:
		v.sheet.move(1, len(s.Categories))
		return
	}

	i := v.sheet.clamp(len(s.Categories))
	if i >= len(s.Categories) {
		return
	}
	cat := s.Categories[i]
	in := ui.NewInput(answerLimit)
	in.SetValue(s.Answers[cat])
	if in.HandleKey(ev) {
		v.ctrl.SetAnswer(cat, in.Value())
	}
}

func (v *cityView) draw(r *ui.Renderer) {
	s := v.ctrl.Snapshot()
	pal := v.cfg.Palettes.Get("city")
	r.Begin(pal)
	r.Bar(0, v.text("city.title"), pal.Selected())

	switch s.Stage {
	case city.StageMenu:
		v.drawMenu(r, pal, s)
	case city.StagePlay:
		v.drawPlay(r, pal, s)
	case city.StageScoring:
		v.drawScoring(r, pal, s)
	}
	r.End()
}

func (v *cityView) drawMenu(r *ui.Renderer, pal ui.Palette, s city.Snapshot) {
	r.Text(2, 2, v.text("city.session_score")+": "+strconv.Itoa(s.SessionScore), pal.Title())
	r.Text(2, 3, v.text("city.categories"), pal.Dim())

	rows := v.rows(s)
	sel := v.menu.clamp(len(rows))
	for i, row := range rows {
		var line string
		switch row.kind {
		case rowColumn:
			line = "• " + s.Categories[row.index]
		case rowAddColumn:
			line = "+ " + v.text("city.add_category") + ": " + v.newColumn.Value()
		case rowRandomStart:
			line = "▶ " + v.text("common.start")
		case rowManualLetter:
			line = v.text("city.manual") + ": " + v.letter.Value()
		case rowResetScore:
			line = v.text("city.reset_score")
		}
		style := pal.Base()
		if i == sel {
			style = pal.Selected()
		}
		r.Text(2, 4+i, " "+line+" ", style)
	}
	r.Footer(v.text("app.keys"), pal.Dim())
}

func (v *cityView) drawPlay(r *ui.Renderer, pal ui.Palette, s city.Snapshot) {
	if !s.HasLetter() {
		r.Centered(3, v.text("city.letter")+": ?", pal.Title())
		r.Footer(v.text("city.spin")+" · "+v.text("common.cancel"), pal.Dim())
		return
	}

	r.Text(2, 2, v.text("city.letter")+": "+s.Letter, pal.Title())
	sel := v.sheet.clamp(len(s.Categories))
	for i, cat := range s.Categories {
		style := pal.Base()
		if i == sel {
			style = pal.Selected()
		}
		x := r.Text(2, 4+i, " "+cat+": ", style)
		r.Text(x, 4+i, s.Answers[cat]+" ", style)
	}
	r.Footer(v.text("city.finish")+" · "+v.text("common.cancel"), pal.Dim())
}

func (v *cityView) drawScoring(r *ui.Renderer, pal ui.Palette, s city.Snapshot) {
	r.Text(2, 2, v.text("city.round_score")+": "+strconv.Itoa(s.RoundScore), pal.Title())
	sel := v.sheet.clamp(len(s.Categories))
	for i, cat := range s.Categories {
		style := pal.Base()
		if i == sel {
			style = pal.Selected()
		}
		answer := s.Answers[cat]
		if answer == "" {
			answer = "—"
		}
		line := " [" + strconv.Itoa(s.Scores[cat]) + "] " + cat + ": " + answer + " "
		r.Text(2, 4+i, line, style)
	}
	r.Footer(v.text("city.score_help")+" · "+v.text("city.complete"), pal.Dim())
}
