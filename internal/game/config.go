package game

import (
	"github.com/samdwyer/partybox/internal/city"
	"github.com/samdwyer/partybox/internal/gamedata"
	"github.com/samdwyer/partybox/internal/imposter"
	"github.com/samdwyer/partybox/internal/liar"
	"github.com/samdwyer/partybox/internal/ui"
)

// Config holds everything the views need: one controller per game plus
// the static content used to label menus.
type Config struct {
	Imposter *imposter.Controller
	Liar     *liar.Controller
	City     *city.Controller

	Strings            gamedata.Strings
	Palettes           ui.Palettes
	Categories         []gamedata.CategoryDef
	QuestionCategories []gamedata.QuestionCategory
}
