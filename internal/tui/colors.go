package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Naval-Skirmish/internal/sim"
)

// Terminal palette. Water and bases are backgrounds; ships and overlays are
// foregrounds drawn over them.
var (
	rgbWater     = tcell.NewRGBColor(18, 52, 96)
	rgbWaterFg   = tcell.NewRGBColor(52, 96, 150)
	rgbBaseA     = tcell.NewRGBColor(22, 44, 110)
	rgbBaseB     = tcell.NewRGBColor(86, 32, 48)
	rgbSand      = tcell.NewRGBColor(222, 204, 150)
	rgbShore     = tcell.NewRGBColor(150, 128, 78)
	rgbTeamA     = tcell.NewRGBColor(120, 170, 255)
	rgbTeamB     = tcell.NewRGBColor(255, 90, 90)
	rgbSinking   = tcell.NewRGBColor(130, 130, 130)
	rgbFlash     = tcell.NewRGBColor(255, 220, 110)
	rgbVision    = tcell.NewRGBColor(110, 150, 190)
	rgbRange     = tcell.NewRGBColor(230, 170, 90)
	rgbStatusBg  = tcell.NewRGBColor(26, 27, 38)
	rgbStatusFg  = tcell.NewRGBColor(200, 200, 200)
	rgbBannerBg  = tcell.NewRGBColor(0, 0, 0)
	rgbBannerFg  = tcell.NewRGBColor(255, 255, 255)
	rgbHintColor = tcell.NewRGBColor(180, 180, 180)
)

func teamColor(team sim.Team) tcell.Color {
	if team == sim.TeamA {
		return rgbTeamA
	}
	return rgbTeamB
}
