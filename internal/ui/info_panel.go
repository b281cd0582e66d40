// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	game "sui-tower-defense/internal/app"
	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/defs"
)

const (
	panelTop      = config.FieldOffsetY + 20
	cardHeight    = 58
	cardGap       = 8
	cardPadding   = 10
	lineHeight    = 16
	startBtnH     = 40
	startBtnInset = 10
)

// RosterPanel - боковая панель с башнями игрока и кнопкой старта волны.
type RosterPanel struct {
	X, Y, Width int
	StartButton *Button
}

// NewRosterPanel создает панель справа от поля.
func NewRosterPanel() *RosterPanel {
	x, w := config.PanelX, config.PanelWidth
	start := image.Rect(x+startBtnInset, config.ScreenHeight-startBtnH-startBtnInset, x+w-startBtnInset, config.ScreenHeight-startBtnInset)
	return &RosterPanel{X: x, Y: panelTop, Width: w, StartButton: NewButton(start, "Start Wave")}
}

// CardRect - прямоугольник i-й карточки.
func (p *RosterPanel) CardRect(i int) image.Rectangle {
	top := p.Y + i*(cardHeight+cardGap)
	return image.Rect(p.X, top, p.X+p.Width, top+cardHeight)
}

// Capacity - сколько карточек помещается над кнопкой старта.
func (p *RosterPanel) Capacity() int {
	space := p.StartButton.Rect.Min.Y - cardGap - p.Y
	if space <= 0 {
		return 0
	}
	return (space + cardGap) / (cardHeight + cardGap)
}

// EntryAt возвращает индекс карточки под точкой, n - длина ростера.
func (p *RosterPanel) EntryAt(x, y, n int) (int, bool) {
	if n > p.Capacity() {
		n = p.Capacity()
	}
	pt := image.Pt(x, y)
	for i := 0; i < n; i++ {
		if pt.In(p.CardRect(i)) {
			return i, true
		}
	}
	return -1, false
}

// CardLines - две строки карточки башни.
func CardLines(src defs.TowerSource) (string, string) {
	title := fmt.Sprintf("%s  %s", defs.RarityName(src.Rarity), src.ID)
	stats := fmt.Sprintf("DMG %d  RNG %.0f  CD %.0fms", src.Damage, src.Range, src.FireRate)
	return title, stats
}

// Draw рисует панель: фон, карточки, кнопку старта.
func (p *RosterPanel) Draw(screen *ebiten.Image, entries []game.RosterEntry, cursorX, cursorY int) {
	vector.DrawFilledRect(screen, float32(p.X-5), float32(config.FieldOffsetY), float32(p.Width+10), float32(config.FieldHeight), config.PanelColor, true)
	DrawText(screen, "YOUR TOWERS", p.X+cardPadding, p.Y-5, config.TextDimColor)

	n := len(entries)
	if n > p.Capacity() {
		n = p.Capacity()
	}
	hover := image.Pt(cursorX, cursorY)
	for i := 0; i < n; i++ {
		p.drawCard(screen, p.CardRect(i), entries[i], hover.In(p.CardRect(i)))
	}
	if len(entries) == 0 {
		DrawText(screen, "No towers. Mint one first.", p.X+cardPadding, p.Y+lineHeight*2, config.TextDimColor)
	}

	p.StartButton.Draw(screen, p.StartButton.Contains(cursorX, cursorY))
}

func (p *RosterPanel) drawCard(screen *ebiten.Image, r image.Rectangle, e game.RosterEntry, hovered bool) {
	pal := defs.Palette(e.Source.Rarity)
	bg := config.ButtonColor
	if hovered && !e.Placed {
		bg = config.ButtonHover
	}
	if e.Placed {
		bg = config.ButtonDisabled
	}
	x, y := float32(r.Min.X), float32(r.Min.Y)
	w, h := float32(r.Dx()), float32(r.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, true)
	vector.DrawFilledRect(screen, x, y, 5, h, pal.Mid, true)
	if e.Selected {
		vector.StrokeRect(screen, x, y, w, h, 2, config.SelectionOutline, true)
	}

	title, stats := CardLines(e.Source)
	fg := config.TextLightColor
	if e.Placed {
		fg = config.TextDimColor
	}
	DrawText(screen, title, r.Min.X+cardPadding+4, r.Min.Y+lineHeight+2, pal.Glow)
	DrawText(screen, stats, r.Min.X+cardPadding+4, r.Min.Y+lineHeight*2+6, fg)
	if e.Placed {
		DrawText(screen, "placed", r.Max.X-50, r.Min.Y+lineHeight+2, config.TextDimColor)
	}
}
