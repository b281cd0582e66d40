package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	game "sui-tower-defense/internal/app"
	"sui-tower-defense/internal/logging"
)

const frameInterval = 16 * time.Millisecond

// App - терминальный клиент одной сессии.
type App struct {
	screen  tcell.Screen
	session *game.Session
	cursorX int
	cursorY int
	last    time.Time
	log     zerolog.Logger
}

func New(screen tcell.Screen, session *game.Session, log zerolog.Logger) *App {
	return &App{screen: screen, session: session, log: logging.Component(log, "tui")}
}

// viewport - поле занимает экран без двух строк HUD и ростера.
func (a *App) viewport() Viewport {
	w, h := a.screen.Size()
	rows := h - hudRows - 1
	if rows < 1 {
		rows = 1
	}
	if w < 1 {
		w = 1
	}
	return Viewport{Cols: w, Rows: rows}
}

// Run крутит цикл до выхода игрока или отмены ctx.
func (a *App) Run(ctx context.Context) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	a.last = time.Now()
	for {
		select {
		case <-ctx.Done():
			a.session.Close()
			return
		case ev := <-events:
			if !a.HandleEvent(ev) {
				a.session.Close()
				return
			}
		case now := <-ticker.C:
			a.session.Game.Update(now.Sub(a.last).Seconds())
			a.last = now
			a.session.Poll(now)
			a.Draw()
		}
	}
}

// HandleEvent обрабатывает клавишу. false - выйти.
func (a *App) HandleEvent(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return true
	}
	g := a.session.Game
	v := a.viewport()
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.moveCursor(0, -1, v)
	case tcell.KeyDown:
		a.moveCursor(0, 1, v)
	case tcell.KeyLeft:
		a.moveCursor(-1, 0, v)
	case tcell.KeyRight:
		a.moveCursor(1, 0, v)
	case tcell.KeyEnter:
		x, y := v.ToField(a.cursorX, a.cursorY)
		g.Click(x, y)
	case tcell.KeyRune:
		r := key.Rune()
		switch {
		case r == 'q':
			return false
		case r == ' ':
			g.StartWave()
		case r == 's':
			g.ToggleSpeed()
		case r == 'p':
			g.TogglePause()
		case r == 'r':
			a.session.Retry()
		case r >= '1' && r <= '9':
			roster := g.Roster()
			if i := int(r - '1'); i < len(roster) {
				g.SelectTower(roster[i].Source.ID)
			}
		}
	}
	return true
}

func (a *App) moveCursor(dx, dy int, v Viewport) {
	a.cursorX = clamp(a.cursorX+dx, 0, v.Cols-1)
	a.cursorY = clamp(a.cursorY+dy, 0, v.Rows-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Cursor - позиция курсора в клетках поля.
func (a *App) Cursor() (int, int) { return a.cursorX, a.cursorY }

// Draw выводит кадр на экран.
func (a *App) Draw() {
	g := a.session.Game
	v := a.viewport()
	a.screen.Clear()

	a.drawString(0, 0, StatusLine(g), tcell.StyleDefault.Bold(true))
	f := RenderField(g.ECS, g.Track, v)
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			c := f.At(x, y)
			a.screen.SetContent(x, y+1, c.Ch, nil, c.Style)
		}
	}
	cur := f.At(a.cursorX, a.cursorY)
	a.screen.SetContent(a.cursorX, a.cursorY+1, cur.Ch, nil, cur.Style.Reverse(true))

	_, h := a.screen.Size()
	a.drawString(0, h-2, RosterLine(g.Roster()), tcell.StyleDefault.Foreground(tcell.ColorGray))
	msg := g.Message()
	if out, ok := a.session.Outcome(); ok && !a.session.Submitting() {
		msg = resultSummary(out, a.session.CanRetry())
	}
	a.drawString(0, h-1, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	a.screen.Show()
}

func resultSummary(out game.Outcome, canRetry bool) string {
	s := "DEFEAT"
	if out.Victory {
		s = "VICTORY"
	}
	s += "  waves " + strconv.Itoa(out.WavesCleared) + "  lives " + strconv.Itoa(out.LivesRemaining)
	if canRetry {
		return s + "  (r: retry submission, q: quit)"
	}
	return s + "  (q: quit)"
}

func (a *App) drawString(x, y int, s string, st tcell.Style) {
	w, _ := a.screen.Size()
	for _, r := range s {
		if x >= w {
			return
		}
		a.screen.SetContent(x, y, r, nil, st)
		x++
	}
}
