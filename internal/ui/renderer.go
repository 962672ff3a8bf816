package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// HelpText is drawn on the last screen row.
const HelpText = "arrows/hjkl move  a attack  f flee  p potion  e equip  r respawn  q quit"

// mapTop is the first screen row of the map grid.
const mapTop = 2

// View is everything one frame draws.
type View struct {
	Status  game.Snapshot
	Map     string
	Message string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen   *Screen
	monsters *gamedata.MonsterRegistry
}

// NewRenderer creates a renderer that colors monsters from the registry.
func NewRenderer(screen *Screen, monsters *gamedata.MonsterRegistry) *Renderer {
	return &Renderer{screen: screen, monsters: monsters}
}

// Render draws the title, map, status lines, last message and key help.
func (r *Renderer) Render(v View) {
	r.screen.Clear()
	plain := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	r.screen.DrawText(0, 0, fmt.Sprintf("Dungeon Crawl - %s", v.Status.Name), plain.Bold(true))

	y := mapTop
	for _, row := range strings.Split(v.Map, world.RowSeparator) {
		for x, ch := range []rune(row) {
			r.screen.SetContent(x, y, ch, markerStyle(world.Marker(ch)))
		}
		y++
	}

	y++
	r.screen.DrawText(0, y, StatusLine(v.Status), plain)
	y++
	if m := v.Status.Monster; m != nil {
		glyph, style := r.monsterLook(m.Kind)
		r.screen.SetContent(0, y, glyph, style)
		r.screen.DrawText(2, y, MonsterLine(m), style)
	}
	y++
	r.screen.DrawText(0, y, InventoryLine(v.Status), plain)
	y += 2
	r.screen.DrawText(0, y, v.Message, plain)

	_, height := r.screen.Size()
	r.screen.DrawText(0, height-1, HelpText, tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}

// markerStyle returns the appropriate style for a map marker.
func markerStyle(m world.Marker) tcell.Style {
	switch m {
	case world.MarkerPlayer:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case world.MarkerVisited:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.MarkerUnexplored:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	default:
		return tcell.StyleDefault
	}
}

// monsterLook returns the glyph and style for a monster kind. Unknown kinds
// draw as a white '?'.
func (r *Renderer) monsterLook(kind string) (rune, tcell.Style) {
	glyph, color := '?', tcell.ColorWhite
	if def := r.monsters.GetByID(kind); def != nil {
		glyph, color = def.GlyphRune(), def.TCellColor()
	}
	return glyph, tcell.StyleDefault.Foreground(color).Bold(true)
}

// StatusLine summarizes level, health, experience, position and state.
func StatusLine(s game.Snapshot) string {
	return fmt.Sprintf("Lv %d  HP %d/%d  EXP %d (%d to next)  Room (%d,%d)  Explored %d/%d  %s",
		s.Level, s.Health, s.MaxHealth, s.Experience, s.ExpToNext,
		s.Position.X, s.Position.Y, s.RoomsVisited, s.DungeonSize*s.DungeonSize, s.State)
}

// MonsterLine describes the monster the player is fighting.
func MonsterLine(m *game.MonsterView) string {
	line := fmt.Sprintf("%s  HP %d/%d  ATK %d", m.Name, m.HP, m.MaxHP, m.Attack)
	if m.Boss {
		line += "  [BOSS]"
	}
	return line
}

// InventoryLine lists the equipped weapon and carried stacks.
func InventoryLine(s game.Snapshot) string {
	weapon := s.Equipped
	if weapon == "" {
		weapon = "none"
	}
	pack := make([]string, 0, len(s.Inventory))
	for _, stack := range s.Inventory {
		pack = append(pack, fmt.Sprintf("%s x%d", stack.Item, stack.Count))
	}
	if len(pack) == 0 {
		pack = append(pack, "empty")
	}
	return fmt.Sprintf("Weapon: %s  Pack: %s", weapon, strings.Join(pack, ", "))
}
