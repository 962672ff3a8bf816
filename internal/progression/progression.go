// Package progression implements the experience curve and level-up rewards.
package progression

import "github.com/samdwyer/dungeoncrawl/internal/entity"

const (
	// HealthPerLevel is the max health granted by each level gained.
	HealthPerLevel = 5
	// RespawnPenalty is the experience lost when respawning.
	RespawnPenalty = 5
	// expStep scales the curve: level L+1 needs expStep*2*L more than level L.
	expStep = 10
)

// Threshold returns the total experience required to reach level. Levels at
// or below 1 need nothing.
func Threshold(level int) int {
	if level <= 1 {
		return 0
	}
	return expStep * level * (level - 1)
}

// LevelFor returns the level a player with the given total experience has
// earned.
func LevelFor(exp int) int {
	level := 1
	for exp >= Threshold(level+1) {
		level++
	}
	return level
}

// ToNextLevel returns how much more experience the player needs to level up.
func ToNextLevel(p *entity.Player) int {
	return max(Threshold(p.Level+1)-p.Experience, 0)
}

// Award is the outcome of granting experience.
type Award struct {
	Experience   int // Experience granted
	LevelsGained int
	Level        int // Level after the award
	MaxHealth    int // Max health after the award
}

// Grant adds exp to the player and applies every level-up it crosses. Each
// level adds HealthPerLevel max health and restores health to full.
func Grant(p *entity.Player, exp int) Award {
	if exp > 0 {
		p.Experience += exp
	}
	award := Award{Experience: max(exp, 0)}
	for p.Experience >= Threshold(p.Level+1) {
		p.Level++
		p.MaxHealth += HealthPerLevel
		p.Health = p.MaxHealth
		award.LevelsGained++
	}
	award.Level = p.Level
	award.MaxHealth = p.MaxHealth
	return award
}

// Penalize applies the respawn experience penalty. Experience never drops
// below zero and the level is kept.
func Penalize(p *entity.Player) int {
	lost := min(RespawnPenalty, p.Experience)
	p.Experience -= lost
	return lost
}
