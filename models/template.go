package models

import "time"

// Template - набор правил подсчета очков (очки за килл, бонус за место, размер команды).
type Template struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	KillPoints      int       `json:"kill_points"`
	PlacementPoints []int     `json:"placement_points"` // index 0 = бонус за 1 место
	TeamSize        int       `json:"team_size"`
	CreatedAt       time.Time `json:"created_at"`
}

// PlacementBonus returns the bonus for a 1-based rank, zero outside the table.
func (t *Template) PlacementBonus(rank int) int {
	if t == nil || rank < 1 || rank > len(t.PlacementPoints) {
		return 0
	}
	return t.PlacementPoints[rank-1]
}

func (t Template) Clone() Template {
	out := t
	if t.PlacementPoints != nil {
		out.PlacementPoints = make([]int, len(t.PlacementPoints))
		copy(out.PlacementPoints, t.PlacementPoints)
	}
	return out
}
