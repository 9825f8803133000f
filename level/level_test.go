package level

import (
	"testing"

	"github.com/milk9111/mazechase/prefabs"
)

func TestDefaultTableMatchesArcade(t *testing.T) {
	table, err := Load(DefaultTable)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Len() != 21 {
		t.Fatalf("expected 21 levels, got %d", table.Len())
	}

	first, clamped := table.Row(1)
	if clamped {
		t.Fatalf("expected level 1 to be in the table")
	}
	if first.Bonus != "cherries" || first.BonusValue != 100 {
		t.Fatalf("expected cherries worth 100, got %s %d", first.Bonus, first.BonusValue)
	}
	if first.Elroy1DotsLeft != 20 || first.Elroy2DotsLeft != 10 {
		t.Fatalf("expected elroy thresholds 20/10, got %d/%d", first.Elroy1DotsLeft, first.Elroy2DotsLeft)
	}
	if first.PowerTicks() != 360 {
		t.Fatalf("expected 360 power ticks, got %d", first.PowerTicks())
	}
	if first.GhostSpeed != 0.75 {
		t.Fatalf("expected ghost speed 0.75, got %v", first.GhostSpeed)
	}
}

func TestRowClampsToLastLevel(t *testing.T) {
	table, err := Load(DefaultTable)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	last, _ := table.Row(table.Len())

	cases := []struct {
		name    string
		level   int
		clamped bool
	}{
		{"last", 21, false},
		{"beyond", 22, true},
		{"far beyond", 256, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, clamped := table.Row(c.level)
			if clamped != c.clamped {
				t.Fatalf("expected clamped=%v, got %v", c.clamped, clamped)
			}
			if p != last {
				t.Fatalf("expected the last row, got %+v", p)
			}
		})
	}
}

func TestValidateRejectsBadTables(t *testing.T) {
	if err := (Table{}).Validate(); err == nil {
		t.Fatalf("expected an empty table to fail")
	}
	bad := Table{Levels: []Params{{PlayerSpeed: 1, GhostSpeed: 1, Elroy1DotsLeft: 5, Elroy2DotsLeft: 10}}}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected inverted elroy thresholds to fail")
	}
}

func TestTableHasNoEatingSpeeds(t *testing.T) {
	row := []byte("levels:\n  - {player_speed: .8, player_dots_speed: .71, ghost_speed: .75}\n")
	if _, err := prefabs.DecodeSpec[Table](row); err == nil {
		t.Fatalf("expected an eating speed column to be rejected")
	}
}
