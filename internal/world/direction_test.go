package world

import "testing"

func TestParseDirection(t *testing.T) {
	tests := []struct {
		token   string
		want    Direction
		wantErr bool
	}{
		{"north", North, false},
		{"SOUTH", South, false},
		{" East ", East, false},
		{"west", West, false},
		{"up", 0, true},
		{"", 0, true},
		{"northeast", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.token)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestDirectionDelta(t *testing.T) {
	start := Position{X: 3, Y: 3}
	tests := []struct {
		dir  Direction
		want Position
	}{
		{North, Position{3, 2}},
		{South, Position{3, 4}},
		{East, Position{4, 3}},
		{West, Position{2, 3}},
	}

	for _, tt := range tests {
		if got := tt.dir.Apply(start); got != tt.want {
			t.Errorf("%s.Apply(%v) = %v, want %v", tt.dir, start, got, tt.want)
		}
	}
}

func TestDirectionString(t *testing.T) {
	if Direction(99).String() != "unknown" {
		t.Error("out-of-range direction should stringify as unknown")
	}
	got := DirectionStrings([]Direction{South, East})
	if len(got) != 2 || got[0] != "south" || got[1] != "east" {
		t.Errorf("DirectionStrings() = %v", got)
	}
}
