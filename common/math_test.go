package common

import "testing"

func TestSec(t *testing.T) {
	cases := []struct {
		name    string
		seconds float64
		want    int
	}{
		{name: "whole", seconds: 2, want: 120},
		{name: "fraction", seconds: 2.5, want: 150},
		{name: "rounds", seconds: 1.0 / 60 * 0.6, want: 1},
		{name: "zero", seconds: 0, want: 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Sec(c.seconds); got != c.want {
				t.Fatalf("expected %d ticks, got %d", c.want, got)
			}
		})
	}
}

func TestSpeed(t *testing.T) {
	if got := Speed(0.5); got != 0.625 {
		t.Fatalf("expected 0.625 px/tick, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(25, 1, 21); got != 21 {
		t.Fatalf("expected 21, got %d", got)
	}
	if got := Clamp(-3, 1, 21); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}
