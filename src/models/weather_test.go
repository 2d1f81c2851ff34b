package models

import "testing"

func TestCurrentDayLabel(t *testing.T) {
	tests := []struct {
		isDay int
		want  string
	}{
		{0, "Night"},
		{1, "Day"},
		{-1, "Day"},
		{2, "Day"},
	}

	for _, tt := range tests {
		c := Current{IsDay: tt.isDay}
		if got := c.DayLabel(); got != tt.want {
			t.Errorf("DayLabel() with is_day=%d = %q, want %q", tt.isDay, got, tt.want)
		}
		if c.IsNight() != (tt.want == "Night") {
			t.Errorf("IsNight() with is_day=%d = %t", tt.isDay, c.IsNight())
		}
	}
}
