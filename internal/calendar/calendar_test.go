package calendar

import "testing"

func TestTurnArithmetic(t *testing.T) {
	turn := At(3, 14) + 25*SecondsPerMinute + 42

	if got := turn.Day(); got != 3 {
		t.Errorf("Day() = %d, want 3", got)
	}
	if got := turn.Hour(); got != 14 {
		t.Errorf("Hour() = %d, want 14", got)
	}
	if got := turn.Minute(); got != 25 {
		t.Errorf("Minute() = %d, want 25", got)
	}
}

func TestSeasonProgression(t *testing.T) {
	cases := []struct {
		day  int
		want Season
	}{
		{0, Spring},
		{13, Spring},
		{14, Summer},
		{28, Autumn},
		{42, Winter},
		{56, Spring}, // wraps into year two
	}
	for _, c := range cases {
		if got := At(c.day, 12).Season(); got != c.want {
			t.Errorf("day %d: Season() = %v, want %v", c.day, got, c.want)
		}
	}
}

func TestSunlightNoonIsDaylight(t *testing.T) {
	if got := At(0, 12).Sunlight(); got != DaylightLevel {
		t.Errorf("noon Sunlight() = %v, want %v", got, float32(DaylightLevel))
	}
}

func TestSunlightMidnightIsMoonlight(t *testing.T) {
	turn := At(0, 0)
	if got, want := turn.Sunlight(), turn.Moonlight(); got != want {
		t.Errorf("midnight Sunlight() = %v, want moonlight %v", got, want)
	}
	if !turn.IsNight() {
		t.Error("midnight should be night")
	}
}

func TestSunlightTwilightBetweenMoonAndDay(t *testing.T) {
	// Day 0 is spring: sunrise at 06:00. Half an hour in, the light level
	// must sit strictly between moonlight and full daylight.
	turn := At(0, 6) + 30*SecondsPerMinute
	got := turn.Sunlight()
	if got <= turn.Moonlight() || got >= DaylightLevel {
		t.Errorf("dawn Sunlight() = %v, want between %v and %v", got, turn.Moonlight(), float32(DaylightLevel))
	}
}

func TestMoonCycleWaxesAndWanes(t *testing.T) {
	if got := At(0, 0).Moon(); got != MoonNew {
		t.Errorf("day 0 Moon() = %v, want MoonNew", got)
	}
	if got := At(12, 0).Moon(); got != MoonFull {
		t.Errorf("day 12 Moon() = %v, want MoonFull", got)
	}
	// Back near new by the end of the four-week cycle.
	if got := At(27, 0).Moon(); got != MoonNew {
		t.Errorf("day 27 Moon() = %v, want MoonNew", got)
	}
}

func TestWinterDaysShorterThanSummer(t *testing.T) {
	summer := At(14, 0)
	winter := At(42, 0)
	summerLen := summer.Sunset() - summer.Sunrise()
	winterLen := winter.Sunset() - winter.Sunrise()
	if winterLen >= summerLen {
		t.Errorf("winter day %v not shorter than summer day %v", winterLen, summerLen)
	}
}
