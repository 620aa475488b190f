// Package calendar provides game time arithmetic and the natural light
// curve. Time is a plain turn counter (one turn = one second); the engine
// never reads a wall clock.
package calendar

// A Turn counts game seconds since the start of year one.
type Turn int64

const (
	SecondsPerMinute = 60
	MinutesPerHour   = 60
	HoursPerDay      = 24
	DaysPerSeason    = 14
	SeasonsPerYear   = 4

	TurnsPerHour Turn = SecondsPerMinute * MinutesPerHour
	TurnsPerDay  Turn = TurnsPerHour * HoursPerDay
	TurnsPerYear Turn = TurnsPerDay * DaysPerSeason * SeasonsPerYear
)

// Season of the year, starting in spring.
type Season uint8

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

// MoonPhase of the night sky. The synodic cycle is approximated as four
// weeks, waxing from new to full and back.
type MoonPhase uint8

const (
	MoonNew MoonPhase = iota
	MoonDim
	MoonBright
	MoonFull
)

const (
	// DaylightLevel is the ambient luminance of full midday sun.
	DaylightLevel = 100.0

	// twilightHours is how long dawn and dusk each take.
	twilightHours = 1
)

// moonlightLevels holds ambient luminance per moon phase. A new moon sits
// below the faint-light floor; a full moon gives barely usable light.
var moonlightLevels = [4]float32{MoonNew: 0.25, MoonDim: 1.0, MoonBright: 2.0, MoonFull: 4.0}

// Hour returns the hour of day, 0-23.
func (t Turn) Hour() int { return int(t % TurnsPerDay / TurnsPerHour) }

// Minute returns the minute of the hour, 0-59.
func (t Turn) Minute() int { return int(t % TurnsPerHour / SecondsPerMinute) }

// Day returns the day number since the start of year one.
func (t Turn) Day() int { return int(t / TurnsPerDay) }

// DayOfSeason returns the day within the current season, 0-13.
func (t Turn) DayOfSeason() int { return t.Day() % (DaysPerSeason * SeasonsPerYear) % DaysPerSeason }

// Season returns the season of the year.
func (t Turn) Season() Season {
	return Season(t.Day() % (DaysPerSeason * SeasonsPerYear) / DaysPerSeason)
}

// Year returns the year, starting at 1.
func (t Turn) Year() int { return int(t/TurnsPerYear) + 1 }

// sunriseHour and sunsetHour per season; winter days are short.
var (
	sunriseHours = [4]int{Spring: 6, Summer: 5, Autumn: 7, Winter: 8}
	sunsetHours  = [4]int{Spring: 19, Summer: 21, Autumn: 18, Winter: 17}
)

// Sunrise returns the turn of today's sunrise.
func (t Turn) Sunrise() Turn {
	return Turn(t.Day())*TurnsPerDay + Turn(sunriseHours[t.Season()])*TurnsPerHour
}

// Sunset returns the turn of today's sunset.
func (t Turn) Sunset() Turn {
	return Turn(t.Day())*TurnsPerDay + Turn(sunsetHours[t.Season()])*TurnsPerHour
}

// Moon returns the current moon phase.
func (t Turn) Moon() MoonPhase {
	seg := t.Day() % 28 * 8 / 28
	switch seg {
	case 0, 7:
		return MoonNew
	case 1, 6:
		return MoonDim
	case 2, 5:
		return MoonBright
	default:
		return MoonFull
	}
}

// Moonlight returns the ambient luminance contributed by the moon.
func (t Turn) Moonlight() float32 { return moonlightLevels[t.Moon()] }

// Sunlight returns the ambient natural light level for outside tiles:
// full daylight between sunrise and sunset, moonlight at night, and a
// linear blend across the twilight hours.
func (t Turn) Sunlight() float32 {
	rise := t.Sunrise()
	set := t.Sunset()
	moon := t.Moonlight()
	twilight := Turn(twilightHours) * TurnsPerHour

	switch {
	case t < rise || t >= set+twilight:
		return moon
	case t < rise+twilight:
		frac := float32(t-rise) / float32(twilight)
		return moon + (DaylightLevel-moon)*frac
	case t < set:
		return DaylightLevel
	default:
		frac := float32(t-set) / float32(twilight)
		return DaylightLevel + (moon-DaylightLevel)*frac
	}
}

// IsNight reports whether the turn falls outside daylight and twilight.
func (t Turn) IsNight() bool {
	twilight := Turn(twilightHours) * TurnsPerHour
	return t < t.Sunrise() || t >= t.Sunset()+twilight
}

// At builds a Turn from a day number and an hour of that day. Handy for
// tests and demo setups.
func At(day, hour int) Turn {
	return Turn(day)*TurnsPerDay + Turn(hour)*TurnsPerHour
}
