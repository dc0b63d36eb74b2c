// Package version computes the next version string and reads the current
// one.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/releasekit/nextver/internal/scoring"
	"github.com/releasekit/nextver/pkg/config"
)

// MainMod is the modulus for the patch and minor slots; overflow carries
// into the next segment.
const MainMod = 1000

// BaseDelta is the churn-driven floor of a bump. The minor and major slopes
// derive from their divisors at fixed 1/5 and 1/10 ratios (100 at defaults);
// a configured divisor not divisible by the ratio shifts the slope away from
// the configured value.
func BaseDelta(kind scoring.Suggestion, loc int, cfg config.Values) int {
	var delta int
	switch kind {
	case scoring.Patch:
		delta = cfg.BaseDeltaPatch + roundDiv(loc, cfg.LocDivisorPatch)
	case scoring.Minor:
		delta = cfg.BaseDeltaMinor + roundDiv(loc, max(1, cfg.LocDivisorMinor/5))
	case scoring.Major:
		delta = cfg.BaseDeltaMajor + roundDiv(loc, max(1, cfg.LocDivisorMajor/10))
	default:
		return 1
	}
	if delta < 1 {
		return 1
	}
	return delta
}

// Multiplier returns the churn multiplier for a bump kind in hundredths:
// min(cap, 1 + LOC/divisor), quantised to two decimals.
func Multiplier(kind scoring.Suggestion, loc int, cfg config.Values) int {
	divisor := cfg.LocDivisorPatch
	switch kind {
	case scoring.Minor:
		divisor = cfg.LocDivisorMinor
	case scoring.Major:
		divisor = cfg.LocDivisorMajor
	}

	mult := 1.0
	if divisor > 0 {
		mult += float64(loc) / float64(divisor)
	}
	if mult > cfg.BonusMultiplierCap {
		mult = cfg.BonusMultiplierCap
	}
	return int(mult*100 + 0.5)
}

// ScaledBonus applies the quantised multiplier to the bonus total.
func ScaledBonus(bonus int, kind scoring.Suggestion, loc int, cfg config.Values) int {
	return roundDiv(bonus*Multiplier(kind, loc, cfg), 100)
}

// Delta is the full version increment for a kind: base delta plus the
// multiplied bonus, floored at 1.
func Delta(kind scoring.Suggestion, loc, bonus int, cfg config.Values) int {
	total := BaseDelta(kind, loc, cfg) + ScaledBonus(bonus, kind, loc, cfg)
	if total < 1 {
		return 1
	}
	return total
}

// Bump computes the next version. The delta is always added to the patch
// slot; overflow carries into minor and then major, and lower segments are
// never reset. A 0.0.0 current version maps straight to the first release
// of the requested kind.
func Bump(current string, kind scoring.Suggestion, loc, bonus int, cfg config.Values) string {
	maj, min, pat := parseLoose(current)

	if maj == 0 && min == 0 && pat == 0 {
		switch kind {
		case scoring.Major:
			return "1.0.0"
		case scoring.Minor:
			return "0.1.0"
		default:
			return "0.0.1"
		}
	}

	total := Delta(kind, loc, bonus, cfg)

	z := pat + total
	y := min + z/MainMod
	z %= MainMod
	x := maj + y/MainMod
	y %= MainMod

	return fmt.Sprintf("%d.%d.%d", x, y, z)
}

// parseLoose reads up to three dotted numeric segments, defaulting missing
// or malformed ones to zero.
func parseLoose(v string) (maj, min, pat int) {
	parts := strings.SplitN(v, ".", 3)
	read := func(i int) int {
		if i >= len(parts) {
			return 0
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 {
			return 0
		}
		return n
	}
	return read(0), read(1), read(2)
}

// roundDiv divides with half-away-from-zero rounding; inputs here are
// non-negative.
func roundDiv(n, d int) int {
	if d <= 0 {
		return 0
	}
	return (n + d/2) / d
}
