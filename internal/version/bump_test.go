package version

import (
	"testing"

	"github.com/releasekit/nextver/internal/scoring"
	"github.com/releasekit/nextver/pkg/config"
	"github.com/releasekit/nextver/pkg/semver"
	"github.com/stretchr/testify/assert"
)

func TestBaseDelta(t *testing.T) {
	cfg := config.Defaults()
	tests := []struct {
		name string
		kind scoring.Suggestion
		loc  int
		want int
	}{
		{"patch no churn", scoring.Patch, 0, 1},
		{"patch rounds half up", scoring.Patch, 125, 2}, // 1 + round(125/250)
		{"patch large churn", scoring.Patch, 1000, 5},
		{"minor slope is divisor/5", scoring.Minor, 500, 10}, // 5 + round(500/100)
		{"minor no churn", scoring.Minor, 0, 5},
		{"major slope is divisor/10", scoring.Major, 1000, 20}, // 10 + round(1000/100)
		{"major no churn", scoring.Major, 0, 10},
		{"none kind floors at 1", scoring.None, 5000, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseDelta(tt.kind, tt.loc, cfg))
		})
	}
}

func TestMultiplierQuantisedAndCapped(t *testing.T) {
	cfg := config.Defaults()

	// 1 + 500/500 = 2.00
	assert.Equal(t, 200, Multiplier(scoring.Minor, 500, cfg))
	// 1 + 0 = 1.00
	assert.Equal(t, 100, Multiplier(scoring.Patch, 0, cfg))
	// 1 + 125/250 = 1.50
	assert.Equal(t, 150, Multiplier(scoring.Patch, 125, cfg))
	// 1 + 333/1000 = 1.333 -> 1.33
	assert.Equal(t, 133, Multiplier(scoring.Major, 333, cfg))
	// cap at 5.00: 1 + 10000/250 = 41
	assert.Equal(t, 500, Multiplier(scoring.Patch, 10000, cfg))
}

func TestScaledBonus(t *testing.T) {
	cfg := config.Defaults()

	// bonus 4 at multiplier 2.00 -> 8
	assert.Equal(t, 8, ScaledBonus(4, scoring.Minor, 500, cfg))
	// bonus 3 at multiplier 1.50 -> round(4.5) = 5
	assert.Equal(t, 5, ScaledBonus(3, scoring.Patch, 125, cfg))
	// zero bonus stays zero
	assert.Equal(t, 0, ScaledBonus(0, scoring.Major, 9999, cfg))
}

func TestBumpChurnDrivenMinor(t *testing.T) {
	// LOC=500: base 5+round(500/100)=10, multiplier 2.00, bonus 4 -> 18.
	cfg := config.Defaults()
	assert.Equal(t, "1.2.21", Bump("1.2.3", scoring.Minor, 500, 4, cfg))
}

func TestBumpCarry(t *testing.T) {
	cfg := config.Defaults()

	// base 1, bonus 1 at multiplier 1.00 -> delta 2: 999+2 carries.
	assert.Equal(t, "0.1.1", Bump("0.0.999", scoring.Patch, 0, 1, cfg))
	// delta 1 lands exactly on the modulus.
	assert.Equal(t, "0.1.0", Bump("0.0.999", scoring.Patch, 0, 0, cfg))
}

func TestBumpDoubleCarry(t *testing.T) {
	cfg := config.Defaults()
	// patch delta 1 from 9.999.999 ripples through both slots.
	assert.Equal(t, "10.0.0", Bump("9.999.999", scoring.Patch, 0, 0, cfg))
}

func TestBumpZeroVersionShortcuts(t *testing.T) {
	cfg := config.Defaults()
	assert.Equal(t, "1.0.0", Bump("0.0.0", scoring.Major, 5000, 50, cfg))
	assert.Equal(t, "0.1.0", Bump("0.0.0", scoring.Minor, 0, 0, cfg))
	assert.Equal(t, "0.0.1", Bump("0.0.0", scoring.Patch, 0, 0, cfg))
}

func TestBumpLowerSegmentsNotReset(t *testing.T) {
	cfg := config.Defaults()
	// A major bump adds to the patch slot; minor/patch are preserved, not
	// zeroed.
	assert.Equal(t, "1.2.13", Bump("1.2.3", scoring.Major, 0, 0, cfg))
}

func TestBumpMalformedCurrentTreatedAsZero(t *testing.T) {
	cfg := config.Defaults()
	assert.Equal(t, "0.0.1", Bump("garbage", scoring.Patch, 0, 0, cfg))
	assert.Equal(t, "0.1.0", Bump("", scoring.Minor, 0, 0, cfg))
}

func TestBumpMonotonicAndDeterministic(t *testing.T) {
	cfg := config.Defaults()
	cases := []struct {
		current string
		kind    scoring.Suggestion
		loc     int
		bonus   int
	}{
		{"0.0.1", scoring.Patch, 3, 1},
		{"1.2.3", scoring.Minor, 250, 6},
		{"2.0.999", scoring.Major, 1234, 15},
		{"0.999.999", scoring.Minor, 0, 9},
	}
	for _, c := range cases {
		first := Bump(c.current, c.kind, c.loc, c.bonus, cfg)
		second := Bump(c.current, c.kind, c.loc, c.bonus, cfg)
		assert.Equal(t, first, second, "deterministic for %+v", c)
		assert.Equal(t, 1, semver.Compare(first, c.current), "monotone for %+v", c)
		assert.True(t, semver.IsCore(first), "emits a core triplet for %+v", c)
	}
}

func TestDeltaFloorsAtOne(t *testing.T) {
	cfg := config.Defaults()
	assert.GreaterOrEqual(t, Delta(scoring.Patch, 0, 0, cfg), 1)
}
