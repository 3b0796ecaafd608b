package statmath_test

import (
	"math"
	"testing"

	"github.com/Kossler/Actual-Analytics/pkg/statmath"
)

func TestCompletionPct(t *testing.T) {
	tests := []struct {
		name        string
		completions *int
		attempts    *int
		want        *float64
	}{
		{"typical line", ip(20), ip(30), fp(66.7)},
		{"perfect game", ip(10), ip(10), fp(100.0)},
		{"rounds to one decimal", ip(1), ip(3), fp(33.3)},
		{"rounds up", ip(2), ip(3), fp(66.7)},
		{"zero attempts", ip(0), ip(0), nil},
		{"missing completions", nil, ip(30), nil},
		{"missing attempts", ip(20), nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statmath.CompletionPct(tt.completions, tt.attempts)

			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %f", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %f, got nil", *tt.want)
			}
			if math.Abs(*got-*tt.want) > 0.0001 {
				t.Errorf("CompletionPct = %f, want %f", *got, *tt.want)
			}
		})
	}
}

func TestDisplayValue(t *testing.T) {
	tests := []struct {
		name      string
		value     *float64
		allowZero bool
		want      string
	}{
		{"missing value", nil, false, "-"},
		{"zero hidden by default", fp(0), false, "-"},
		{"zero preserved on totals row", fp(0), true, "0"},
		{"nonzero value", fp(12.5), false, "12.5"},
		{"negative value", fp(-3.2), false, "-3.2"},
		{"missing value ignores allowZero", nil, true, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statmath.DisplayValue(tt.value, tt.allowZero); got != tt.want {
				t.Errorf("DisplayValue = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayInt(t *testing.T) {
	tests := []struct {
		name      string
		value     *int
		allowZero bool
		want      string
	}{
		{"missing count", nil, false, "-"},
		{"zero hidden by default", ip(0), false, "-"},
		{"zero games preserved on totals row", ip(0), true, "0"},
		{"nonzero count", ip(17), false, "17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statmath.DisplayInt(tt.value, tt.allowZero); got != tt.want {
				t.Errorf("DisplayInt = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayFixed(t *testing.T) {
	tests := []struct {
		name      string
		value     *float64
		decimals  int
		allowZero bool
		want      string
	}{
		{"missing", nil, 2, false, "-"},
		{"epa to two decimals", fp(5.456), 2, false, "5.46"},
		{"rate to one decimal", fp(48.25), 1, false, "48.2"},
		{"zero hidden", fp(0), 2, false, "-"},
		{"zero preserved", fp(0), 2, true, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statmath.DisplayFixed(tt.value, tt.decimals, tt.allowZero); got != tt.want {
				t.Errorf("DisplayFixed = %q, want %q", got, tt.want)
			}
		})
	}
}
