package abv

import (
	"math"
	"testing"
)

func gravity(v float64) *float64 {
	return &v
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		readings []Reading
		want     float64
		ok       bool
	}{
		{
			name:     "no readings",
			readings: nil,
			ok:       false,
		},
		{
			name: "single gravity reading",
			readings: []Reading{
				{Gravity: gravity(1.080), OccurredAt: 1000},
			},
			ok: false,
		},
		{
			name: "gravity-less readings do not count",
			readings: []Reading{
				{Gravity: gravity(1.080), OccurredAt: 1000},
				{Gravity: nil, OccurredAt: 2000},
				{Gravity: nil, OccurredAt: 3000},
			},
			ok: false,
		},
		{
			name: "two readings",
			readings: []Reading{
				{Gravity: gravity(1.080), OccurredAt: 1000},
				{Gravity: gravity(1.010), OccurredAt: 2000},
			},
			want: 9.1875,
			ok:   true,
		},
		{
			name: "selection follows occurred_at not input order",
			readings: []Reading{
				{Gravity: gravity(1.100), OccurredAt: 2000},
				{Gravity: gravity(1.050), OccurredAt: 1000},
				{Gravity: gravity(1.010), OccurredAt: 3000},
			},
			want: 5.25,
			ok:   true,
		},
		{
			name: "equal gravities yield zero",
			readings: []Reading{
				{Gravity: gravity(1.000), OccurredAt: 1000},
				{Gravity: gravity(1.000), OccurredAt: 2000},
			},
			want: 0,
			ok:   true,
		},
		{
			name: "rising gravity goes negative",
			readings: []Reading{
				{Gravity: gravity(1.010), OccurredAt: 1000},
				{Gravity: gravity(1.050), OccurredAt: 2000},
			},
			want: -5.25,
			ok:   true,
		},
		{
			name: "identical timestamps keep input order",
			readings: []Reading{
				{Gravity: gravity(1.090), OccurredAt: 1000},
				{Gravity: gravity(1.020), OccurredAt: 1000},
			},
			want: (1.090 - 1.020) * Factor,
			ok:   true,
		},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Calculate(tt.readings)
			if ok != tt.ok {
				t.Fatalf("Calculate ok = %t, want %t", ok, tt.ok)
			}
			if !ok {
				return
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Calculate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	readings := []Reading{
		{Gravity: gravity(1.050), OccurredAt: 3000},
		{Gravity: gravity(1.100), OccurredAt: 1000},
	}

	if _, ok := Calculate(readings); !ok {
		t.Fatal("expected a defined result")
	}

	if readings[0].OccurredAt != 3000 || readings[1].OccurredAt != 1000 {
		t.Fatal("Calculate reordered the caller's slice")
	}
}
