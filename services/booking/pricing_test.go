package booking

import (
	"errors"
	"testing"
)

func TestComputeCost(t *testing.T) {
	cases := []struct {
		name       string
		rate       float64
		hours      float64
		feePercent float64
		want       CostBreakdown
	}{
		{
			name: "studio session", rate: 2000, hours: 2, feePercent: 5,
			want: CostBreakdown{BaseCost: 4000, ServiceFee: 200, Total: 4200},
		},
		{
			name: "fee rounds half up", rate: 1050, hours: 1, feePercent: 5,
			want: CostBreakdown{BaseCost: 1050, ServiceFee: 53, Total: 1103},
		},
		{
			name: "fee rounds down below half", rate: 1040, hours: 1, feePercent: 5,
			want: CostBreakdown{BaseCost: 1040, ServiceFee: 52, Total: 1092},
		},
		{
			name: "fractional hours", rate: 100, hours: 1.5, feePercent: 10,
			want: CostBreakdown{BaseCost: 150, ServiceFee: 15, Total: 165},
		},
		{
			name: "zero rate", rate: 0, hours: 2, feePercent: 5,
			want: CostBreakdown{BaseCost: 0, ServiceFee: 0, Total: 0},
		},
		{
			name: "zero fee percent", rate: 500, hours: 3, feePercent: 0,
			want: CostBreakdown{BaseCost: 1500, ServiceFee: 0, Total: 1500},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeCost(tc.rate, tc.hours, tc.feePercent)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ComputeCost(%v, %v, %v) = %+v, want %+v",
					tc.rate, tc.hours, tc.feePercent, got, tc.want)
			}
		})
	}
}

func TestComputeCost_InvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		rate  float64
		hours float64
	}{
		{"negative rate", -100, 2},
		{"zero duration", 100, 0},
		{"negative duration", 100, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ComputeCost(tc.rate, tc.hours, 5); !errors.Is(err, ErrInvalidRate) {
				t.Fatalf("expected ErrInvalidRate, got %v", err)
			}
		})
	}
}
