package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"2000", "$2,000.00"},
		{"3678.75", "$3,678.75"},
		{"20475", "$20,475.00"},
		{"1234567.5", "$1,234,567.50"},
		{"999.99", "$999.99"},
		{"-150", "-$150.00"},
	}

	for _, tc := range cases {
		if got := FormatUSD(decimal.RequireFromString(tc.in)); got != tc.want {
			t.Fatalf("FormatUSD(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDisplayPriceOutOfScopeNeverShowsZero(t *testing.T) {
	b := Compute(Input{Location: LocationLasVegas, Days: DaysOutOfScope, Rooms: 1, Turnaround: TurnaroundFourWeeks})
	if got := b.DisplayPrice(); got != ContactForQuote {
		t.Fatalf("expected sentinel, got %q", got)
	}
}
