package engine

import "testing"

func TestMoneySplitEven(t *testing.T) {
	tests := []struct {
		name   string
		amount Money
		n      int
		want   []Money
	}{
		{name: "exact split", amount: PesosToMoney(2000), n: 4, want: []Money{50000, 50000, 50000, 50000}},
		{name: "remainder to earliest shares", amount: 100, n: 3, want: []Money{34, 33, 33}},
		{name: "single share", amount: 510000, n: 1, want: []Money{510000}},
		{name: "zero shares", amount: 510000, n: 0, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.amount.SplitEven(tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitEven() = %v, want %v", got, tt.want)
			}
			var sum Money
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitEven()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
				sum += got[i]
			}
			if tt.n > 0 && sum != tt.amount {
				t.Errorf("shares sum to %v, want %v", sum, tt.amount)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		amount Money
		want   string
	}{
		{amount: PesosToMoney(5100), want: "₱5100.00"},
		{amount: 40050, want: "₱400.50"},
		{amount: 5, want: "₱0.05"},
		{amount: -150, want: "-₱1.50"},
	}
	for _, tt := range tests {
		if got := tt.amount.String(); got != tt.want {
			t.Errorf("Money(%d).String() = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
