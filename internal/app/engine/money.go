package engine

import "fmt"

// Money is a peso amount in centavos. All arithmetic on compensation figures
// happens in integer centavos; floats never enter the money path. Rounding is
// fixed at the division step so repeated displays of the same figure cannot
// drift.
type Money int64

// PesosToMoney converts whole pesos to Money.
func PesosToMoney(pesos int64) Money {
	return Money(pesos * 100)
}

// Mul multiplies the amount by an integer count.
func (m Money) Mul(count int) Money {
	return m * Money(count)
}

// Pesos returns the amount as a float for JSON display. Display only; never
// fed back into arithmetic.
func (m Money) Pesos() float64 {
	return float64(m) / 100
}

// String formats the amount with the peso sign and two decimals.
func (m Money) String() string {
	sign := ""
	v := m
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s₱%d.%02d", sign, v/100, v%100)
}

// SplitEven divides the amount into n shares that sum exactly to the original.
// The centavo remainder goes to the earliest shares, so the split is
// deterministic for a given input.
func (m Money) SplitEven(n int) []Money {
	if n <= 0 {
		return nil
	}
	base := m / Money(n)
	remainder := m % Money(n)
	shares := make([]Money, n)
	for i := range shares {
		shares[i] = base
		if Money(i) < remainder {
			shares[i]++
		}
	}
	return shares
}
