package domain

import "fmt"

// Money is a whole-dollar amount. Rents are quoted in whole dollars; cents
// never survive extraction or reconciliation.
type Money int64

func (m Money) String() string {
	return fmt.Sprintf("$%d", int64(m))
}

// MoneyPtr is a convenience for optional amounts.
func MoneyPtr(v Money) *Money {
	return &v
}
