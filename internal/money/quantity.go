package money

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rezonia/facturx/internal/codes"
)

// Quantity is an exact decimal amount of a unit of measure.
type Quantity struct {
	Amount decimal.Decimal
	Unit   codes.UnitCode
}

// NewQuantity parses amount and returns it tagged with the given unit.
func NewQuantity(amount string, unit codes.UnitCode) (Quantity, error) {
	if !unit.Valid() {
		return Quantity{}, fmt.Errorf("invalid unit code %q", string(unit))
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return Quantity{Amount: d, Unit: unit}, nil
}

// MustQuantity is like NewQuantity but panics on error.
func MustQuantity(amount string, unit codes.UnitCode) Quantity {
	q, err := NewQuantity(amount, unit)
	if err != nil {
		panic(err)
	}
	return q
}

// Equal reports whether q and o have the same unit, the same value, and
// the same number of decimal places.
func (q Quantity) Equal(o Quantity) bool {
	return q.Unit == o.Unit &&
		q.Amount.Equal(o.Amount) &&
		q.Amount.Exponent() == o.Amount.Exponent()
}

// String renders the amount followed by the unit symbol or code.
func (q Quantity) String() string {
	if sym := q.Unit.Symbol(); sym != "" {
		return q.Amount.String() + " " + sym
	}
	return q.Amount.String() + " " + string(q.Unit)
}

// OptionalQuantity is a Quantity whose unit may be absent. A price basis
// quantity may state a bare count with no unit of measure.
type OptionalQuantity struct {
	Amount decimal.Decimal
	Unit   codes.UnitCode // empty when no unit is given
}

// NewOptionalQuantity parses amount with an optional unit.
func NewOptionalQuantity(amount string, unit codes.UnitCode) (OptionalQuantity, error) {
	if unit != "" && !unit.Valid() {
		return OptionalQuantity{}, fmt.Errorf("invalid unit code %q", string(unit))
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return OptionalQuantity{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return OptionalQuantity{Amount: d, Unit: unit}, nil
}

// MustOptionalQuantity is like NewOptionalQuantity but panics on error.
func MustOptionalQuantity(amount string, unit codes.UnitCode) OptionalQuantity {
	q, err := NewOptionalQuantity(amount, unit)
	if err != nil {
		panic(err)
	}
	return q
}

// Equal reports whether q and o have the same unit, the same value, and
// the same number of decimal places.
func (q OptionalQuantity) Equal(o OptionalQuantity) bool {
	return q.Unit == o.Unit &&
		q.Amount.Equal(o.Amount) &&
		q.Amount.Exponent() == o.Amount.Exponent()
}
