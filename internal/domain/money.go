package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal monetary amount. The zero value is zero.
type Money struct {
	d decimal.Decimal
}

// Zero returns the additive identity.
func Zero() Money {
	return Money{}
}

// MoneyFrom builds Money from a decimal literal or a finite numeric value.
func MoneyFrom(v any) (Money, error) {
	switch val := v.(type) {
	case Money:
		return val, nil
	case decimal.Decimal:
		return Money{d: val}, nil
	case string:
		return moneyFromString(val)
	case json.Number:
		return moneyFromString(val.String())
	case int:
		return Money{d: decimal.NewFromInt(int64(val))}, nil
	case int32:
		return Money{d: decimal.NewFromInt32(val)}, nil
	case int64:
		return Money{d: decimal.NewFromInt(val)}, nil
	case float32:
		return moneyFromFloat(float64(val))
	case float64:
		return moneyFromFloat(val)
	default:
		return Money{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidMoneyValue, v)
	}
}

// MustMoney is MoneyFrom that panics on error. Intended for literals.
func MustMoney(v any) Money {
	m, err := MoneyFrom(v)
	if err != nil {
		panic(err)
	}
	return m
}

func moneyFromString(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("%w: empty value", ErrInvalidMoneyValue)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidMoneyValue, s)
	}
	return Money{d: d}, nil
}

func moneyFromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, fmt.Errorf("%w: %v", ErrInvalidMoneyValue, f)
	}
	return Money{d: decimal.NewFromFloat(f)}, nil
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{d: m.d.Add(other.d)}
}

// Negated returns -m.
func (m Money) Negated() Money {
	return Money{d: m.d.Neg()}
}

func (m Money) IsZero() bool     { return m.d.IsZero() }
func (m Money) IsPositive() bool { return m.d.IsPositive() }
func (m Money) IsNegative() bool { return m.d.IsNegative() }

// IsLessThan reports whether m < other.
func (m Money) IsLessThan(other Money) bool {
	return m.d.LessThan(other.d)
}

// Equal compares by value, so 1.5 equals 1.50.
func (m Money) Equal(other Money) bool {
	return m.d.Equal(other.d)
}

// StringFixed renders exactly places fractional digits, rounding half away from zero.
func (m Money) StringFixed(places int32) string {
	return m.d.StringFixed(places)
}

func (m Money) String() string {
	return m.d.String()
}

// Decimal exposes the underlying value for storage adapters.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// MarshalJSON encodes the exact value as a JSON string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.d.String())
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return fmt.Errorf("%w: null", ErrInvalidMoneyValue)
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidMoneyValue, err)
		}
		raw = s
	}
	parsed, err := moneyFromString(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
