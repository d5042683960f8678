package invoice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Amount is a money or quantity value that decodes from a JSON number, a
// numeric string or null. Anything else decodes to zero.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*a = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*a = 0
			return nil
		}
		*a = Amount(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

// AmountOf wraps f for the optional order totals.
func AmountOf(f float64) *Amount {
	a := Amount(f)
	return &a
}

func (a *Amount) value() float64 {
	if a == nil {
		return 0
	}
	return float64(*a)
}

// FormatMoney renders value as "<symbol> <value>" with two decimals.
func FormatMoney(symbol string, value float64) string {
	return fmt.Sprintf("%s %.2f", symbol, value)
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
