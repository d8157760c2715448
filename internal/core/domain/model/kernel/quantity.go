package kernel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Quantity is an item amount as the customer app writes it: sometimes a JSON
// number ("quantity": 2), sometimes a string ("quantity": "500"). It is kept
// verbatim and written back in the form it was read.
type Quantity struct {
	raw    string
	quoted bool
}

func NewQuantity(v string) Quantity {
	_, err := strconv.ParseFloat(v, 64)
	return Quantity{raw: v, quoted: err != nil}
}

func QuantityOf(n int) Quantity {
	return Quantity{raw: strconv.Itoa(n)}
}

func (q Quantity) String() string {
	return q.raw
}

func (q Quantity) IsZero() bool {
	return q.raw == ""
}

// Int returns the quantity as a whole number, or false when it is not one.
func (q Quantity) Int() (int, bool) {
	n, err := strconv.Atoi(q.raw)
	return n, err == nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.raw == "" {
		return []byte("null"), nil
	}
	if q.quoted {
		return json.Marshal(q.raw)
	}
	return []byte(q.raw), nil
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*q = Quantity{}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = Quantity{raw: s, quoted: true}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		*q = Quantity{raw: n.String()}
	}
	return nil
}
