package order

import (
	"encoding/json"

	"localstore/internal/core/domain/model/kernel"
)

// Product is a line item without its category, the shape stores receive.
type Product struct {
	Quantity      kernel.Quantity `json:"quantity,omitzero"`
	Unit          string          `json:"unit,omitempty"`
	ItemsQuantity kernel.Quantity `json:"itemsQuantity,omitzero"`
	Price         kernel.Money    `json:"price,omitzero"`

	extra fields
}

type productObject Product

func (p Product) MarshalJSON() ([]byte, error) {
	obj := productObject(p)
	return encodeObject(&obj, p.extra)
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var obj productObject
	extra, err := decodeObject(data, &obj, "quantity", "unit", "itemsQuantity", "price")
	if err != nil {
		return err
	}
	*p = Product(obj)
	p.extra = extra
	return nil
}

// Item is an order line keyed by item name in Order.Items.
type Item struct {
	Product
	Category string
}

func (i Item) MarshalJSON() ([]byte, error) {
	data, err := i.Product.MarshalJSON()
	if err != nil || i.Category == "" {
		return data, err
	}
	var all map[string]json.RawMessage
	if err = json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	if all == nil {
		all = make(map[string]json.RawMessage, 1)
	}
	all["category"], _ = json.Marshal(i.Category)
	return json.Marshal(all)
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	var category string
	if raw, ok := all["category"]; ok {
		if err := json.Unmarshal(raw, &category); err != nil {
			return err
		}
		delete(all, "category")
	}
	rest, err := json.Marshal(all)
	if err != nil {
		return err
	}
	var p Product
	if err = p.UnmarshalJSON(rest); err != nil {
		return err
	}
	*i = Item{Product: p, Category: category}
	return nil
}

// Products groups line items by category, then by item name.
type Products map[string]map[string]Product

// Add files p under category and name, creating the category when needed.
func (ps Products) Add(category, name string, p Product) {
	if ps[category] == nil {
		ps[category] = make(map[string]Product)
	}
	ps[category][name] = p
}

// Count returns the number of line items across all categories.
func (ps Products) Count() int {
	n := 0
	for _, items := range ps {
		n += len(items)
	}
	return n
}
