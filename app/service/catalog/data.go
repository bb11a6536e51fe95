package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

type ActionType string

const (
	ActionCreateProduct              ActionType = "CREATEPRODUCT"
	ActionCreatePriceList            ActionType = "CREATEPRICELIST"
	ActionCreatePromotion            ActionType = "CREATEPROMOTION"
	ActionCreateProductClass         ActionType = "CREATEPRODUCTCLASS"
	ActionCreateProductLine          ActionType = "CREATEPRODUCTLINE"
	ActionCreateProductAttributes    ActionType = "CREATEPRODUCTATTRIBUTES"
	ActionCreateProductEligibility   ActionType = "CREATEPRODUCTELIGIBILITY"
	ActionCreateProductCompatibility ActionType = "CREATEPRODUCTCOMPATIBILITY"
)

// Action is one entry of the classifier's "actions" list.
type Action struct {
	Type     ActionType `json:"type"`
	Name     string     `json:"name"`
	Product  string     `json:"product,omitempty"`
	Price    string     `json:"price,omitempty"`
	Currency string     `json:"currency,omitempty"`
}

// Field is a parameter a handler needs; Key is its JSON key, Label its human name.
type Field struct {
	Key   string
	Label string
}

func (a Action) Get(key string) string {
	switch key {
	case "name":
		return a.Name
	case "product":
		return a.Product
	case "price":
		return a.Price
	case "currency":
		return a.Currency
	default:
		return ""
	}
}

func (a *Action) Set(key, value string) {
	switch key {
	case "name":
		a.Name = value
	case "product":
		a.Product = value
	case "price":
		a.Price = value
	case "currency":
		a.Currency = value
	}
}

// UnmarshalJSON accepts any JSON scalar for the text fields, so "price": 1000 works.
// A zero number or false is read as an empty field.
func (a *Action) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	actionType, err := scalarText(raw["type"])
	if err != nil {
		return fmt.Errorf("type: %w", err)
	}

	*a = Action{Type: ActionType(strings.ToUpper(strings.TrimSpace(actionType)))}

	for _, key := range []string{"name", "product", "price", "currency"} {
		value, err := scalarText(raw[key])
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}

		a.Set(key, value)
	}

	return nil
}

func scalarText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", err
	}

	// 0 and false count as absent, like null
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case float64:
		if v == 0 {
			return "", nil
		}
		return strings.TrimSpace(string(raw)), nil
	case bool:
		if !v {
			return "", nil
		}
		return strings.TrimSpace(string(raw)), nil
	default:
		return "", fmt.Errorf("unsupported value %s", raw)
	}
}
