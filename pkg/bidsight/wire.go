package bidsight

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Invoice is an invoice as served by the API.
type Invoice struct {
	ID      int      `json:"id"`
	DueDate string   `json:"due_date"`
	Name    string   `json:"name"`
	Status  string   `json:"status"`
	Charges []Charge `json:"charges"`
}

// Charge is a wire charge: a JSON object whose keys are charge names and
// whose values are prices. Entries keep the order they have on the wire.
type Charge []ChargeEntry

type ChargeEntry struct {
	Name  string
	Price string
}

// UnmarshalJSON satisfies [json.Unmarshaler]
func (c *Charge) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("charge: expected object, got %v", tok)
	}

	entries := Charge{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("charge: unexpected key %v", tok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("charge %q: %w", name, err)
		}

		var price string
		switch v := value.(type) {
		case string:
			price = v
		case json.Number:
			price = v.String()
		default:
			return fmt.Errorf("charge %q: price must be a string, got %T", name, value)
		}

		entries = append(entries, ChargeEntry{Name: name, Price: price})
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = entries
	return nil
}

// MarshalJSON satisfies [json.Marshaler]
func (c Charge) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		price, err := json.Marshal(entry.Price)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(price)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
