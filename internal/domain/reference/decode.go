package reference

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Decode turns a records API body into options. The body may be a JSON string wrapping the
// real document, and the document may be a Page envelope or a bare array.
func Decode(entity Entity, body []byte) ([]Item, error) {
	switch entity {
	case EntityPais:
		return decodeAs[Country](body)
	case EntityCarrera:
		return decodeAs[Career](body)
	case EntityProducto:
		return decodeAs[Product](body)
	case EntityOwner:
		return decodeAs[Owner](body)
	case EntityStatus:
		return decodeAs[Status](body)
	default:
		return nil, ErrUnknownEntity
	}
}

func decodeAs[T Record](body []byte) ([]Item, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New("empty body")
	}

	if body[0] == '"' {
		var inner string
		if err := json.Unmarshal(body, &inner); err != nil {
			return nil, fmt.Errorf("decode wrapped body: %w", err)
		}
		body = bytes.TrimSpace([]byte(inner))
		if len(body) == 0 {
			return nil, errors.New("empty wrapped body")
		}
	}

	var records []T
	if body[0] == '[' {
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
	} else {
		var page Page[T]
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode page: %w", err)
		}
		if page.Error != "" {
			return nil, fmt.Errorf("records api: %s", page.Error)
		}
		records = page.Data
	}

	items := make([]Item, 0, len(records))
	for _, r := range records {
		items = append(items, r.Item())
	}
	return items, nil
}
