package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice stores a list of strings as a JSON array column
type StringSlice []string

// Value implements the driver.Valuer interface.
// This defines how the slice is stored in the database.
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}

	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}

	return string(b), nil
}

// Scan implements the sql.Scanner interface.
// This defines how the database value is converted back into go.
func (s *StringSlice) Scan(value any) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	b, err := rawBytes(value)
	if err != nil {
		return fmt.Errorf("failed to scan StringSlice, %w", err)
	}

	if len(b) == 0 {
		*s = StringSlice{}
		return nil
	}

	return json.Unmarshal(b, (*[]string)(s))
}

// JSONMap stores a free-form metadata object as a JSON column
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}

	b, err := json.Marshal(map[string]any(m))
	if err != nil {
		return nil, err
	}

	return string(b), nil
}

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	b, err := rawBytes(value)
	if err != nil {
		return fmt.Errorf("failed to scan JSONMap, %w", err)
	}

	if len(b) == 0 {
		*m = JSONMap{}
		return nil
	}

	return json.Unmarshal(b, (*map[string]any)(m))
}

func rawBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", value)
	}
}
