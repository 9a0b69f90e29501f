package storage

import (
	"encoding/json"
	"fmt"
)

// Extensions holds optional, loosely typed data attached to an asset, such
// as a level hint. Values stay raw until asked for.
type Extensions map[string]json.RawMessage

// Get unmarshals the value at key into out. A missing key reports
// found=false with no error.
func (e Extensions) Get(key string, out any) (bool, error) {
	raw, ok := e[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal extension %q: %w", key, err)
	}
	return true, nil
}
