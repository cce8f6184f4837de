package essays

import (
	"encoding/json"
	"fmt"
)

// Document is a JSON column passed through to clients verbatim.
type Document json.RawMessage

func (d *Document) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		b = append([]byte(nil), v...)
	case string:
		b = []byte(v)
	default:
		// drivers that decode json columns themselves
		enc, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("document: cannot re-encode %T: %w", src, err)
		}
		b = enc
	}
	if !json.Valid(b) {
		return fmt.Errorf("document: column does not hold valid json")
	}
	*d = b
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}
