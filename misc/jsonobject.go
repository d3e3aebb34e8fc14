package misc

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONObject is an opaque key-value bag persisted as a JSON text column.
// The shape is caller-supplied and never validated beyond being an object.
type JSONObject map[string]interface{}

func (o JSONObject) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

func (o *JSONObject) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*o = nil
		return nil
	case []byte:
		if len(v) == 0 {
			*o = nil
			return nil
		}
		return json.Unmarshal(v, o)
	case string:
		if v == "" {
			*o = nil
			return nil
		}
		return json.Unmarshal([]byte(v), o)
	default:
		return fmt.Errorf("unable to scan %T into JSONObject", src)
	}
}
