package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Flag is a boolean that also accepts the legacy string encoding, where only
// the exact value "true" counts as set. It is always written back as a real
// boolean.
type Flag bool

func (f Flag) Bool() bool {
	return bool(f)
}

func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = Flag(s == "true")
		return nil
	}

	if string(data) == "null" {
		*f = false
		return nil
	}

	return fmt.Errorf("flag: cannot decode %s", data)
}

func (f Flag) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bsontype.Boolean, bsoncore.AppendBoolean(nil, bool(f)), nil
}

func (f *Flag) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Boolean:
		v, _, ok := bsoncore.ReadBoolean(data)
		if !ok {
			return fmt.Errorf("flag: malformed boolean")
		}
		*f = Flag(v)
	case bsontype.String:
		s, _, ok := bsoncore.ReadString(data)
		if !ok {
			return fmt.Errorf("flag: malformed string")
		}
		*f = Flag(s == "true")
	case bsontype.Null, bsontype.Undefined:
		*f = false
	default:
		return fmt.Errorf("flag: unsupported bson type %s", t)
	}
	return nil
}

// Value and Scan let gorm store the flag in a boolean column.
func (f Flag) Value() (driver.Value, error) {
	return bool(f), nil
}

func (f *Flag) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(v)
	case string:
		*f = Flag(v == "true")
	case []byte:
		*f = Flag(string(v) == "true")
	case int64:
		*f = Flag(v != 0)
	default:
		return fmt.Errorf("flag: cannot scan %T", src)
	}
	return nil
}
