package domain

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// ID is an entity identifier. Backends in the wild send both numeric and
// string ids, so decoding accepts either.
type ID string

func (id ID) String() string {
	return string(id)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*id = ""
		return nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(s)
	return nil
}
