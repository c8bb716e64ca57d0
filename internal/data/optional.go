package data

import (
	"bytes"
	"encoding/json"
)

// Optional holds a JSON value and remembers whether its key was present at
// all and whether it was an explicit null.
type Optional[T any] struct {
	Value   T
	Present bool
	Null    bool
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

// Null returns a present Optional holding JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{Present: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(bs []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(bs), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(bs, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// IsZero lets `omitzero` drop absent keys when re-encoding.
func (o Optional[T]) IsZero() bool {
	return !o.Present
}

func (o Optional[T]) IsPresent() bool {
	return o.Present
}

func (o Optional[T]) IsNull() bool {
	return o.Null
}

// Get returns the value and whether it is usable (present and not null).
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Present && !o.Null
}

func (o Optional[T]) Any() any {
	return o.Value
}

// Field is the type-erased view of an Optional used by table writers.
type Field interface {
	IsPresent() bool
	IsNull() bool
	Any() any
}
