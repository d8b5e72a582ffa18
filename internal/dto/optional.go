package dto

import "encoding/json"

// Optional distinguishes the three states a patch field can be in:
// absent from the payload, present as explicit null, or present with a
// value. encoding/json only calls UnmarshalJSON for fields that appear
// in the payload, so Set reports presence.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Ptr returns the value as a nullable pointer: nil for explicit null.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	value := o.Value
	return &value
}

func OptionalOf[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: value}
}

func OptionalNull[T any]() Optional[T] {
	return Optional[T]{Set: true}
}
