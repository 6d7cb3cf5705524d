package fields

import (
	"errors"
	"fmt"
)

// ErrInvalidData is matched by every *InvalidDataError.
var ErrInvalidData = errors.New("invalid field data")

// InvalidDataError reports a raw value that its field's rule rejected.
type InvalidDataError struct {
	Field string
	Value string
	Kind  Kind
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid %s value %q for field %s", e.Kind, e.Value, e.Field)
}

func (e *InvalidDataError) Is(target error) bool {
	return target == ErrInvalidData
}
