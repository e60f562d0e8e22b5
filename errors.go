package once

import (
	"fmt"
	"reflect"
)

// ContentionError reports that a primitive's exclusion flag was held by
// another in-flight operation at the moment Op was attempted. The state
// of the primitive is unchanged; the caller may retry or skip.
type ContentionError struct {
	Type string
	Op   string
}

func (e *ContentionError) Error() string {
	return fmt.Sprintf("once: %s on %s contended by another operation", e.Op, e.Type)
}

// AlreadyInitializedError reports an Initialize on a Cell that already
// holds a value. The stored value is unchanged.
type AlreadyInitializedError struct {
	Type string
}

func (e *AlreadyInitializedError) Error() string {
	return fmt.Sprintf("once: %s initialized a second time", e.Type)
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
