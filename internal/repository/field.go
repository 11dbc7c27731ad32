package repository

import "time"

// Field is a tri-state patch value: unset (the zero value, leave the column
// untouched), set to NULL, or set to a concrete value. Patches built from
// Fields compile to an UPDATE that only names the columns explicitly set, so
// "absent" and "set to null" never blur together.
type Field[T any] struct {
	set  bool
	null bool
	val  T
}

// Set returns a Field carrying a concrete value.
func Set[T any](value T) Field[T] {
	return Field[T]{set: true, val: value}
}

// Null returns a Field that sets the column to NULL.
func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// IsSet reports whether the field participates in the patch at all.
func (f Field[T]) IsSet() bool {
	return f.set
}

// IsNull reports whether the field sets its column to NULL.
func (f Field[T]) IsNull() bool {
	return f.set && f.null
}

// Value returns the concrete value; only meaningful when IsSet and not IsNull.
func (f Field[T]) Value() T {
	return f.val
}

func (f Field[T]) put(values map[string]any, column string) {
	if !f.set {
		return
	}
	if f.null {
		values[column] = nil
		return
	}
	values[column] = f.val
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
