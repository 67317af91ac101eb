package stats

import (
	"cmp"
	"strconv"
)

// Comparator orders two values. It returns a negative number when a sorts
// before b, zero when they are equal, and a positive number otherwise.
type Comparator[T any] func(a, b T) int

// Natural returns the ascending comparator for an ordered type.
func Natural[T cmp.Ordered]() Comparator[T] {
	return cmp.Compare[T]
}

// Accessor selects one attribute of a record. Named struct fields and
// positional slice columns are both captured through the same type so
// callers never branch on how a column is addressed.
type Accessor[T, V any] struct {
	Name string
	get  func(T) V
}

// Field builds an accessor from a named selector function.
func Field[T, V any](name string, get func(T) V) Accessor[T, V] {
	return Accessor[T, V]{Name: name, get: get}
}

// Position builds an accessor for column i of a slice-shaped record.
func Position[V any](i int) Accessor[[]V, V] {
	return Accessor[[]V, V]{
		Name: strconv.Itoa(i),
		get:  func(row []V) V { return row[i] },
	}
}

// Get returns the attribute value of rec.
func (a Accessor[T, V]) Get(rec T) V { return a.get(rec) }

// Valid reports whether the accessor has a selector.
func (a Accessor[T, V]) Valid() bool { return a.get != nil }

// By returns a comparator that orders records ascending by the accessor value.
func By[T any, V cmp.Ordered](a Accessor[T, V]) Comparator[T] {
	return func(x, y T) int {
		return cmp.Compare(a.get(x), a.get(y))
	}
}
