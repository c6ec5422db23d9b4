package document

// ExactlyOne returns the only element of items. It fails with ErrNotSingle
// when items is empty or holds more than one element.
func ExactlyOne[T any](items []T) (T, error) {
	var zero T
	if len(items) != 1 {
		return zero, ErrNotSingle
	}
	return items[0], nil
}
