package util

// FalseIfNil returns the dereferenced bool, defaulting to false for nil pointers.
func FalseIfNil(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
