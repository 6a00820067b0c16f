package postgresql

// SetBurnCompare replaces the unknown email comparison until restore is called.
func SetBurnCompare(fn func(string)) (restore func()) {
	prev := burnCompare
	burnCompare = fn
	return func() { burnCompare = prev }
}
