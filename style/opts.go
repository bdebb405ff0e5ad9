package style

type encState struct {
	rawStrings bool
}

type Option func(*encState)

// RawStrings disables escaping inside double-quoted strings, writing them
// as "<value>" byte for byte.
func RawStrings(v bool) Option {
	return func(es *encState) { es.rawStrings = v }
}

func newEncState(opts []Option) *encState {
	es := &encState{}
	for _, opt := range opts {
		opt(es)
	}
	return es
}
