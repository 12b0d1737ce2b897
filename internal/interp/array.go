package interp

// Pair is one (key, value) entry. Both sides are strings; numbers are stored
// in their formatted form and re-detected on read.
type Pair struct {
	Key   string
	Value string
}

// Array is the ordered associative array backing every variable. Keys are
// unique (last write wins), insertion order is preserved, and lookups are
// linear scans — arrays stay small in this language's intended use. The
// empty-string key is the reserved default key that holds a scalar.
type Array struct {
	pairs []Pair
}

const initialArrayCap = 4

func NewArray() *Array {
	return &Array{pairs: make([]Pair, 0, initialArrayCap)}
}

// Set updates key in place if present, else appends.
func (a *Array) Set(key, value string) {
	for i := range a.pairs {
		if a.pairs[i].Key == key {
			a.pairs[i].Value = value
			return
		}
	}
	a.pairs = append(a.pairs, Pair{Key: key, Value: value})
}

func (a *Array) Get(key string) (string, bool) {
	for i := range a.pairs {
		if a.pairs[i].Key == key {
			return a.pairs[i].Value, true
		}
	}
	return "", false
}

// First returns the first pair. Callers must check Len() > 0 first; an empty
// array yields a zero Pair.
func (a *Array) First() Pair {
	if len(a.pairs) == 0 {
		return Pair{}
	}
	return a.pairs[0]
}

func (a *Array) Len() int {
	return len(a.pairs)
}

// At returns the i-th pair in insertion order.
func (a *Array) At(i int) Pair {
	return a.pairs[i]
}

// Clone makes a deep copy.
func (a *Array) Clone() *Array {
	out := &Array{pairs: make([]Pair, len(a.pairs), cap(a.pairs))}
	copy(out.pairs, a.pairs)
	return out
}

// Clear drops every entry, keeping the backing storage.
func (a *Array) Clear() {
	a.pairs = a.pairs[:0]
}
