// Package interval provides the half-open index range used both by the
// trajectory model (component B) and by the shape codec's
// critical_interval/privacy_interval sections (component C).
package interval

import (
	"sort"
	"strings"
)

// Interval is a half-open index range [Left, Right) into a Trajectory,
// carrying a 64-bit id and an optional unordered set of aux tags.
//
// Invariant: 0 <= Left <= Right.
type Interval struct {
	ID    int64
	Left  int
	Right int

	// aux holds the token set. A degenerate single-string aux (the form
	// the codec emits when the auxiliary column held exactly one token)
	// is stored as a one-element set; there is no separate representation
	// for it, since get_aux_str's output is identical either way.
	aux map[string]struct{}
}

// New constructs an Interval with no aux tags.
func New(id int64, left, right int) Interval {
	return Interval{ID: id, Left: left, Right: right}
}

// NewWithAux constructs an Interval with the given aux tokens.
func NewWithAux(id int64, left, right int, aux []string) Interval {
	iv := Interval{ID: id, Left: left, Right: right}
	for _, a := range aux {
		iv.AddAux(a)
	}
	return iv
}

// AddAux inserts a token into the aux set.
func (iv *Interval) AddAux(token string) {
	if token == "" {
		return
	}
	if iv.aux == nil {
		iv.aux = make(map[string]struct{})
	}
	iv.aux[token] = struct{}{}
}

// HasAux reports whether the aux set contains token.
func (iv Interval) HasAux(token string) bool {
	_, ok := iv.aux[token]
	return ok
}

// AuxTokens returns the aux set as a sorted slice, for deterministic
// iteration in tests and in the writer.
func (iv Interval) AuxTokens() []string {
	if len(iv.aux) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(iv.aux))
	for t := range iv.aux {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// AuxStr joins the aux set deterministically with semicolons, the
// canonical external representation. If the set is empty it returns "",
// and the writer omits the trailing field entirely.
func (iv Interval) AuxStr() string {
	tokens := iv.AuxTokens()
	if len(tokens) == 0 {
		return ""
	}
	return strings.Join(tokens, ";")
}

// Len returns Right - Left.
func (iv Interval) Len() int {
	return iv.Right - iv.Left
}
