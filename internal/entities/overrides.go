package entities

// Overrides are caller-supplied constraints that take precedence over extracted values.
type Overrides struct {
	MinYear *int
	MaxYear *int
	Genres  []string
}

// IsZero reports whether no override is set.
func (o Overrides) IsZero() bool {
	return o.MinYear == nil && o.MaxYear == nil && len(o.Genres) == 0
}

// Apply returns a copy of e with the overrides merged in. Overridden genres are
// lower-cased and replace any extracted genres; e itself is not modified.
func (o Overrides) Apply(e *Entities) *Entities {
	out := e.Clone()
	if out == nil {
		out = &Entities{}
	}
	if o.MinYear != nil {
		out.YearStart = Int(*o.MinYear)
	}
	if o.MaxYear != nil {
		out.YearEnd = Int(*o.MaxYear)
	}
	if len(o.Genres) > 0 {
		out.Genre = Lower(o.Genres)
	}
	return out
}
