// Package entities defines the structured record an extraction service produces from a
// natural-language movie query. The record is the sole input of the Cypher query generator.
package entities

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entities is the parsed intent of a single user query.
//
// Union flags are three-state: nil and false both mean every listed value is required,
// only an explicit true means any listed value suffices.
type Entities struct {
	Movie    []string `json:"movie,omitempty" yaml:"movie,omitempty" validate:"omitempty,dive,required"`
	Actor    []string `json:"actor,omitempty" yaml:"actor,omitempty" validate:"omitempty,dive,required"`
	Director []string `json:"director,omitempty" yaml:"director,omitempty" validate:"omitempty,dive,required"`
	Genre    []string `json:"genre,omitempty" yaml:"genre,omitempty" validate:"omitempty,dive,required,genre"`

	YearStart *int `json:"year_start,omitempty" yaml:"year_start,omitempty" validate:"omitempty,gte=1870,lte=2200"`
	YearEnd   *int `json:"year_end,omitempty" yaml:"year_end,omitempty" validate:"omitempty,gte=1870,lte=2200"`

	ActorsUnion *bool `json:"actors_union,omitempty" yaml:"actors_union,omitempty"`
	GenresUnion *bool `json:"genres_union,omitempty" yaml:"genres_union,omitempty"`

	// MoviesPresent reports whether the movies in Movie were named by the user (true) or
	// suggested by the extractor (false).
	MoviesPresent *bool `json:"movies_present,omitempty" yaml:"movies_present,omitempty"`

	// ParsingReview is the extractor's free-text explanation of its interpretation.
	ParsingReview string `json:"parsing_review,omitempty" yaml:"parsing_review,omitempty"`
}

// HasMovies reports whether at least one reference movie is present.
func (e *Entities) HasMovies() bool {
	return e != nil && len(e.Movie) > 0
}

// HasGenres reports whether at least one genre constraint is present.
func (e *Entities) HasGenres() bool {
	return e != nil && len(e.Genre) > 0
}

// HasYearRange reports whether either year bound is present.
func (e *Entities) HasYearRange() bool {
	return e != nil && (e.YearStart != nil || e.YearEnd != nil)
}

// ActorsAnyOf reports whether any listed actor suffices.
func (e *Entities) ActorsAnyOf() bool {
	return e != nil && e.ActorsUnion != nil && *e.ActorsUnion
}

// GenresAnyOf reports whether any listed genre suffices.
func (e *Entities) GenresAnyOf() bool {
	return e != nil && e.GenresUnion != nil && *e.GenresUnion
}

// SuggestedMovies returns the lower-cased reference movies the extractor suggested on its
// own, or nil when the user named them.
func (e *Entities) SuggestedMovies() []string {
	if e == nil || e.MoviesPresent == nil || *e.MoviesPresent || len(e.Movie) == 0 {
		return nil
	}
	return Lower(e.Movie)
}

// Clone returns a deep copy.
func (e *Entities) Clone() *Entities {
	if e == nil {
		return nil
	}
	c := &Entities{
		Movie:         slices.Clone(e.Movie),
		Actor:         slices.Clone(e.Actor),
		Director:      slices.Clone(e.Director),
		Genre:         slices.Clone(e.Genre),
		YearStart:     clonePtr(e.YearStart),
		YearEnd:       clonePtr(e.YearEnd),
		ActorsUnion:   clonePtr(e.ActorsUnion),
		GenresUnion:   clonePtr(e.GenresUnion),
		MoviesPresent: clonePtr(e.MoviesPresent),
		ParsingReview: e.ParsingReview,
	}
	return c
}

// String renders the record as compact JSON for logging.
func (e *Entities) String() string {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf("<entities: %v>", err)
	}
	return string(data)
}

// Parse decodes a record from JSON or YAML. Format is "json", "yaml" or "yml".
func Parse(data []byte, format string) (*Entities, error) {
	var e Entities
	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("failed to decode entities json; %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("failed to decode entities yaml; %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported entities format %q; must be json or yaml", format)
	}
	return &e, nil
}

// Lower returns a lower-cased copy of values.
func Lower(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
