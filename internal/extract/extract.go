// Package extract turns a natural-language movie request into an entity
// record using a language model provider.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leefowlercu/cinemalens/internal/entities"
)

var (
	// ErrProviderUnavailable is returned when a provider has no credentials.
	ErrProviderUnavailable = errors.New("extraction provider unavailable")

	// ErrEmptyQuery is returned for blank queries.
	ErrEmptyQuery = errors.New("empty query")

	// ErrMalformedResponse is returned when a reply holds no usable record.
	ErrMalformedResponse = errors.New("malformed extraction response")
)

// Extractor extracts an entity record from a user query.
type Extractor interface {
	// Name returns the provider's unique identifier.
	Name() string

	// Available returns true if the provider is configured and ready.
	Available() bool

	// Extract returns the entities found in query.
	Extract(ctx context.Context, query string) (*entities.Entities, error)
}

// instructions is sent as the system message of every extraction request.
var instructions = fmt.Sprintf(`Extract movie-related entities from the user's request and reply with a single JSON object.
Fields (omit or null when absent):
- movie: list of movie titles, either named by the user or suggested for vague requests
- actor: list of actor names
- director: list of director names
- genre: list of genres, each one of: %s
- year_start, year_end: inclusive release year bounds as integers
- actors_union: true when any listed actor may match, false when all must
- genres_union: true when any listed genre may match, false when all must
- movies_present: true when the titles in movie were named by the user, false when suggested
- parsing_review: short note on how the request was interpreted
Correct obvious typos in names and titles.`, strings.Join(entities.Genres, ", "))

// checkQuery trims the query and rejects blank input.
func checkQuery(query string) (string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", ErrEmptyQuery
	}
	return q, nil
}
