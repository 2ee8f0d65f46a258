package graph

import (
	"fmt"
)

// Node labels of the movie graph.
const (
	LabelMovie    = "Movie"
	LabelActor    = "Actor"
	LabelDirector = "Director"
	LabelGenre    = "Genre"
	LabelYear     = "Year"
)

// Relationship types of the movie graph. All point away from the movie.
const (
	RelActedIn    = "ACTED_IN"    // Movie -> Actor
	RelDirectedBy = "DIRECTED_BY" // Movie -> Director
	RelHasGenre   = "HAS_GENRE"   // Movie -> Genre
	RelReleasedIn = "RELEASED_IN" // Movie -> Year
)

// Connection directions relative to the looked-up node.
const (
	DirectionOutgoing = "OUTGOING"
	DirectionIncoming = "INCOMING"
)

// Recommendation is one row of a recommendation query.
type Recommendation struct {
	Title string `json:"title" yaml:"title"`

	// Score is set by similarity strategies only.
	Score *float64 `json:"score,omitempty" yaml:"score,omitempty"`

	Popularity *float64 `json:"popularity,omitempty" yaml:"popularity,omitempty"`
}

// Connection is a relationship from a looked-up node to a neighbor.
type Connection struct {
	Relationship string         `json:"relationship"`
	Direction    string         `json:"direction"`
	Connected    map[string]any `json:"connected"`
}

// Movie is a movie node folded together with its neighbors.
type Movie struct {
	ID         int64          `json:"id" yaml:"id"`
	Title      string         `json:"title" yaml:"title"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
	Actors     []string       `json:"actors" yaml:"actors"`
	Directors  []string       `json:"directors" yaml:"directors"`
	Genres     []string       `json:"genres" yaml:"genres"`
	Year       *int           `json:"year,omitempty" yaml:"year,omitempty"`
}

// FoldConnections builds a Movie from a target node's properties and its
// connections. Only outgoing relationships contribute; the first RELEASED_IN
// neighbor supplies the year.
func FoldConnections(target map[string]any, conns []Connection) Movie {
	m := Movie{
		ID:         toInt64(target["id"]),
		Title:      toString(target["title"]),
		Properties: target,
		Actors:     []string{},
		Directors:  []string{},
		Genres:     []string{},
	}

	for _, c := range conns {
		if c.Direction != DirectionOutgoing {
			continue
		}

		switch c.Relationship {
		case RelActedIn:
			m.Actors = append(m.Actors, toString(c.Connected["name"]))
		case RelDirectedBy:
			m.Directors = append(m.Directors, toString(c.Connected["name"]))
		case RelHasGenre:
			m.Genres = append(m.Genres, toString(c.Connected["name"]))
		case RelReleasedIn:
			if m.Year == nil && c.Connected["year"] != nil {
				year := int(toInt64(c.Connected["year"]))
				m.Year = &year
			}
		}
	}

	return m
}

// parseMovies folds lookup rows of the form {target, connections}.
func parseMovies(rows []Row) []Movie {
	movies := make([]Movie, 0, len(rows))
	for _, row := range rows {
		target, ok := row["target"].(map[string]any)
		if !ok {
			continue
		}
		movies = append(movies, FoldConnections(target, parseConnections(row["connections"])))
	}
	return movies
}

// parseConnections decodes a collected list of connection maps. Entries
// without a relationship come from an OPTIONAL MATCH that matched nothing.
func parseConnections(v any) []Connection {
	list, ok := v.([]any)
	if !ok {
		return nil
	}

	conns := make([]Connection, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok || m["relationship"] == nil {
			continue
		}
		connected, _ := m["connected"].(map[string]any)
		conns = append(conns, Connection{
			Relationship: toString(m["relationship"]),
			Direction:    toString(m["direction"]),
			Connected:    connected,
		})
	}
	return conns
}

// parseRecommendations reads title, score and popularity columns.
func parseRecommendations(rows []Row) []Recommendation {
	recs := make([]Recommendation, 0, len(rows))
	for _, row := range rows {
		title, ok := row["title"]
		if !ok || title == nil {
			continue
		}
		recs = append(recs, Recommendation{
			Title:      toString(title),
			Score:      optionalFloat(row, "score"),
			Popularity: optionalFloat(row, "popularity"),
		})
	}
	return recs
}

func optionalFloat(row Row, key string) *float64 {
	v, ok := row[key]
	if !ok || v == nil {
		return nil
	}
	f := toFloat64(v)
	return &f
}

// Helper functions for type conversions from record values

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
