package cypher

import "github.com/leefowlercu/cinemalens/internal/entities"

// Strategy is the query shape chosen for a record.
type Strategy int

const (
	// StrategyStandardFilter filters movies by attribute without any ranking.
	StrategyStandardFilter Strategy = iota
	// StrategySimilarity ranks movies by shared attributes with reference titles.
	StrategySimilarity
	// StrategyCombinedSimilarityGenre restricts candidates by genre before ranking.
	StrategyCombinedSimilarityGenre
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyStandardFilter:
		return "standard_filter"
	case StrategySimilarity:
		return "similarity"
	case StrategyCombinedSimilarityGenre:
		return "combined_similarity_genre"
	default:
		return "unknown"
	}
}

// Classify selects the strategy for e. Reference movies with genres select the combined
// shape, reference movies alone select similarity, anything else is a standard filter.
func Classify(e *entities.Entities) Strategy {
	switch {
	case e.HasMovies() && e.HasGenres():
		return StrategyCombinedSimilarityGenre
	case e.HasMovies():
		return StrategySimilarity
	default:
		return StrategyStandardFilter
	}
}
