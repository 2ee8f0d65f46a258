package cypher

import (
	"github.com/leefowlercu/cinemalens/internal/entities"
)

// carried is the scope kept across the genre restriction of a combined query.
var carried = []string{"m", "all_directors", "all_actors", "all_genres"}

// CombinedBuilder builds "movies like X in genre G" queries. The candidate pool is
// restricted to the requested genres first and only then ranked by similarity.
type CombinedBuilder struct{}

// Build implements Builder.
func (CombinedBuilder) Build(e *entities.Entities) *Query {
	b := newQueryBuilder()

	addReferenceAttributes(b, e)
	addCandidatePool(b)

	if e.GenresAnyOf() {
		b.add(
			Match{Pattern: "(m)-[:HAS_GENRE]->(required_genre:Genre)", Where: genrePredicate(b, e, "required_genre")},
			With{Distinct: true, Items: carried},
		)
	} else {
		b.add(
			With{Items: carried},
			Where{Predicate: genrePredicate(b, e, "required_genre")},
		)
	}

	b.merge(BuildFilters(e, true))
	addScoring(b)

	return b.build(StrategyCombinedSimilarityGenre)
}
