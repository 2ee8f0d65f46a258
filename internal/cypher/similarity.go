package cypher

import (
	"fmt"
	"strconv"

	"github.com/leefowlercu/cinemalens/internal/entities"
)

// SimilarityBuilder builds "movies like X" queries: candidates are ranked by how many
// directors, actors and genres they share with the reference movies.
type SimilarityBuilder struct{}

// Build implements Builder.
func (SimilarityBuilder) Build(e *entities.Entities) *Query {
	b := newQueryBuilder()

	addReferenceAttributes(b, e)
	addCandidatePool(b)
	b.merge(BuildFilters(e, false))
	addScoring(b)

	return b.build(StrategySimilarity)
}

// addReferenceAttributes resolves the reference movies by case-insensitive title
// containment and collects their directors, actors and genres. When nothing matches, a
// single null row keeps the pipeline alive so every movie stays a candidate.
func addReferenceAttributes(b *queryBuilder, e *entities.Entities) {
	movies := b.bind(paramMovies, entities.Lower(e.Movie))
	b.add(
		Match{Optional: true, Pattern: "(ref:Movie)"},
		Where{Predicate: Expr(fmt.Sprintf("ANY(movie IN %s WHERE toLower(ref.title) CONTAINS movie)", movies))},
		With{Items: []string{"COLLECT(DISTINCT ref) AS refs"}},
		Unwind{Expr: "CASE WHEN SIZE(refs) = 0 THEN [null] ELSE refs END", Alias: "ref"},
		Match{Optional: true, Pattern: "(ref)-[:DIRECTED_BY]->(d:Director)"},
		Match{Optional: true, Pattern: "(ref)-[:ACTED_IN]->(a:Actor)"},
		Match{Optional: true, Pattern: "(ref)-[:HAS_GENRE]->(g:Genre)"},
		With{Items: []string{
			"refs",
			"COLLECT(DISTINCT d) AS all_directors",
			"COLLECT(DISTINCT a) AS all_actors",
			"COLLECT(DISTINCT g) AS all_genres",
		}},
	)
}

// addCandidatePool binds every movie except the references to m.
func addCandidatePool(b *queryBuilder) {
	b.add(
		Match{Pattern: "(m:Movie)"},
		Where{Predicate: Expr("NOT m IN refs")},
	)
}

// addScoring counts shared attributes per candidate, weights them and returns the
// best ranked titles, ties broken by popularity.
func addScoring(b *queryBuilder) {
	b.add(
		Match{Optional: true, Pattern: "(m)-[:DIRECTED_BY]->(md:Director)", Where: Expr("md IN all_directors")},
		Match{Optional: true, Pattern: "(m)-[:ACTED_IN]->(ma:Actor)", Where: Expr("ma IN all_actors")},
		Match{Optional: true, Pattern: "(m)-[:HAS_GENRE]->(mg:Genre)", Where: Expr("mg IN all_genres")},
		With{Items: []string{
			"m",
			weighted("COUNT(DISTINCT md)", DirectorWeight) + " AS director_score",
			weighted("COUNT(DISTINCT ma)", ActorWeight) + " AS actor_score",
			weighted("COUNT(DISTINCT mg)", GenreWeight) + " AS genre_score",
		}},
		With{Items: []string{"m", "director_score + actor_score + genre_score AS " + ColumnScore}},
		Return{Items: []string{"m.title AS " + ColumnTitle, ColumnScore, "m.popularity AS popularity"}},
		OrderBy{Items: []SortItem{
			{Expr: ColumnScore, Descending: true},
			{Expr: "popularity", Descending: true},
		}},
		Limit{Count: ResultLimit},
	)
}

func weighted(expr string, weight float64) string {
	if weight == 1 {
		return expr
	}
	return expr + " * " + strconv.FormatFloat(weight, 'g', -1, 64)
}
