package cypher

import (
	"fmt"
	"strings"

	"github.com/leefowlercu/cinemalens/internal/entities"
)

// Parameter names bound by the builders.
const (
	paramMovies    = "movies"
	paramGenres    = "genres"
	paramYearStart = "year_start"
	paramYearEnd   = "year_end"
	paramDirector  = "director_%d"
	paramActor     = "actor_%d"
)

// BuildFilters returns the post-filter clauses for the candidate movie m: year range,
// director and actor constraints, and the genre constraint unless skipGenre is set.
// The clauses narrow the candidate rows and never touch the similarity scores.
func BuildFilters(e *entities.Entities, skipGenre bool) ([]Clause, Params) {
	b := newQueryBuilder()
	if e == nil {
		return nil, b.params
	}

	if e.HasGenres() && !skipGenre {
		b.add(Match{
			Pattern: "(m)-[:HAS_GENRE]->(fg:Genre)",
			Where:   genrePredicate(b, e, "fg"),
		})
	}

	if e.HasYearRange() {
		b.add(Match{
			Pattern: "(m)-[:RELEASED_IN]->(fy:Year)",
			Where:   yearPredicate(b, e, "fy"),
		})
	}

	if len(e.Director) > 0 {
		b.add(Match{
			Pattern: "(m)-[:DIRECTED_BY]->(fd:Director)",
			Where:   directorPredicate(b, e, "fd"),
		})
	}

	if len(e.Actor) > 0 {
		if e.ActorsAnyOf() {
			b.add(Match{
				Pattern: "(m)-[:ACTED_IN]->(fa:Actor)",
				Where:   anyNameContains(b, "fa", paramActor, e.Actor),
			})
		} else {
			for i, actor := range e.Actor {
				alias := fmt.Sprintf("fa%d", i)
				b.add(Match{
					Pattern: fmt.Sprintf("(m)-[:ACTED_IN]->(%s:Actor)", alias),
					Where:   nameContains(b, alias, fmt.Sprintf(paramActor, i), actor),
				})
			}
		}
	}

	return b.clauses, b.params
}

// genrePredicate is the genre constraint on candidate m. Any-of tests the genre bound to
// alias; all-of counts how many requested genres m has and requires every one.
func genrePredicate(b *queryBuilder, e *entities.Entities, alias string) Predicate {
	genres := b.bind(paramGenres, entities.Lower(e.Genre))
	if e.GenresAnyOf() {
		return Expr(fmt.Sprintf("toLower(%s.name) IN %s", alias, genres))
	}
	return Expr(fmt.Sprintf(
		"SIZE([genre IN %s WHERE (m)-[:HAS_GENRE]->(:Genre {name: genre}) | 1]) = SIZE(%s)",
		genres, genres))
}

// yearPredicate bounds the release year bound to alias by whichever limits are present.
func yearPredicate(b *queryBuilder, e *entities.Entities, alias string) Predicate {
	var bounds And
	if e.YearStart != nil {
		bounds = append(bounds, Expr(fmt.Sprintf("%s.year >= %s", alias, b.bind(paramYearStart, *e.YearStart))))
	}
	if e.YearEnd != nil {
		bounds = append(bounds, Expr(fmt.Sprintf("%s.year <= %s", alias, b.bind(paramYearEnd, *e.YearEnd))))
	}
	return bounds
}

// directorPredicate matches any listed director; there is no all-of form for directors.
func directorPredicate(b *queryBuilder, e *entities.Entities, alias string) Predicate {
	return anyNameContains(b, alias, paramDirector, e.Director)
}

func anyNameContains(b *queryBuilder, alias, paramFormat string, names []string) Predicate {
	conds := make(Or, len(names))
	for i, name := range names {
		conds[i] = nameContains(b, alias, fmt.Sprintf(paramFormat, i), name)
	}
	return conds
}

func nameContains(b *queryBuilder, alias, param, name string) Predicate {
	return Expr(fmt.Sprintf("toLower(%s.name) CONTAINS %s", alias, b.bind(param, strings.ToLower(name))))
}
