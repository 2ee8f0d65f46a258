package cypher

import (
	"fmt"

	"github.com/leefowlercu/cinemalens/internal/entities"
)

// StandardFilterBuilder builds attribute-only queries for records without reference
// movies. Populated fields are AND-ed; each multi-valued field applies its own any-of or
// all-of rule. Results are distinct and capped but otherwise unordered.
type StandardFilterBuilder struct{}

// Build implements Builder.
func (StandardFilterBuilder) Build(e *entities.Entities) *Query {
	b := newQueryBuilder()
	b.add(Match{Pattern: "(m:Movie)"})

	var conds And

	if e.HasGenres() {
		b.add(Match{Pattern: "(m)-[:HAS_GENRE]->(g:Genre)"})
		conds = append(conds, genrePredicate(b, e, "g"))
	}

	if e.HasYearRange() {
		b.add(Match{Pattern: "(m)-[:RELEASED_IN]->(y:Year)"})
		conds = append(conds, yearPredicate(b, e, "y"))
	}

	if len(e.Director) > 0 {
		b.add(Match{Pattern: "(m)-[:DIRECTED_BY]->(d:Director)"})
		conds = append(conds, directorPredicate(b, e, "d"))
	}

	if len(e.Actor) > 0 {
		if e.ActorsAnyOf() {
			b.add(Match{Pattern: "(m)-[:ACTED_IN]->(a:Actor)"})
			conds = append(conds, anyNameContains(b, "a", paramActor, e.Actor))
		} else {
			for i, actor := range e.Actor {
				alias := fmt.Sprintf("a%d", i)
				b.add(Match{Pattern: fmt.Sprintf("(m)-[:ACTED_IN]->(%s:Actor)", alias)})
				conds = append(conds, nameContains(b, alias, fmt.Sprintf(paramActor, i), actor))
			}
		}
	}

	if len(conds) > 0 {
		b.add(Where{Predicate: conds})
	}

	b.add(
		Return{Distinct: true, Items: []string{"m.title AS " + ColumnTitle}},
		Limit{Count: ResultLimit},
	)

	return b.build(StrategyStandardFilter)
}
