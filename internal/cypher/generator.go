package cypher

import "github.com/leefowlercu/cinemalens/internal/entities"

// Builder produces a query for one strategy.
type Builder interface {
	Build(e *entities.Entities) *Query
}

// Generator dispatches records to the builder of their strategy.
//
// A Generator holds no mutable state and is safe for concurrent use.
type Generator struct {
	builders map[Strategy]Builder
}

// NewGenerator returns a generator wired with the standard builders.
func NewGenerator() *Generator {
	return &Generator{
		builders: map[Strategy]Builder{
			StrategyStandardFilter:          StandardFilterBuilder{},
			StrategySimilarity:              SimilarityBuilder{},
			StrategyCombinedSimilarityGenre: CombinedBuilder{},
		},
	}
}

// Generate compiles e into a query. A nil record is treated as empty.
func (g *Generator) Generate(e *entities.Entities) *Query {
	if e == nil {
		e = &entities.Entities{}
	}
	strategy := Classify(e)
	q := g.builders[strategy].Build(e)
	q.Strategy = strategy
	return q
}

var defaultGenerator = NewGenerator()

// Generate compiles e with the default generator.
func Generate(e *entities.Entities) *Query {
	return defaultGenerator.Generate(e)
}
