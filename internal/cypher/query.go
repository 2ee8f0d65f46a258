package cypher

// ResultLimit caps the number of titles any generated query returns.
const ResultLimit = 10

// Similarity weights per shared attribute with the reference movies.
const (
	DirectorWeight = 2.0
	ActorWeight    = 1.0
	GenreWeight    = 0.5
)

// Result columns of every generated query.
const (
	ColumnTitle = "title"
	ColumnScore = "score"
)

// Query is a generated Cypher query and the parameters it must be executed with.
type Query struct {
	Strategy Strategy
	Clauses  []Clause
	Params   Params
}

// String renders the query text.
func (q *Query) String() string {
	if q == nil {
		return ""
	}
	return Render(q.Clauses)
}

// queryBuilder accumulates clauses and parameter bindings.
type queryBuilder struct {
	clauses []Clause
	params  Params
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{params: Params{}}
}

func (b *queryBuilder) add(clauses ...Clause) {
	b.clauses = append(b.clauses, clauses...)
}

// bind stores value under name and returns its placeholder.
func (b *queryBuilder) bind(name string, value any) string {
	b.params[name] = value
	return "$" + name
}

func (b *queryBuilder) merge(clauses []Clause, params Params) {
	b.add(clauses...)
	b.params.Merge(params)
}

func (b *queryBuilder) build(strategy Strategy) *Query {
	return &Query{
		Strategy: strategy,
		Clauses:  b.clauses,
		Params:   b.params,
	}
}
