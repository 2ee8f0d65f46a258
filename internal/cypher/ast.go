// Package cypher compiles an entity record into a parameterized Cypher query.
//
// Queries are assembled as a list of typed clauses and rendered to text by a single
// serializer. Every user-supplied value is carried in Query.Params and referenced from the
// text as a $name placeholder; the text only ever contains labels, relationship types,
// variable names and fixed numeric literals.
package cypher

import "maps"

// Params are the values bound to a query's named parameters at execution time.
type Params map[string]any

// Merge copies every entry of other into p.
func (p Params) Merge(other Params) {
	maps.Copy(p, other)
}

// Clause is one line of a Cypher query.
type Clause interface {
	isClause()
}

// Match is a MATCH or OPTIONAL MATCH clause with an optional inline WHERE.
type Match struct {
	Optional bool
	Pattern  string
	Where    Predicate
}

// Where is a WHERE clause on its own line, filtering the preceding MATCH or WITH.
type Where struct {
	Predicate Predicate
}

// With projects the listed items into the next query part.
type With struct {
	Distinct bool
	Items    []string
}

// Unwind expands a list expression into rows bound to Alias.
type Unwind struct {
	Expr  string
	Alias string
}

// Return projects the final result columns.
type Return struct {
	Distinct bool
	Items    []string
}

// OrderBy sorts the rows produced by the preceding clause.
type OrderBy struct {
	Items []SortItem
}

// SortItem is one ORDER BY key.
type SortItem struct {
	Expr       string
	Descending bool
}

// Limit caps the number of rows.
type Limit struct {
	Count int
}

func (Match) isClause()   {}
func (Where) isClause()   {}
func (With) isClause()    {}
func (Unwind) isClause()  {}
func (Return) isClause()  {}
func (OrderBy) isClause() {}
func (Limit) isClause()   {}

// Predicate is a boolean expression used by WHERE.
type Predicate interface {
	isPredicate()
}

// Expr is a literal boolean expression. It must only reference variables and $parameters.
type Expr string

// And is satisfied when every operand is.
type And []Predicate

// Or is satisfied when any operand is.
type Or []Predicate

func (Expr) isPredicate() {}
func (And) isPredicate()  {}
func (Or) isPredicate()   {}
