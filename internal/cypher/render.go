package cypher

import (
	"fmt"
	"strconv"
	"strings"
)

// Render serializes clauses to Cypher text, one clause per line.
func Render(clauses []Clause) string {
	lines := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if line := renderClause(c); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func renderClause(c Clause) string {
	switch c := c.(type) {
	case Match:
		keyword := "MATCH "
		if c.Optional {
			keyword = "OPTIONAL MATCH "
		}
		line := keyword + c.Pattern
		if where := renderPredicate(c.Where, false); where != "" {
			line += " WHERE " + where
		}
		return line
	case Where:
		if where := renderPredicate(c.Predicate, false); where != "" {
			return "WHERE " + where
		}
		return ""
	case With:
		return projection("WITH", c.Distinct, c.Items)
	case Unwind:
		return fmt.Sprintf("UNWIND %s AS %s", c.Expr, c.Alias)
	case Return:
		return projection("RETURN", c.Distinct, c.Items)
	case OrderBy:
		keys := make([]string, len(c.Items))
		for i, item := range c.Items {
			keys[i] = item.Expr
			if item.Descending {
				keys[i] += " DESC"
			}
		}
		return "ORDER BY " + strings.Join(keys, ", ")
	case Limit:
		return "LIMIT " + strconv.Itoa(c.Count)
	default:
		panic(fmt.Sprintf("cypher: unknown clause type %T", c))
	}
}

func projection(keyword string, distinct bool, items []string) string {
	if distinct {
		keyword += " DISTINCT"
	}
	return keyword + " " + strings.Join(items, ", ")
}

// renderPredicate renders p; nested marks an operand of an enclosing And/Or.
func renderPredicate(p Predicate, nested bool) string {
	switch p := p.(type) {
	case nil:
		return ""
	case Expr:
		return string(p)
	case And:
		parts := renderOperands(flatten(p))
		if len(parts) == 0 {
			return ""
		}
		joined := strings.Join(parts, " AND ")
		if nested && len(parts) > 1 {
			return "(" + joined + ")"
		}
		return joined
	case Or:
		parts := renderOperands(p)
		if len(parts) == 0 {
			return ""
		}
		return "(" + strings.Join(parts, " OR ") + ")"
	default:
		panic(fmt.Sprintf("cypher: unknown predicate type %T", p))
	}
}

// flatten inlines nested conjunctions, AND being associative.
func flatten(and And) []Predicate {
	out := make([]Predicate, 0, len(and))
	for _, op := range and {
		if inner, ok := op.(And); ok {
			out = append(out, flatten(inner)...)
			continue
		}
		out = append(out, op)
	}
	return out
}

func renderOperands(ops []Predicate) []string {
	parts := make([]string, 0, len(ops))
	for _, op := range ops {
		if s := renderPredicate(op, true); s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}
