package cmdutil

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/leefowlercu/cinemalens/internal/cypher"
)

// QueryReport is the printable form of a generated query.
type QueryReport struct {
	Strategy string         `json:"strategy" yaml:"strategy"`
	Query    string         `json:"query" yaml:"query"`
	Params   map[string]any `json:"params" yaml:"params"`
}

// NewQueryReport renders q for output.
func NewQueryReport(q *cypher.Query) QueryReport {
	params := make(map[string]any, len(q.Params))
	maps.Copy(params, q.Params)
	return QueryReport{
		Strategy: q.Strategy.String(),
		Query:    q.String(),
		Params:   params,
	}
}

// WriteQuery prints q in the requested format. Text output lists parameters
// in name order after the query.
func WriteQuery(w io.Writer, format string, q *cypher.Query) error {
	report := NewQueryReport(q)
	if format != FormatText {
		return WriteStructured(w, format, report)
	}

	fmt.Fprintf(w, "// strategy: %s\n", report.Strategy)
	fmt.Fprintln(w, report.Query)
	if len(report.Params) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "// params:")
	for _, name := range slices.Sorted(maps.Keys(report.Params)) {
		fmt.Fprintf(w, "//   $%s = %v\n", name, report.Params[name])
	}
	return nil
}
