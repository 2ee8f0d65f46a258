package graph

// lookupIndexes are indexes on the properties generated queries and lookups filter on.
var lookupIndexes = []string{
	"CREATE INDEX FOR (m:Movie) ON (m.id)",
	"CREATE INDEX FOR (m:Movie) ON (m.title)",
	"CREATE INDEX FOR (a:Actor) ON (a.name)",
	"CREATE INDEX FOR (d:Director) ON (d.name)",
	"CREATE INDEX FOR (g:Genre) ON (g.name)",
	"CREATE INDEX FOR (y:Year) ON (y.year)",
}

// indexWriter executes a schema statement.
type indexWriter interface {
	writeSchema(stmt string) error
}

// ensureIndexes creates lookupIndexes. Existing indexes make the store
// reject the statement; those errors are logged and ignored.
func ensureIndexes(w indexWriter, s settings) {
	for _, stmt := range lookupIndexes {
		if err := w.writeSchema(stmt); err != nil {
			s.logger.Debug("schema query", "query", stmt, "error", err)
		}
	}
}
