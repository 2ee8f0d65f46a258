package graph

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/leefowlercu/cinemalens/internal/cypher"
	"github.com/leefowlercu/cinemalens/internal/entities"
)

// fakeRunner records queries and replays canned responses in order.
type fakeRunner struct {
	mu        sync.Mutex
	responses []fakeResponse
	calls     []fakeCall
}

type fakeResponse struct {
	rows []Row
	err  error
}

type fakeCall struct {
	query  string
	params map[string]any
}

func (f *fakeRunner) run(ctx context.Context, query string, params map[string]any) ([]Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, fakeCall{query: query, params: params})
	if len(f.responses) == 0 {
		return nil, nil
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp.rows, resp.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestReader(f *fakeRunner, retries int) *reader {
	return &reader{runner: f, logger: discardLogger(), maxRetries: retries, retryDelay: time.Millisecond}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Backend != BackendFalkorDB {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendFalkorDB)
	}
	if cfg.Addr() != "localhost:6379" {
		t.Errorf("Addr() = %q, want %q", cfg.Addr(), "localhost:6379")
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != time.Second {
		t.Errorf("RetryDelay = %v, want %v", cfg.RetryDelay, time.Second)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		backend string
		want    string
		wantErr bool
	}{
		{"", BackendFalkorDB, false},
		{BackendFalkorDB, BackendFalkorDB, false},
		{BackendNeo4j, BackendNeo4j, false},
		{"sqlite", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Backend = tt.backend

			g, err := New(cfg, WithLogger(discardLogger()))
			if tt.wantErr {
				if err == nil {
					t.Error("New() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if g.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", g.Name(), tt.want)
			}
			if g.IsConnected() {
				t.Error("IsConnected() = true before Start")
			}
		})
	}
}

func TestNewFalkorDBGraphWithOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "custom-host"
	cfg.MaxRetries = 5

	g := NewFalkorDBGraph(WithConfig(cfg))

	if g.settings.config.Host != "custom-host" {
		t.Errorf("config.Host = %q, want %q", g.settings.config.Host, "custom-host")
	}
	if g.reader.maxRetries != 5 {
		t.Errorf("reader.maxRetries = %d, want 5", g.reader.maxRetries)
	}
}

func TestOperationsBeforeStart(t *testing.T) {
	ctx := context.Background()
	for _, g := range []Graph{NewFalkorDBGraph(WithLogger(discardLogger())), NewNeo4jGraph(WithLogger(discardLogger()))} {
		t.Run(g.Name(), func(t *testing.T) {
			_, err := g.Recommend(ctx, cypher.Generate(&entities.Entities{}))
			if !errors.Is(err, ErrNotConnected) {
				t.Errorf("Recommend() error = %v, want ErrNotConnected", err)
			}
			if _, err := g.GetMovie(ctx, 1); !errors.Is(err, ErrNotConnected) {
				t.Errorf("GetMovie() error = %v, want ErrNotConnected", err)
			}
			if err := g.Stop(ctx); err != nil {
				t.Errorf("Stop() before Start error = %v", err)
			}
		})
	}
}

func TestReaderRecommend_PassesRenderedQueryAndParams(t *testing.T) {
	f := &fakeRunner{responses: []fakeResponse{{rows: []Row{
		{"title": "Heat", "score": 3.5, "popularity": 41.2},
		{"title": "Collateral", "score": int64(2), "popularity": nil},
	}}}}
	r := newTestReader(f, 0)

	q := cypher.Generate(&entities.Entities{Movie: []string{"Thief"}})
	recs, err := r.Recommend(context.Background(), q)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if len(f.calls) != 1 {
		t.Fatalf("runner called %d times, want 1", len(f.calls))
	}
	if f.calls[0].query != q.String() {
		t.Errorf("query = %q, want rendered query", f.calls[0].query)
	}
	if got := f.calls[0].params["movies"]; got == nil {
		t.Errorf("params missing movies: %v", f.calls[0].params)
	}

	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if recs[0].Title != "Heat" || recs[0].Score == nil || *recs[0].Score != 3.5 {
		t.Errorf("recs[0] = %+v", recs[0])
	}
	if recs[1].Score == nil || *recs[1].Score != 2 {
		t.Errorf("recs[1].Score = %v, want 2", recs[1].Score)
	}
	if recs[1].Popularity != nil {
		t.Errorf("recs[1].Popularity = %v, want nil", *recs[1].Popularity)
	}
}

func TestReaderRecommend_NilQuery(t *testing.T) {
	r := newTestReader(&fakeRunner{}, 0)
	if _, err := r.Recommend(context.Background(), nil); err == nil {
		t.Error("Recommend(nil) expected error")
	}
}

func TestReaderQuery_Retries(t *testing.T) {
	transient := errors.New("connection reset")
	f := &fakeRunner{responses: []fakeResponse{
		{err: transient},
		{err: transient},
		{rows: []Row{{"title": "Alien"}}},
	}}
	r := newTestReader(f, 3)

	rows, err := r.query(context.Background(), "RETURN 1", nil)
	if err != nil {
		t.Fatalf("query() error = %v", err)
	}
	if len(rows) != 1 || len(f.calls) != 3 {
		t.Errorf("rows = %v, calls = %d; want 1 row after 3 calls", rows, len(f.calls))
	}
}

func TestReaderQuery_GivesUp(t *testing.T) {
	transient := errors.New("connection reset")
	f := &fakeRunner{responses: []fakeResponse{{err: transient}}}
	r := newTestReader(f, 2)

	_, err := r.query(context.Background(), "RETURN 1", nil)
	if !errors.Is(err, transient) {
		t.Errorf("query() error = %v, want wrapped transient error", err)
	}
	if len(f.calls) != 3 {
		t.Errorf("calls = %d, want 3", len(f.calls))
	}
}

func TestReaderQuery_DoesNotRetryPermanentErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"not connected", ErrNotConnected},
		{"canceled", context.Canceled},
		{"deadline", context.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeRunner{responses: []fakeResponse{{err: tt.err}}}
			r := newTestReader(f, 5)

			if _, err := r.query(context.Background(), "RETURN 1", nil); !errors.Is(err, tt.err) {
				t.Errorf("query() error = %v, want %v", err, tt.err)
			}
			if len(f.calls) != 1 {
				t.Errorf("calls = %d, want 1", len(f.calls))
			}
		})
	}
}

func TestReaderGetMovie(t *testing.T) {
	row := Row{
		"target": map[string]any{"id": int64(7), "title": "Heat", "popularity": 41.2},
		"connections": []any{
			map[string]any{"relationship": "DIRECTED_BY", "direction": "OUTGOING", "connected": map[string]any{"name": "Michael Mann"}},
			map[string]any{"relationship": "RELEASED_IN", "direction": "OUTGOING", "connected": map[string]any{"year": int64(1995)}},
		},
	}
	f := &fakeRunner{responses: []fakeResponse{{rows: []Row{row}}}}
	r := newTestReader(f, 0)

	m, err := r.GetMovie(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetMovie() error = %v", err)
	}
	if m.ID != 7 || m.Title != "Heat" {
		t.Errorf("movie = %+v", m)
	}
	if f.calls[0].query != movieByIDQuery || f.calls[0].params["id"] != int64(7) {
		t.Errorf("call = %+v", f.calls[0])
	}
}

func TestReaderGetMovie_NotFound(t *testing.T) {
	r := newTestReader(&fakeRunner{}, 0)

	_, err := r.GetMovie(context.Background(), 99)
	if !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("GetMovie() error = %v, want ErrMovieNotFound", err)
	}
}

func TestReaderBatchLookups(t *testing.T) {
	f := &fakeRunner{}
	r := newTestReader(f, 0)
	ctx := context.Background()

	movies, err := r.GetMoviesByIDs(ctx, nil)
	if err != nil || len(movies) != 0 {
		t.Errorf("GetMoviesByIDs(nil) = %v, %v", movies, err)
	}
	if len(f.calls) != 0 {
		t.Error("empty id list should not reach the store")
	}

	if _, err := r.GetMoviesByIDs(ctx, []int64{1, 2}); err != nil {
		t.Fatalf("GetMoviesByIDs() error = %v", err)
	}
	ids, _ := f.calls[0].params["ids"].([]any)
	if len(ids) != 2 || ids[0] != int64(1) {
		t.Errorf("ids param = %v", f.calls[0].params["ids"])
	}

	if _, err := r.GetMoviesByTitles(ctx, []string{"Heat"}); err != nil {
		t.Fatalf("GetMoviesByTitles() error = %v", err)
	}
	if f.calls[1].query != moviesByTitlesQuery {
		t.Errorf("query = %q", f.calls[1].query)
	}
	titles, _ := f.calls[1].params["titles"].([]any)
	if len(titles) != 1 || titles[0] != "Heat" {
		t.Errorf("titles param = %v", f.calls[1].params["titles"])
	}
}

func TestLookupQueriesBindParams(t *testing.T) {
	for name, q := range map[string]string{
		"id":     movieByIDQuery,
		"ids":    moviesByIDsQuery,
		"titles": moviesByTitlesQuery,
	} {
		if !strings.Contains(q, "$"+name) {
			t.Errorf("query for %s does not reference $%s", name, name)
		}
		if !strings.Contains(q, "AS connections") {
			t.Errorf("query for %s does not return connections", name)
		}
	}
}

func TestFalkorParams(t *testing.T) {
	if falkorParams(nil) != nil {
		t.Error("falkorParams(nil) should be nil")
	}

	got := falkorParams(map[string]any{
		"movies":     []string{"heat"},
		"ids":        []int64{3},
		"year_start": 1990,
	})

	movies, ok := got["movies"].([]any)
	if !ok || len(movies) != 1 || movies[0] != "heat" {
		t.Errorf("movies = %#v", got["movies"])
	}
	ids, ok := got["ids"].([]any)
	if !ok || ids[0] != int64(3) {
		t.Errorf("ids = %#v", got["ids"])
	}
	if got["year_start"] != 1990 {
		t.Errorf("year_start = %#v", got["year_start"])
	}
}
