package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/papapumpkin/daylog/internal/day"
	"github.com/papapumpkin/daylog/internal/hierarchy"
	"github.com/papapumpkin/daylog/internal/logline"
	"github.com/papapumpkin/daylog/internal/store"
	"github.com/papapumpkin/daylog/internal/taxonomy"
	"github.com/papapumpkin/daylog/internal/telemetry"
)

// loadTaxonomy loads the configured taxonomy. Failure is not fatal: the run
// continues with an empty taxonomy that rejects every label.
func (a *app) loadTaxonomy() *taxonomy.Taxonomy {
	tax, err := taxonomy.Load(a.cfg.TaxonomyPath, a.logger)
	if err != nil {
		a.logger.Warn("using empty taxonomy", zap.String("path", a.cfg.TaxonomyPath), zap.Error(err))
		return taxonomy.New(nil)
	}
	a.logger.Debug("taxonomy loaded", zap.String("path", a.cfg.TaxonomyPath), zap.Int("categories", tax.Len()), zap.Strings("parents", tax.Parents()))
	return tax
}

// newHierarchy returns a builder using the built-in buckets with configured
// overrides applied on top.
func (a *app) newHierarchy() *hierarchy.Builder {
	top := hierarchy.DefaultTopLevel()
	for k, v := range a.cfg.TopLevel {
		top[k] = v
	}
	return hierarchy.NewBuilder(top)
}

// openEvents opens the run event stream, or returns a nil no-op emitter when
// none is configured or it cannot be opened.
func (a *app) openEvents() *telemetry.Emitter {
	if a.cfg.EventsPath == "" {
		return nil
	}
	em, err := telemetry.NewEmitter(a.cfg.EventsPath)
	if err != nil {
		a.logger.Warn("run events disabled", zap.Error(err))
		return nil
	}
	return em
}

// record writes a run event, logging rather than failing on error.
func (a *app) record(em *telemetry.Emitter, kind, file string, data any) {
	if err := em.Record(kind, file, data); err != nil {
		a.logger.Warn("cannot write run event", zap.String("kind", kind), zap.Error(err))
	}
}

// discover lists the log files under path.
func (a *app) discover(path string) ([]string, error) {
	files, err := logline.Discover(path, a.cfg.Extension)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("discovered log files", zap.String("root", path), zap.Int("files", len(files)))
	return files, nil
}

// parseAll parses every file into one merged record list. Unreadable files
// are skipped with a warning. It returns the number of files parsed.
func (a *app) parseAll(files []string, em *telemetry.Emitter) ([]day.Record, int) {
	b := day.NewBuilder(a.cfg.Aliases, a.logger)
	var (
		all []day.Record
		ok  int
	)
	for _, f := range files {
		recs, err := b.ParseFile(f)
		if err != nil {
			a.logger.Warn("skipping unreadable file", zap.String("path", f), zap.Error(err))
			a.record(em, telemetry.KindFileFailed, f, map[string]string{"error": err.Error()})
			continue
		}
		ok++
		a.record(em, telemetry.KindFileImported, f, map[string]int{"days": len(recs)})
		all = append(all, recs...)
	}
	return b.Merge(all), ok
}

// openStore opens the configured database.
func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	st, err := store.Open(ctx, a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", a.cfg.DBPath, err)
	}
	return st, nil
}

// storedHierarchy returns a builder seeded with the stored parent map.
func (a *app) storedHierarchy(ctx context.Context, st *store.Store) (*hierarchy.Builder, error) {
	edges, err := st.ParentMap(ctx)
	if err != nil {
		return nil, err
	}
	h := a.newHierarchy()
	h.Seed(edges)
	return h, nil
}
