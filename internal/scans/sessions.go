package scans

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/menucatch/internal/catalog"
	"github.com/JaimeStill/menucatch/internal/pipeline"
	"github.com/JaimeStill/menucatch/internal/resolve"
	"github.com/JaimeStill/menucatch/pkg/storage"
)

// Catalog is the part of catalog.System that scans depend on.
type Catalog interface {
	Names(ctx context.Context) (map[string][]string, error)
	Lookup(ctx context.Context, category, name string) (*catalog.Food, error)
}

// Archive stores batch reports. storage.System satisfies it.
type Archive interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	List(ctx context.Context, prefix, marker string, maxResults int32) (*storage.BlobList, error)
}

// Config controls how batches are resolved.
type Config struct {
	Filter        resolve.Filter
	MaxHypotheses int
	Concurrency   int
	NewClassifier func(index *resolve.Index) (resolve.Classifier, error)
}

type manager struct {
	catalog Catalog
	archive Archive
	cfg     Config
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session

	loadMu sync.Mutex
	rt     *pipeline.Runtime
}

// New creates a scan session manager implementing the System interface.
// archive may be nil, in which case batch reports are not archived.
func New(cat Catalog, archive Archive, cfg Config, logger *slog.Logger) System {
	return &manager{
		catalog:  cat,
		archive:  archive,
		cfg:      cfg,
		logger:   logger.With("system", "scans"),
		sessions: make(map[uuid.UUID]*session),
	}
}

func (m *manager) Handler() *Handler {
	return NewHandler(m, m.logger)
}

func (m *manager) Warm(ctx context.Context) error {
	_, err := m.runtime(ctx)
	return err
}

func (m *manager) Create(ctx context.Context) (*Session, error) {
	s := newSession()

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.logger.Info("session created", "id", s.id)

	snap := s.snapshot()
	return &snap, nil
}

func (m *manager) Find(ctx context.Context, id uuid.UUID) (*Session, error) {
	s, err := m.session(id)
	if err != nil {
		return nil, err
	}

	snap := s.snapshot()
	return &snap, nil
}

func (m *manager) Resolve(ctx context.Context, id uuid.UUID, cmd BatchCommand) (*BatchReport, error) {
	s, err := m.session(id)
	if err != nil {
		return nil, err
	}

	if len(cmd.Items) == 0 {
		return nil, ErrEmptyBatch
	}

	rt, err := m.runtime(ctx)
	if err != nil {
		return nil, err
	}

	fragments := Consolidate(cmd.Items)
	gen := s.currentGeneration()

	report := &BatchReport{
		ID:        uuid.New(),
		SessionID: id,
		Items:     cmd.Items,
		Fragments: len(fragments),
		Outcomes:  make([]pipeline.Outcome, 0, len(fragments)),
		Records:   []Record{},
		StartedAt: time.Now().UTC(),
	}

	if m.cfg.Concurrency <= 1 {
		for _, f := range fragments {
			o, err := pipeline.Execute(ctx, rt, f)
			if err != nil {
				m.abandon(ctx, report, err)
				return nil, fmt.Errorf("resolve fragment %d: %w", f.Index, err)
			}
			collect(report, s, gen, *o)
		}
	} else {
		outcomes, err := pipeline.Run(ctx, rt, fragments, m.cfg.Concurrency)
		if err != nil {
			return nil, fmt.Errorf("resolve batch: %w", err)
		}
		collect(report, s, gen, outcomes...)
	}

	report.CompletedAt = time.Now().UTC()

	m.store(ctx, report)

	m.logger.Info(
		"batch resolved",
		"session", id,
		"batch", report.ID,
		"fragments", report.Fragments,
		"resolved", report.Resolved,
		"skipped", report.Skipped,
		"discarded", report.Discarded,
	)

	return report, nil
}

func (m *manager) Clear(ctx context.Context, id uuid.UUID) (*Session, error) {
	s, err := m.session(id)
	if err != nil {
		return nil, err
	}

	s.clear()
	m.logger.Info("session cleared", "id", id)

	snap := s.snapshot()
	return &snap, nil
}

func (m *manager) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	s.close()
	m.logger.Info("session deleted", "id", id)
	return nil
}

func (m *manager) Subscribe(ctx context.Context, id uuid.UUID) (<-chan Session, func(), error) {
	s, err := m.session(id)
	if err != nil {
		return nil, nil, err
	}

	ch, cancel := s.subscribe()
	return ch, cancel, nil
}

func (m *manager) Archive(ctx context.Context, id uuid.UUID, marker string, maxResults int32) (*storage.BlobList, error) {
	if m.archive == nil {
		return &storage.BlobList{Blobs: []storage.BlobMeta{}}, nil
	}

	list, err := m.archive.List(ctx, ArchivePrefix(id), marker, maxResults)
	if err != nil {
		return nil, fmt.Errorf("list archived batches: %w", err)
	}
	return list, nil
}

func (m *manager) Diagnose(ctx context.Context, text string) (*Diagnosis, error) {
	rt, err := m.runtime(ctx)
	if err != nil {
		return nil, err
	}

	d := &Diagnosis{
		Text:     text,
		Eligible: rt.Filter.Eligible(text),
		Ranked:   resolve.RankedCategories{},
		Result:   resolve.Result{Candidates: []resolve.Candidate{}},
	}

	if !d.Eligible {
		return d, nil
	}

	ranked, err := resolve.Rank(ctx, rt.Classifier, text, rt.MaxHypotheses)
	if err != nil {
		return nil, fmt.Errorf("rank fragment: %w", err)
	}

	d.Ranked = ranked
	d.Result = resolve.Resolve(text, ranked, rt.Index)
	return d, nil
}

func (m *manager) session(id uuid.UUID) (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// runtime returns the pipeline runtime, loading the catalog index and the
// classifier on first use. A failed load is retried on the next call.
func (m *manager) runtime(ctx context.Context) (*pipeline.Runtime, error) {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	if m.rt != nil {
		return m.rt, nil
	}

	names, err := m.catalog.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexUnavailable, err)
	}

	index := resolve.NewIndex(names)

	c, err := m.cfg.NewClassifier(index)
	if err != nil {
		return nil, fmt.Errorf("%w: create classifier: %w", ErrIndexUnavailable, err)
	}

	m.rt = &pipeline.Runtime{
		Classifier:    c,
		Index:         index,
		Catalog:       m.catalog,
		Filter:        m.cfg.Filter,
		MaxHypotheses: m.cfg.MaxHypotheses,
		Logger:        m.logger.With("module", "pipeline"),
	}

	m.logger.Info(
		"catalog index loaded",
		"categories", len(index.Categories()),
		"foods", index.Len(),
	)

	return m.rt, nil
}

// abandon archives what a sequential batch appended before it stopped, so
// records already in the session can be traced to a batch.
func (m *manager) abandon(ctx context.Context, report *BatchReport, cause error) {
	report.Partial = true
	report.CompletedAt = time.Now().UTC()

	m.store(context.WithoutCancel(ctx), report)

	m.logger.Warn(
		"batch stopped early",
		"session", report.SessionID,
		"batch", report.ID,
		"handled", len(report.Outcomes),
		"fragments", report.Fragments,
		"appended", len(report.Records),
		"error", cause,
	)
}

func (m *manager) store(ctx context.Context, report *BatchReport) {
	if m.archive == nil {
		return
	}

	key := ArchiveKey(report.SessionID, report.ID)
	report.ArchiveKey = key

	data, err := json.Marshal(report)
	if err != nil {
		report.ArchiveKey = ""
		m.logger.Warn("batch archive encode failed", "batch", report.ID, "error", err)
		return
	}

	if err := m.archive.Upload(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		report.ArchiveKey = ""
		m.logger.Warn("batch archive failed", "batch", report.ID, "key", key, "error", err)
	}
}

func collect(report *BatchReport, s *session, gen int, outcomes ...pipeline.Outcome) {
	records := make([]Record, 0, len(outcomes))

	for _, o := range outcomes {
		report.Outcomes = append(report.Outcomes, o)
		if o.Resolved() {
			report.Resolved++
			records = append(records, newRecord(o, report.ID))
		} else {
			report.Skipped++
		}
	}

	appended, discarded := s.append(gen, records)
	report.Records = append(report.Records, appended...)
	report.Discarded += discarded
}
