package report

import (
	"sync"

	"github.com/google/uuid"

	"frauddash/internal/domain"
	"frauddash/pkg/logger"
)

// Store owns the dashboard state for one process: the loaded dataset,
// its derived views, the current page, and the terminal error state. The
// core pipeline is single-threaded but the HTTP surface is not, so all
// access goes through a lock.
//
// A load fully replaces the previous dataset; the sorted order and
// summary are derived once per load and the page resets to 1, so the
// transition from empty to loaded is atomic from a reader's perspective.
type Store struct {
	mu sync.RWMutex

	datasetID uuid.UUID
	dataset   []domain.Transaction
	sorted    []domain.Transaction
	summary   domain.Summary
	page      int
	loadErr   string

	cache  SummaryCache
	logger logger.Logger
}

// NewStore creates an empty Store. cache may be nil, in which case the
// summary is always recomputed on load.
func NewStore(cache SummaryCache, log logger.Logger) *Store {
	return &Store{
		page:   1,
		cache:  cache,
		logger: log,
	}
}

// Load replaces the dataset, rederives all views, and resets the current
// page to 1. A previous terminal error is cleared only by a successful
// load, which in this system never happens (loads are one-shot), but the
// semantics keep Load self-contained.
func (s *Store) Load(dataset []domain.Transaction) {
	id := uuid.New()
	sorted := SortDataset(dataset)
	summary := s.summarize(dataset)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.datasetID = id
	s.dataset = dataset
	s.sorted = sorted
	s.summary = summary
	s.page = 1
	s.loadErr = ""

	s.logger.Info("dataset loaded", map[string]interface{}{
		"dataset_id":   id.String(),
		"transactions": len(dataset),
		"total_pages":  TotalPages(len(dataset)),
	})
}

// summarize goes through the cache when one is configured. The cache is
// an optimization keyed by a content fingerprint of the dataset, so a
// fresh process loading the same CSV gets a hit; a miss or cache
// failure falls back to recomputation.
func (s *Store) summarize(dataset []domain.Transaction) domain.Summary {
	if s.cache == nil {
		return Summarize(dataset)
	}

	key := DatasetFingerprint(dataset)
	if cached, err := s.cache.Get(key); err == nil && cached != nil {
		return *cached
	}

	summary := Summarize(dataset)
	if err := s.cache.Set(key, &summary); err != nil {
		s.logger.Warn("summary cache write failed", map[string]interface{}{
			"fingerprint": key,
			"error":       err.Error(),
		})
	}
	return summary
}

// Fail puts the store into the terminal error state. All views then
// surface the message and no rows; there is no recovery short of a
// process restart.
func (s *Store) Fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadErr = message
	s.dataset = nil
	s.sorted = nil
	s.summary = domain.Summary{}
	s.page = 1

	s.logger.Error("dashboard entering terminal error state", map[string]interface{}{
		"error": message,
	})
}

// Err returns the terminal error message, or "" when the store is
// healthy.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// DatasetID identifies the currently loaded dataset; the zero UUID means
// nothing is loaded.
func (s *Store) DatasetID() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.datasetID
}

// Summary returns the aggregate view of the loaded dataset.
func (s *Store) Summary() domain.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// Page returns the view of the current page.
func (s *Store) Page() domain.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Project(s.sorted, s.page)
}

// SetPage moves to the requested page, clamped into the valid range, and
// returns the resulting view. Changing the page never re-sorts.
func (s *Store) SetPage(requested int) domain.Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = ClampPage(requested, TotalPages(len(s.sorted)))
	return Project(s.sorted, s.page)
}

// Next advances one page. It reports whether the page actually moved;
// on the last page the call is a no-op returning false.
func (s *Store) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.page >= TotalPages(len(s.sorted)) {
		return false
	}
	s.page++
	return true
}

// Prev moves one page back. It reports whether the page actually moved;
// on the first page the call is a no-op returning false.
func (s *Store) Prev() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.page <= 1 {
		return false
	}
	s.page--
	return true
}
