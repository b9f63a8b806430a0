package store

import (
	"time"

	"github.com/guttosm/signstats/internal/domain/models"
	cache "github.com/patrickmn/go-cache"
)

// Entry is a generated report together with its rendered workbook.
type Entry struct {
	Report   *models.Report
	Workbook []byte
}

// ReportStore hands a generated workbook from the preview request to the
// download request. Entries live in process memory and expire after a TTL.
type ReportStore interface {
	Put(entry Entry)
	Get(id string) (Entry, bool)
	Len() int
}

type reportStore struct {
	c *cache.Cache
}

// NewReportStore creates a store whose entries expire after ttl.
func NewReportStore(ttl time.Duration) ReportStore {
	return &reportStore{c: cache.New(ttl, 2*ttl)}
}

// Put stores entry under its report ID, replacing any previous entry.
func (s *reportStore) Put(entry Entry) {
	s.c.Set(entry.Report.ID, entry, cache.DefaultExpiration)
}

// Get returns the entry for id if it has not expired.
func (s *reportStore) Get(id string) (Entry, bool) {
	v, ok := s.c.Get(id)
	if !ok {
		return Entry{}, false
	}
	e, ok := v.(Entry)
	return e, ok
}

// Len reports the number of entries, including expired ones not yet evicted.
func (s *reportStore) Len() int {
	return s.c.ItemCount()
}
