package web

import (
	"context"
	"sync"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/reservations"
)

// TableSink keeps the table body the browser should show. Every render
// replaces the previous one.
type TableSink struct {
	mu      sync.RWMutex
	rows    []reservations.Row
	version uint64
	metrics *Metrics
}

func NewTableSink(metrics *Metrics) *TableSink {
	return &TableSink{rows: []reservations.Row{}, metrics: metrics}
}

func (s *TableSink) RenderRows(ctx context.Context, rows []reservations.Row) error {
	s.mu.Lock()
	s.rows = append([]reservations.Row(nil), rows...)
	s.version++
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.displayedRows.Set(float64(len(rows)))
	}
	return nil
}

// Rows returns the last rendered body and its version.
func (s *TableSink) Rows() ([]reservations.Row, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]reservations.Row(nil), s.rows...), s.version
}
