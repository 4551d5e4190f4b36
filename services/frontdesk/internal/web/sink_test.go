package web

import (
	"context"
	"testing"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/reservations"
)

func TestTableSinkRenderRows(t *testing.T) {
	s := NewTableSink(nil)

	rows, version := s.Rows()
	if len(rows) != 0 || version != 0 {
		t.Fatalf("new sink = %v, %d", rows, version)
	}

	input := []reservations.Row{{Position: 1, ID: "#100001"}}
	if err := s.RenderRows(context.Background(), input); err != nil {
		t.Fatalf("RenderRows() error = %v", err)
	}
	input[0].ID = "mutated"

	rows, version = s.Rows()
	if version != 1 || len(rows) != 1 || rows[0].ID != "#100001" {
		t.Errorf("Rows() = %v, %d", rows, version)
	}

	if err := s.RenderRows(context.Background(), nil); err != nil {
		t.Fatalf("RenderRows() error = %v", err)
	}
	if rows, version = s.Rows(); len(rows) != 0 || version != 2 {
		t.Errorf("Rows() after empty render = %v, %d", rows, version)
	}
}
