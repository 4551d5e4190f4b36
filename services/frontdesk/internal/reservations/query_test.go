package reservations

import (
	"slices"
	"testing"
)

func TestQuery(t *testing.T) {
	records := append(sampleReservations(), Reservation{
		ID: "#100004", GuestName: "Sin Fecha", CheckIn: "pronto", Status: "Pendiente",
	})

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{name: "noCriteria", criteria: Criteria{}, want: []string{"#100001", "#100002", "#100003", "#100004"}},
		{name: "textMatchesGuestCaseInsensitive", criteria: Criteria{Text: "ANA"}, want: []string{"#100001", "#100003"}},
		{name: "textMatchesID", criteria: Criteria{Text: "#100002"}, want: []string{"#100002"}},
		{name: "textWithAccent", criteria: Criteria{Text: "lópez"}, want: []string{"#100001"}},
		{name: "statusIgnoresCase", criteria: Criteria{Status: "pendiente"}, want: []string{"#100002", "#100004"}},
		{name: "statusIsExact", criteria: Criteria{Status: "Pend"}, want: []string{}},
		{name: "isoDate", criteria: Criteria{Date: "2024-06-01"}, want: []string{"#100001", "#100003"}},
		{name: "displayDate", criteria: Criteria{Date: "02/06/2024"}, want: []string{"#100002"}},
		{name: "unparsableDateIsInactive", criteria: Criteria{Date: "garbage"}, want: []string{"#100001", "#100002", "#100003", "#100004"}},
		{name: "conjunction", criteria: Criteria{Text: "ana", Status: "Confirmada", Date: "2024-06-01"}, want: []string{"#100001"}},
		{name: "conjunctionNoMatch", criteria: Criteria{Text: "bruno", Status: "Confirmada"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Query(records, tt.criteria))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Query() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueryDoesNotModifyInput(t *testing.T) {
	records := sampleReservations()
	before := slices.Clone(records)

	Query(records, Criteria{Text: "bruno"})

	if !slices.Equal(records, before) {
		t.Error("Query() modified its input")
	}
}

func TestCriteriaIsZero(t *testing.T) {
	if !(Criteria{Text: "  "}).IsZero() {
		t.Error("blank criteria should be zero")
	}
	if (Criteria{Status: "Pendiente"}).IsZero() {
		t.Error("criteria with status should not be zero")
	}
}
