package reservations

import (
	"testing"
)

func TestStoreImport(t *testing.T) {
	s := NewStore()
	records := append(sampleReservations(), Reservation{ID: "#100001", GuestName: "Duplicate"})

	if n := s.Import(records); n != 3 {
		t.Fatalf("Import() = %d, want 3", n)
	}

	got := s.All()
	for i, want := range []string{"#100001", "#100002", "#100003"} {
		if got[i].ID != want {
			t.Errorf("All()[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}
	if got[0].GuestName != "Ana López" {
		t.Errorf("duplicate id replaced the first record: %q", got[0].GuestName)
	}
}

func TestStoreInsertFront(t *testing.T) {
	s := NewStore()
	s.Import(sampleReservations())

	s.InsertFront(Reservation{ID: "#555555", GuestName: "Nueva"})

	all := s.All()
	if len(all) != 4 {
		t.Fatalf("Len = %d, want 4", len(all))
	}
	if all[0].ID != "#555555" || all[1].ID != "#100001" {
		t.Errorf("order after InsertFront = %v", ids(all))
	}
}

func TestStoreReplace(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		wantOK bool
	}{
		{name: "knownID", id: "#100002", wantOK: true},
		{name: "unknownID", id: "#999999", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.Import(sampleReservations())
			before := s.All()

			ok := s.Replace(tt.id, Fields{GuestName: "Cambiado", RoomLabel: "301", CheckIn: "10/06/2024", CheckOut: "12/06/2024", Status: "Confirmada"})
			if ok != tt.wantOK {
				t.Fatalf("Replace() = %v, want %v", ok, tt.wantOK)
			}

			after := s.All()
			if len(after) != len(before) {
				t.Fatalf("Len changed from %d to %d", len(before), len(after))
			}

			if !tt.wantOK {
				for i := range before {
					if before[i] != after[i] {
						t.Errorf("record %d changed on unknown id", i)
					}
				}
				return
			}

			r, _ := s.FindByID(tt.id)
			if r.ID != tt.id || r.GuestName != "Cambiado" || r.RoomLabel != "301" {
				t.Errorf("Replace() stored %+v", r)
			}
			if r.AvatarRef != DefaultAvatar {
				t.Errorf("AvatarRef = %q, want default", r.AvatarRef)
			}
			if after[1].ID != tt.id {
				t.Errorf("replaced record moved: %v", ids(after))
			}
		})
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	s.Import(sampleReservations())

	if s.Remove("#999999") {
		t.Error("Remove() of unknown id reported true")
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d after no-op remove", s.Len())
	}

	if !s.Remove("#100002") {
		t.Fatal("Remove() of known id reported false")
	}
	if s.Has("#100002") {
		t.Error("record still present after Remove()")
	}
	if got := ids(s.All()); got[0] != "#100001" || got[1] != "#100003" {
		t.Errorf("order after Remove() = %v", got)
	}
}

func TestStoreAllReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Import(sampleReservations())

	all := s.All()
	all[0].GuestName = "mutated"

	r, _ := s.FindByID("#100001")
	if r.GuestName == "mutated" {
		t.Error("All() exposed the internal slice")
	}
}

func ids(records []Reservation) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
