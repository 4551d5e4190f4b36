package reservations

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/aquamarinepk/aqm"
)

const seedDoc = `{
  "reservations": [
    {"id": " #482913 ", "guest_name": " Lucía Fernández ", "avatar_ref": "", "room_label": "101 (Doble)", "check_in": "12/03/2025", "check_out": "15/03/2025", "status": "Confirmada"},
    {"id": "", "guest_name": "Sin ID"},
    {"id": "#731054", "guest_name": "Martín Gómez", "avatar_ref": "img/martin.png", "room_label": "201 (Suite)", "check_in": "14/03/2025", "check_out": "18/03/2025", "status": "Pendiente"}
  ]
}`

func TestLoadSeeds(t *testing.T) {
	tests := []struct {
		name    string
		fs      fstest.MapFS
		wantIDs []string
		wantErr bool
	}{
		{
			name:    "validDocument",
			fs:      fstest.MapFS{"seed.json": {Data: []byte(seedDoc)}},
			wantIDs: []string{"#482913", "#731054"},
		},
		{
			name:    "missingFile",
			fs:      fstest.MapFS{},
			wantErr: true,
		},
		{
			name:    "emptyFile",
			fs:      fstest.MapFS{"seed.json": {Data: []byte{}}},
			wantErr: true,
		},
		{
			name:    "malformedJSON",
			fs:      fstest.MapFS{"seed.json": {Data: []byte("{")}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := LoadSeeds(tt.fs, aqm.NewNoopLogger())
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadSeeds() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			got := ids(records)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("ids = %v, want %v", got, tt.wantIDs)
			}
			for i := range got {
				if got[i] != tt.wantIDs[i] {
					t.Errorf("ids[%d] = %q, want %q", i, got[i], tt.wantIDs[i])
				}
			}
		})
	}
}

func TestLoadSeedsTrimsAndDefaults(t *testing.T) {
	records, err := LoadSeeds(fstest.MapFS{"seed.json": {Data: []byte(seedDoc)}}, nil)
	if err != nil {
		t.Fatalf("LoadSeeds() error = %v", err)
	}

	first := records[0]
	if first.GuestName != "Lucía Fernández" {
		t.Errorf("GuestName = %q", first.GuestName)
	}
	if first.AvatarRef != DefaultAvatar {
		t.Errorf("AvatarRef = %q, want %q", first.AvatarRef, DefaultAvatar)
	}
	if records[1].AvatarRef != "img/martin.png" {
		t.Errorf("AvatarRef = %q", records[1].AvatarRef)
	}
}

func TestDemoReservations(t *testing.T) {
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	a := DemoReservations(20, 7, today)
	b := DemoReservations(20, 7, today)

	if len(a) != 20 {
		t.Fatalf("DemoReservations() returned %d rows, want 20", len(a))
	}

	seen := map[string]bool{}
	for i, r := range a {
		if r != b[i] {
			t.Errorf("row %d differs for the same seed", i)
		}
		if seen[r.ID] {
			t.Errorf("duplicate id %q", r.ID)
		}
		seen[r.ID] = true

		if !idPattern.MatchString(r.ID) {
			t.Errorf("id %q has the wrong format", r.ID)
		}
		if _, ok := ParseStatus(r.Status); !ok {
			t.Errorf("status %q outside the enumeration", r.Status)
		}
		in, okIn := ParseDate(r.CheckIn)
		out, okOut := ParseDate(r.CheckOut)
		if !okIn || !okOut || !out.After(in) {
			t.Errorf("dates %q..%q are not a valid stay", r.CheckIn, r.CheckOut)
		}
	}
}

func TestSeedingFunc(t *testing.T) {
	renderer := &MockRenderer{}
	desk := NewDesk(DeskDeps{Renderer: renderer}, aqm.NewNoopLogger())
	seedFS := fstest.MapFS{"seed.json": {Data: []byte(seedDoc)}}

	tests := []struct {
		name      string
		demo      bool
		demoCount int
		want      int
	}{
		{name: "seedOnly", demo: false, demoCount: 5, want: 2},
		{name: "seedAndDemo", demo: true, demoCount: 5, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := SeedingFunc(desk, seedFS, tt.demo, tt.demoCount, aqm.NewNoopLogger())
			if err := seed(context.Background()); err != nil {
				t.Fatalf("seeding error = %v", err)
			}
			if got := desk.Store().Len(); got != tt.want {
				t.Errorf("store has %d records, want %d", got, tt.want)
			}
			if got := len(renderer.Last()); got != tt.want {
				t.Errorf("rendered %d rows, want %d", got, tt.want)
			}
		})
	}
}
