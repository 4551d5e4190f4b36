package reservations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/brianvoe/gofakeit/v7"
)

const seedFile = "seed.json"

type bootstrapSeedDocument struct {
	Reservations []reservationSeed `json:"reservations"`
}

type reservationSeed struct {
	ID        string `json:"id"`
	GuestName string `json:"guest_name"`
	AvatarRef string `json:"avatar_ref"`
	RoomLabel string `json:"room_label"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Status    string `json:"status"`
}

// LoadSeeds reads the rows presented when the desk starts. Cell values are
// trimmed and rows without an id are skipped.
func LoadSeeds(seedFS fs.FS, logger aqm.Logger) ([]Reservation, error) {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}

	seedBytes, err := fs.ReadFile(seedFS, seedFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", seedFile, err)
	}

	if len(seedBytes) == 0 {
		return nil, errors.New("reservation seed file is empty")
	}

	var doc bootstrapSeedDocument
	if err := json.Unmarshal(seedBytes, &doc); err != nil {
		return nil, fmt.Errorf("decode reservation seed file: %w", err)
	}

	records := make([]Reservation, 0, len(doc.Reservations))
	for _, s := range doc.Reservations {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			logger.Info("Skipping seed reservation with empty id", "guest", s.GuestName)
			continue
		}

		avatar := strings.TrimSpace(s.AvatarRef)
		if avatar == "" {
			avatar = DefaultAvatar
		}

		records = append(records, Reservation{
			ID:        id,
			GuestName: strings.TrimSpace(s.GuestName),
			AvatarRef: avatar,
			RoomLabel: strings.TrimSpace(s.RoomLabel),
			CheckIn:   strings.TrimSpace(s.CheckIn),
			CheckOut:  strings.TrimSpace(s.CheckOut),
			Status:    strings.TrimSpace(s.Status),
		})
	}

	return records, nil
}

var demoRooms = []string{"101 (Doble)", "102 (Doble)", "201 (Suite)", "202 (Individual)", "305 (Familiar)"}

// DemoReservations fabricates n reservations around today. The same seed
// yields the same reservations. Ids are unique among the returned rows.
func DemoReservations(n int, seed uint64, today time.Time) []Reservation {
	faker := gofakeit.New(seed)
	ids := NewIDGenerator(func(n int) int { return faker.Number(0, n-1) })

	taken := make(map[string]struct{}, n)
	statuses := make([]string, 0, len(Statuses))
	for _, s := range Statuses {
		statuses = append(statuses, s.String())
	}

	out := make([]Reservation, 0, n)
	for range n {
		id, err := ids.Next(func(id string) bool {
			_, ok := taken[id]
			return ok
		})
		if err != nil {
			break
		}
		taken[id] = struct{}{}

		checkIn := today.AddDate(0, 0, faker.Number(-10, 30))
		checkOut := checkIn.AddDate(0, 0, faker.Number(1, 7))

		out = append(out, Reservation{
			ID:        id,
			GuestName: faker.Name(),
			AvatarRef: DefaultAvatar,
			RoomLabel: faker.RandomString(demoRooms),
			CheckIn:   FormatDate(checkIn),
			CheckOut:  FormatDate(checkOut),
			Status:    faker.RandomString(statuses),
		})
	}
	return out
}

// SeedingFunc imports the presented rows into desk on start. When demo is
// set, demoCount fabricated rows are appended after them.
func SeedingFunc(desk *Desk, seedFS fs.FS, demo bool, demoCount int, logger aqm.Logger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		records, err := LoadSeeds(seedFS, logger)
		if err != nil {
			return fmt.Errorf("load reservation seeds: %w", err)
		}

		if demo {
			logger.Info("Demo seeding enabled for frontdesk", "count", demoCount)
			records = append(records, DemoReservations(demoCount, uint64(time.Now().UnixNano()), time.Now())...)
		}

		return desk.Import(ctx, records)
	}
}
