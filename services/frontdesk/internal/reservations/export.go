package reservations

import (
	"strings"
	"time"
)

// ExportContentType is the MIME type of ToCSV output.
const ExportContentType = "text/csv;charset=utf-8"

var exportHeader = []string{"ID Reserva", "Huésped", "Habitación", "Fecha Entrada", "Fecha Salida", "Estado"}

// ToCSV serialises rows with every field quoted. encoding/csv only quotes
// when needed, so the writer is done by hand.
func ToCSV(rows []Row) string {
	var b strings.Builder
	writeCSVLine(&b, exportHeader)
	for _, r := range rows {
		b.WriteByte('\n')
		writeCSVLine(&b, []string{r.ID, r.GuestName, r.RoomLabel, r.CheckIn, r.CheckOut, r.Status})
	}
	return b.String()
}

func writeCSVLine(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
}

// ExportFilename names the download after the UTC day of now.
func ExportFilename(now time.Time) string {
	return "reservas_" + now.UTC().Format(isoLayout) + ".csv"
}
