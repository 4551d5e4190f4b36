package commands

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"text/tabwriter"

	"github.com/aquamarinepk/aqm"
)

type reservationRow struct {
	Position  int    `json:"position"`
	ID        string `json:"id"`
	GuestName string `json:"guest_name"`
	RoomLabel string `json:"room_label"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Status    string `json:"status"`
}

// ListReservations applies the filters in config (filter.q, filter.status,
// filter.date) on a running frontdesk and prints the resulting table.
func ListReservations(ctx context.Context, config *aqm.Config, logger aqm.Logger, out io.Writer) error {
	query := url.Values{}
	query.Set("format", "json")
	for param, key := range map[string]string{"q": "filter.q", "status": "filter.status", "date": "filter.date"} {
		if v, _ := config.GetString(key); v != "" {
			query.Set(param, v)
		}
	}

	resp, err := frontdeskClient(config).Request(ctx, "GET", "/reservations/rows?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("fetch reservations: %w", err)
	}

	var rows []reservationRow
	if err := decodeSuccessResponse(resp, &rows); err != nil {
		return fmt.Errorf("decode reservations: %w", err)
	}
	logger.Debug("reservations fetched", "count", len(rows))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tHUÉSPED\tHABITACIÓN\tENTRADA\tSALIDA\tESTADO")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", r.Position, r.ID, r.GuestName, r.RoomLabel, r.CheckIn, r.CheckOut, r.Status)
	}
	return tw.Flush()
}
