package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aquamarinepk/aqm"
)

type roomType struct {
	ID          interface{} `json:"id"`
	Name        string      `json:"nombre"`
	Description string      `json:"descripcion"`
	Capacity    int         `json:"capacidad"`
	Price       float64     `json:"precio"`
}

// RoomTypes prints the room types known to the rooms service, as proxied
// by frontdesk.
func RoomTypes(ctx context.Context, config *aqm.Config, logger aqm.Logger, out io.Writer) error {
	resp, err := frontdeskClient(config).Request(ctx, "GET", "/room-types", nil)
	if err != nil {
		return fmt.Errorf("fetch room types: %w", err)
	}

	var types []roomType
	if err := decodeSuccessResponse(resp, &types); err != nil {
		return fmt.Errorf("decode room types: %w", err)
	}
	logger.Debug("room types fetched", "count", len(types))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tCAPACIDAD\tPRECIO\tDESCRIPCIÓN")
	for _, t := range types {
		fmt.Fprintf(tw, "%v\t%s\t%d\t%.2f\t%s\n", t.ID, t.Name, t.Capacity, t.Price, t.Description)
	}
	return tw.Flush()
}
