package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/appetiteclub/frontdesk/pkg"
	"github.com/aquamarinepk/aqm"
)

// WatchEvents prints reservation change events until ctx is done.
func WatchEvents(ctx context.Context, config *aqm.Config, logger aqm.Logger, out io.Writer) error {
	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")

	subscriber, err := pkg.NewNATSSubscriber(natsURL, "frontdesk-utils", func(topic string, err error) {
		logger.Error("event handler failed", "topic", topic, "error", err)
	})
	if err != nil {
		return fmt.Errorf("connect to nats: %w", err)
	}
	defer subscriber.Close()

	err = subscriber.Subscribe(ctx, pkg.ReservationsTopic, func(ctx context.Context, msg []byte) error {
		event, err := pkg.DecodeReservationEvent(msg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s %-22s %s %s (%s)\n",
			event.OccurredAt.Format("15:04:05"), event.EventType, event.ReservationID, event.GuestName, event.Status)
		return err
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", pkg.ReservationsTopic, err)
	}

	logger.Info("Watching reservation events", "topic", pkg.ReservationsTopic, "nats", natsURL)
	<-ctx.Done()
	return nil
}
