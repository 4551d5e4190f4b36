package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/appetiteclub/frontdesk/cmd/utils/internal/commands"
	"github.com/aquamarinepk/aqm"
)

const (
	appName    = "frontdesk-utils"
	appVersion = "0.1.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	config, err := aqm.LoadConfig("UTILS", os.Args[2:])
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	logLevel := config.GetStringOrDef("log.level", "info")
	logger := aqm.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := os.Args[1]

	switch command {
	case "list":
		if err := commands.ListReservations(ctx, config, logger, os.Stdout); err != nil {
			log.Fatalf("❌ Listing reservations failed: %v", err)
		}

	case "room-types":
		if err := commands.RoomTypes(ctx, config, logger, os.Stdout); err != nil {
			log.Fatalf("❌ Listing room types failed: %v", err)
		}

	case "watch-events":
		if err := commands.WatchEvents(ctx, config, logger, os.Stdout); err != nil {
			log.Fatalf("❌ Watching events failed: %v", err)
		}

	case "version":
		fmt.Printf("%s version %s\n", appName, appVersion)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - Frontdesk utility commands

Usage:
  %s <command> [options]

Commands:
  list           Print the reservations table of a running frontdesk
  room-types     Print the room types known to the rooms service
  watch-events   Follow reservation change events on NATS
  version        Print version information
  help           Show this help message

Environment Variables:
  UTILS_FRONTDESK_URL   Frontdesk base URL (default: http://localhost:8085)
  UTILS_NATS_URL        NATS URL (default: nats://localhost:4222)
  UTILS_FILTER_Q        Text filter for list (id or guest name)
  UTILS_FILTER_STATUS   Status filter for list
  UTILS_FILTER_DATE     Check-in filter for list (yyyy-mm-dd or dd/mm/yyyy)
  UTILS_LOG_LEVEL       Log level: debug, info, warn, error (default: info)

Examples:
  UTILS_FILTER_STATUS=Pendiente %s list
  %s watch-events

`, appName, appName, appName, appName)
}
