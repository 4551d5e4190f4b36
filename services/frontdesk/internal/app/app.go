package app

import (
	"context"
	"io/fs"
	"strconv"
	"time"

	"github.com/appetiteclub/frontdesk/pkg"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/reservations"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/rooms"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/web"
	"github.com/aquamarinepk/aqm"
	aqmevents "github.com/aquamarinepk/aqm/events"
	"github.com/aquamarinepk/aqm/middleware"
	aqmtemplate "github.com/aquamarinepk/aqm/template"
)

const (
	AppName    = "frontdesk"
	AppVersion = "0.1.0"
)

const defaultDemoCount = 12

// App wires the reservations desk into an aqm micro service.
type App struct {
	config   *aqm.Config
	logger   aqm.Logger
	seedFS   fs.FS
	assetsFS fs.FS
	micro    *aqm.Micro

	desk   *reservations.Desk
	dialog *web.ModalDialog
}

// New creates the application. seedFS holds seed.json; assetsFS holds
// assets/templates and assets/static.
func New(config *aqm.Config, logger aqm.Logger, seedFS, assetsFS fs.FS) (*App, error) {
	return &App{
		config:   config,
		logger:   logger,
		seedFS:   seedFS,
		assetsFS: assetsFS,
	}, nil
}

// Initialize builds every component and the micro service around them.
func (a *App) Initialize(ctx context.Context) error {
	tmplMgr := aqmtemplate.NewManager(a.assetsFS, aqmtemplate.WithLogger(a.logger))

	var publisher aqmevents.Publisher
	var natsPublisher *pkg.NATSPublisher
	if natsURL, _ := a.config.GetString("nats.url"); natsURL != "" {
		p, err := pkg.NewNATSPublisher(natsURL, AppName)
		if err != nil {
			a.logger.Errorf("NATS unavailable, reservation events disabled: %v", err)
		} else {
			natsPublisher = p
			publisher = p
		}
	}

	var roomsClient rooms.Client = rooms.NewNoopClient()
	if roomsURL, _ := a.config.GetString("services.rooms.url"); roomsURL != "" {
		roomsClient = rooms.NewHTTPClient(roomsURL)
	}

	metrics := web.NewMetrics()
	sink := web.NewTableSink(metrics)
	a.dialog = web.NewModalDialog(a.dialogTimeout(), a.logger)

	a.desk = reservations.NewDesk(reservations.DeskDeps{
		Store:     reservations.NewStore(),
		IDs:       reservations.NewIDGenerator(nil),
		Dialog:    a.dialog,
		Renderer:  sink,
		Publisher: publisher,
		Rooms:     rooms.NewSuggester(roomsClient),
	}, a.logger)

	static, err := fs.Sub(a.assetsFS, "assets/static")
	if err != nil {
		return err
	}

	handler := web.NewHandler(web.HandlerDeps{
		Desk:      a.desk,
		Dialog:    a.dialog,
		Sink:      sink,
		Rooms:     roomsClient,
		Templates: tmplMgr,
		Metrics:   metrics,
		Static:    static,
	}, a.config, a.logger)

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger:      a.logger,
		DisableCORS: false,
	})

	demo, _ := a.config.GetString("seeding.demo")
	seeding := reservations.SeedingFunc(a.desk, a.seedFS, demo == "true", a.demoCount(), a.logger)

	lifecycles := []interface{}{tmplMgr}
	lifecycles = append(lifecycles, aqm.LifecycleHooks{
		OnStart: func(ctx context.Context) error {
			if err := seeding(ctx); err != nil {
				a.logger.Error("reservation seeding failed", "error", err)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			a.dialog.Close()
			return nil
		},
	})
	if natsPublisher != nil {
		lifecycles = append(lifecycles, aqm.LifecycleHooks{
			OnStop: func(context.Context) error { return natsPublisher.Close() },
		})
	}

	options := []aqm.Option{
		aqm.WithConfig(a.config),
		aqm.WithLogger(a.logger),
		aqm.WithHTTPMiddleware(stack...),
		aqm.WithHTTPServerModules("web.port", handler),
		aqm.WithLifecycle(lifecycles...),
		aqm.WithHealthChecks(AppName),
	}

	a.micro = aqm.NewMicro(options...)
	return nil
}

// Run starts the application
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("Starting %s(%s)", AppName, AppVersion)
	if err := a.micro.Run(ctx); err != nil {
		return err
	}
	a.logger.Infof("%s(%s) stopped", AppName, AppVersion)
	return nil
}

func (a *App) dialogTimeout() time.Duration {
	raw := a.config.GetStringOrDef("dialog.timeout", web.DefaultDialogTimeout.String())
	d, err := time.ParseDuration(raw)
	if err != nil {
		a.logger.Info("invalid dialog.timeout, using default", "value", raw)
		return web.DefaultDialogTimeout
	}
	return d
}

func (a *App) demoCount() int {
	raw := a.config.GetStringOrDef("seeding.demo.count", strconv.Itoa(defaultDemoCount))
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return defaultDemoCount
	}
	return n
}
