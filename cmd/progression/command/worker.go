package command

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-progression/internal/console"
	"github.com/pixil98/go-progression/internal/driver"
	"github.com/pixil98/go-progression/internal/events"
	"github.com/pixil98/go-progression/internal/listener"
	"github.com/pixil98/go-progression/internal/messaging"
	"github.com/pixil98/go-progression/internal/progression"
	"github.com/pixil98/go-progression/internal/stats"
	"github.com/pixil98/go-service/service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	registry, err := cfg.Content.BuildRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}

	st, err := cfg.Settings.BuildSettings()
	if err != nil {
		return nil, fmt.Errorf("creating settings: %w", err)
	}

	bus := events.NewBus()
	events.On(bus, func(e events.ZoneCompleteEvent) {
		slog.Info("zone completed", "zone", e.Zone.Name(), "wave", e.Zone.ConditionWave)
	})
	events.On(bus, func(e events.UnlockEvent) {
		slog.Info("content unlocked", "type", e.Content.ContentType().String(), "name", e.Content.Name())
	})

	sessionStats := stats.New()
	store := progression.NewStore(st, registry, bus, sessionStats, cfg.Progression.options()...)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("loading progression: %w", err)
	}

	// Setup the driver; the progression store is only touched from its loop
	d := driver.NewDriver([]driver.Manager{store}, driver.WithTickLength(cfg.tickLength()))

	workers := service.WorkerList{
		"driver": d,
	}

	if cfg.Nats != nil {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		messaging.NewRelay(ns).Attach(bus)
		workers["nats"] = ns
		workers["nats-log"] = messaging.NewEventLogger(ns)
	}

	// Create Listeners
	cm := listener.NewConnectionManager(console.New(d, store, registry, sessionStats))
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lw, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lw
	}
	workers["listeners"] = &listeners

	return workers, nil
}

func (c *ProgressionConfig) options() []progression.Opt {
	item, amount := c.StarterItem, progression.DefaultStarterAmount
	if item == "" {
		item = progression.DefaultStarterItem
	}
	if c.StarterAmount != nil {
		amount = *c.StarterAmount
	}
	return []progression.Opt{progression.WithStarterKit(item, amount)}
}
