// Package main runs the armory host: one entity with a configured weapon
// loadout, driven by a fixed-interval frame loop and text commands on stdin.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/config"
	"github.com/cory-johannsen/armory/internal/frontend/console"
	"github.com/cory-johannsen/armory/internal/game/command"
	"github.com/cory-johannsen/armory/internal/game/dice"
	"github.com/cory-johannsen/armory/internal/game/entity"
	"github.com/cory-johannsen/armory/internal/game/event"
	"github.com/cory-johannsen/armory/internal/game/frame"
	"github.com/cory-johannsen/armory/internal/game/inventory"
	"github.com/cory-johannsen/armory/internal/observability"
	"github.com/cory-johannsen/armory/internal/scripting"
	"github.com/cory-johannsen/armory/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	name := flag.String("name", "player", "entity name")
	seed := flag.Uint64("seed", 0, "dice seed (0 = time-based)")
	color := flag.Bool("color", true, "ANSI-colored console output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting armory",
		zap.String("config", *configPath),
		zap.Strings("loadout", cfg.Loadout.Weapons),
	)

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	roller := dice.NewRoller(dice.NewSeededSource(*seed), logger)

	weapons, err := buildLoadout(cfg.Loadout, roller, logger)
	if err != nil {
		logger.Fatal("building loadout", zap.Error(err))
	}

	bus := event.NewBus()
	bus.Subscribe(event.WeaponSwitched, func(ev event.Event) {
		if sw, ok := ev.Payload.(inventory.WeaponSwitch); ok {
			logger.Info("weapon switched",
				zap.Int("previous", sw.Previous),
				zap.Int("current", sw.Current),
				zap.String("weapon_id", sw.WeaponID),
				zap.String("weapon", sw.Name),
			)
		}
	})

	if cfg.Scripting.Dir != "" {
		scripts := scripting.NewManager(roller, logger, cfg.Scripting.InstructionLimit)
		if err := scripts.LoadDir(cfg.Scripting.Dir); err != nil {
			logger.Fatal("loading scripts", zap.Error(err))
		}
		defer scripts.Close()
		scripts.SubscribeSwitch(bus)
	}

	player := entity.New(*name, weapons, bus, logger)

	loop := frame.NewLoop(cfg.Frame.Interval, cfg.Frame.InputBuffer, logger)
	loop.RegisterTick("entity:"+player.ID(), player.Tick)

	dispatcher := command.NewDispatcher(command.DefaultRegistry(), player, logger)
	term := console.New(os.Stdin, os.Stdout, dispatcher, loop, console.Options{Color: *color}, logger)
	bus.Subscribe(event.WeaponSwitched, func(ev event.Event) {
		if sw, ok := ev.Payload.(inventory.WeaponSwitch); ok {
			term.Announce(fmt.Sprintf("Switched to %s.", sw.Name))
		}
	})

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("frame", &server.RunService{RunFn: loop.Run})
	lifecycle.Add("console", term)

	logger.Info("armory ready",
		zap.String("entity", player.Name()),
		zap.Int("weapons", player.Selector().Len()),
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Error("armory stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

// buildLoadout loads the weapon definitions and instantiates the configured
// loadout in slot order.
func buildLoadout(cfg config.LoadoutConfig, roller *dice.Roller, logger *zap.Logger) ([]inventory.Weapon, error) {
	if len(cfg.Weapons) == 0 {
		return nil, nil
	}
	defs, err := inventory.LoadWeapons(cfg.WeaponsDir)
	if err != nil {
		return nil, err
	}
	reg, err := inventory.NewRegistryFrom(defs)
	if err != nil {
		return nil, err
	}
	logger.Info("weapon definitions loaded",
		zap.String("dir", cfg.WeaponsDir),
		zap.Int("count", len(defs)),
	)

	weapons, err := reg.BuildLoadout(cfg.Weapons, inventory.BuildOptions{
		Roller: roller,
		Logger: logger,
		OnStrike: func(s inventory.Strike) {
			logger.Info("strike",
				zap.String("weapon", s.WeaponName),
				zap.Stringer("damage", s.Damage),
			)
		},
	})
	if err != nil {
		return nil, err
	}
	if cfg.StartSingleFire != nil {
		for _, w := range weapons {
			w.SetSingleFire(*cfg.StartSingleFire)
		}
	}
	return weapons, nil
}
