package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quantum-harvest/internal/api"
	"quantum-harvest/internal/config"
	"quantum-harvest/internal/game"
	"quantum-harvest/internal/replay"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		// Try current directory as fallback
		if err := godotenv.Load(".env"); err != nil {
			log.Println("💡 No .env file found, using environment variables only")
		}
	} else {
		log.Println("✅ Loaded environment from ../.env")
	}

	log.Println("⚛️ ================================")
	log.Println("⚛️  QUANTUM HARVEST - MATCH ENGINE")
	log.Println("⚛️  Scripted self-play + spectator")
	log.Println("⚛️ ================================")

	var (
		configPath = flag.String("config", "", "YAML balance file applied over the defaults")
		seedFlag   = flag.Int64("seed", 0, "match seed (0 picks one from the clock)")
		mapSize    = flag.Int("map-size", 0, "board size override")
		maxTurns   = flag.Int("max-turns", 0, "turn limit override")
		replayPath = flag.String("replay", "replay.jsonl.lz4", "replay output path (empty disables)")
		addrFlag   = flag.String("addr", "", "spectator listen address override")
		pace       = flag.Duration("pace", 0, "delay between turns, e.g. 200ms for watchable matches")
		hold       = flag.Bool("hold", false, "keep the spectator server up after the match ends")
	)
	flag.Parse()

	// Load centralized configuration (SSOT - Single Source of Truth)
	appConfig := config.Load()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("❌ Config file: %v", err)
		}
		appConfig = loaded
		log.Printf("📄 Balance loaded from %s", *configPath)
	}
	if *mapSize > 0 {
		appConfig.Game.Match.MapSize = *mapSize
	}
	if *maxTurns > 0 {
		appConfig.Game.Match.MaxTurns = *maxTurns
	}
	if *addrFlag != "" {
		appConfig.Server.ListenAddr = *addrFlag
	}

	match := appConfig.Game.Match
	log.Printf("🗺️ Match: %dx%d board, %d turn limit", match.MapSize, match.MapSize, match.MaxTurns)
	log.Printf("🏆 Victory: %.0f energy, %.0f%% territory for %d turns",
		match.EnergyVictoryThreshold, match.TerritoryVictoryThreshold*100, match.TerritoryVictoryTurns)

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine := game.NewEngine(appConfig.Game)

	// Replay recording
	var recorder *replay.Recorder
	if *replayPath != "" {
		recorder = replay.NewRecorder()
		recorder.RecordConfig(match, seed, []string{"scripted-0", "scripted-1"})
		engine.SetSink(recorder)
		log.Printf("📝 Replay: %s", *replayPath)
	}

	if _, _, err := engine.Reset(seed); err != nil {
		log.Fatalf("❌ Reset failed: %v", err)
	}

	// Spectator server
	var server *api.Server
	if appConfig.Server.Enabled {
		server = api.NewServer(engine)
		go func() {
			addr := appConfig.Server.ListenAddr
			log.Printf("🌐 Spectator server on http://%s", addr)
			log.Printf("📊 Metrics: http://%s/metrics", addr)
			if err := server.Start(addr); err != nil {
				log.Printf("⚠️ Spectator server stopped: %v", err)
			}
		}()
	} else {
		log.Println("⚠️ Spectator server disabled")
	}

	agents := [2]*scriptedAgent{
		newScriptedAgent(0, appConfig.Game, seed+1),
		newScriptedAgent(1, appConfig.Game, seed+2),
	}

	log.Println("✅ Match started")

	var final game.StepResult
	for {
		start := time.Now()

		// Player 0 acts on the half tick, player 1 closes the turn.
		res, err := engine.Step(agents[0].Actions(engine.PlayerObservation(0)), false)
		if err != nil {
			log.Fatalf("❌ Step failed: %v", err)
		}
		if !res.Terminated {
			res, err = engine.Step(agents[1].Actions(engine.PlayerObservation(1)), true)
			if err != nil {
				log.Fatalf("❌ Step failed: %v", err)
			}
		}

		api.ObserveStep(time.Since(start))
		api.UpdateMatchGauges(engine.LivingUnits(), engine.PlayerEnergy())

		if res.Terminated || res.Truncated {
			final = res
			break
		}
		if *pace > 0 {
			time.Sleep(*pace)
		}
	}

	_, winner := engine.Terminated()
	api.RecordMatchFinished(winner)
	logOutcome(engine, final, winner)

	if recorder != nil {
		if err := recorder.SaveFile(*replayPath); err != nil {
			log.Printf("⚠️ Replay save failed: %v", err)
		} else {
			log.Printf("💾 Replay saved: %s (%d entries)", *replayPath, recorder.Len())
		}
	}

	if *hold && server != nil {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		log.Println("👀 Holding final state for spectators. Press Ctrl+C to stop.")
		<-quit
		server.Stop()
	}

	log.Println("👋 Match complete!")
}

func logOutcome(engine *game.Engine, final game.StepResult, winner *int) {
	energy := engine.PlayerEnergy()
	units := engine.LivingUnits()
	log.Printf("🏁 Finished on turn %d", engine.Turn())
	log.Printf("⚡ Energy: p0=%.1f p1=%.1f | Units: p0=%d p1=%d",
		energy[0], energy[1], units[0], units[1])

	switch {
	case winner != nil:
		log.Printf("🏆 Player %d wins!", *winner)
	case final.Truncated:
		log.Println("🤝 Turn limit reached with equal energy - tie")
	default:
		log.Println("🤝 Tie")
	}
}
