package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	kitlog "github.com/go-kit/kit/log"

	"github.com/efurkanakar/orbel"
)

// This tool drives the orbit-geometry core headlessly: it loads a scenario,
// animates the orbit for a number of ticks and writes the trajectory CSV,
// the scene JSON catalog and a sky-plane SVG for a rendering collaborator.

var (
	scenario   string
	view       string
	frames     int
	outPrefix  string
	speedScale float64
	realtime   bool
	verbose    bool
)

func init() {
	flag.StringVar(&scenario, "scenario", "", "scenario TOML file (defaults used when empty)")
	flag.StringVar(&view, "view", "", "view mode override: relative or absolute")
	flag.IntVar(&frames, "frames", 400, "number of animation ticks to record")
	flag.StringVar(&outPrefix, "out", "orbit", "output file prefix")
	flag.Float64Var(&speedScale, "speed", -1, "speed scale override (negative keeps scenario value)")
	flag.BoolVar(&realtime, "realtime", false, "pace ticks on the wall clock instead of stepping immediately")
	flag.BoolVar(&verbose, "verbose", false, "log animator state transitions")
}

func main() {
	flag.Parse()

	sc := orbel.DefaultScenario()
	if scenario != "" {
		var err error
		sc, err = orbel.LoadScenario(scenario)
		if err != nil {
			log.Fatalf("loading scenario: %v", err)
		}
	}
	switch view {
	case "absolute":
		sc.View = orbel.ViewAbsolute
	case "relative":
		sc.View = orbel.ViewRelative
	case "":
	default:
		log.Fatalf("unknown view %q", view)
	}
	if speedScale >= 0 {
		sc.SpeedScale = speedScale
	}

	logger := kitlog.NewNopLogger()
	if verbose {
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
		logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	}

	scene, clock := orbel.NewSceneFromScenario(sc, logger)
	fmt.Printf("scenario: %s | %s | view=%s tick=%s speed=%.2f\n",
		scene.Model().Orbit(), scene.Model().Masses(), sc.View, sc.Interval, scene.Animator().SpeedScale())

	samples := make([]orbel.TrajectorySample, 0, frames+1)
	epoch := time.Now().UTC()
	samples = append(samples, scene.Sample(epoch))

	scene.Start()
	for i := 0; i < frames; i++ {
		if realtime {
			<-clock.Ticks()
			epoch = time.Now().UTC()
		} else {
			epoch = epoch.Add(sc.Interval)
		}
		scene.Animator().Tick()
		samples = append(samples, scene.Sample(epoch))
	}
	scene.Stop()

	frame := scene.Frame()
	if err := writeAll(frame, samples); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("final state: nu=%.6f rad M=%.6f rad after %d ticks\n", scene.Trueν(), scene.MeanM(), frames)
}

func writeAll(frame orbel.Frame, samples []orbel.TrajectorySample) error {
	csvFile, err := os.Create(outPrefix + "_trajectory.csv")
	if err != nil {
		return err
	}
	defer csvFile.Close()
	if err = orbel.WriteTrajectoryCSV(csvFile, samples); err != nil {
		return fmt.Errorf("writing trajectory CSV: %w", err)
	}

	jsonFile, err := os.Create(outPrefix + "_scene.json")
	if err != nil {
		return err
	}
	defer jsonFile.Close()
	if err = orbel.WriteSceneJSON(jsonFile, frame); err != nil {
		return fmt.Errorf("writing scene JSON: %w", err)
	}

	if err = os.WriteFile(outPrefix+"_sky.svg", []byte(orbel.SkyPlotSVG(frame)), 0644); err != nil {
		return fmt.Errorf("writing sky plot SVG: %w", err)
	}
	fmt.Printf("wrote %s_trajectory.csv, %s_scene.json, %s_sky.svg\n", outPrefix, outPrefix, outPrefix)
	return nil
}
