// terraintool is a headless CLI for inspecting terrain topologies and
// replaying viewpoint walks through the streaming grid.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/internal/world"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "indices", "idx":
		err = cmdIndices(args, os.Stdout)
	case "walk":
		err = cmdWalk(args, os.Stdout)
	case "config", "cfg":
		err = cmdConfig(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terraintool - terrain streaming and LOD utility

Usage:
  terraintool <command> [options]

Commands:
  indices [-side N] [-cells K] <R>     Build the index topology for resolution R
  walk [options]                       Move a viewpoint through the grid and report
  config [-o file]                     Print or write the default configuration

Walk options:
  -config file     Load settings from a YAML config
  -from x,z        Start point (default 0,0)
  -to x,z          End point (default 1000,0)
  -steps N         Number of updates after the first (default 20)
  -v               Print every update
  -debug           Log grid activity to stderr

Examples:
  terraintool indices 4
  terraintool walk -to 5000,-2000 -steps 50 -v
  terraintool config -o config.yaml`)
}

func cmdIndices(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("indices", flag.ContinueOnError)
	side := fs.Uint("side", terrain.VerticesPerSide, "Vertices per patch side")
	cells := fs.Int("cells", 2, "Number of leading cells to print")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return errors.New("usage: terraintool indices [-side N] [-cells K] <R>")
	}

	resolution, err := strconv.ParseUint(fs.Arg(0), 10, 32)
	if err != nil {
		return fmt.Errorf("invalid resolution %q", fs.Arg(0))
	}

	indices, err := terrain.BuildIndices(uint32(resolution), uint32(*side))
	if err != nil {
		return err
	}

	perSide := (uint32(*side) - 1) / uint32(resolution)
	fmt.Fprintf(out, "Side:       %d vertices\n", *side)
	fmt.Fprintf(out, "Resolution: %d\n", resolution)
	fmt.Fprintf(out, "Cells:      %d x %d\n", perSide, perSide)
	fmt.Fprintf(out, "Triangles:  %d\n", len(indices)/3)
	fmt.Fprintf(out, "Indices:    %d (%.1f KB)\n", len(indices), float64(len(indices)*4)/1024)
	fmt.Fprintln(out)

	for c := 0; c < *cells && (c+1)*6 <= len(indices); c++ {
		fmt.Fprintf(out, "  cell %d: %v\n", c, indices[c*6:(c+1)*6])
	}
	return nil
}

func cmdWalk(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("walk", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config file")
	from := fs.String("from", "0,0", "Start point x,z")
	to := fs.String("to", "1000,0", "End point x,z")
	steps := fs.Int("steps", 20, "Number of updates after the first")
	verbose := fs.Bool("v", false, "Print every update")
	debug := fs.Bool("debug", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}

	if *debug {
		// The report owns stdout
		if err := logger.Setup(logger.Options{Level: "debug", Console: os.Stderr}); err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		defer logger.Sync()
	}

	start, err := parsePoint(*from)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}
	end, err := parsePoint(*to)
	if err != nil {
		return fmt.Errorf("-to: %w", err)
	}

	w, err := world.New(cfg, start)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintf(out, "Window:  %d x %d patches of %g units\n",
		cfg.Terrain.PatchesPerSide, cfg.Terrain.PatchesPerSide, cfg.Terrain.PatchSize)
	fmt.Fprintf(out, "LOD:     %s\n", describeLOD(cfg.Terrain.LOD))
	fmt.Fprintln(out)

	if *verbose {
		fmt.Fprintf(out, "%5s %10s %10s %12s %6s %6s %6s %6s  %s\n",
			"step", "x", "z", "center", "moves", "added", "evict", "lodchg", "std/coarse/vcoarse")
	}

	var totals world.WalkTotals
	var last terrain.UpdateStats
	for step := range w.Walk(world.Waypoints(start, end, *steps)) {
		s := step.Stats
		totals.Add(s)
		last = s
		if *verbose {
			fmt.Fprintf(out, "%5d %10.1f %10.1f %12s %6d %6d %6d %6d  %s\n",
				step.Index, step.Viewpoint.X, step.Viewpoint.Z, s.Center,
				s.Steps, s.Added, s.Evicted, s.LODChanges, formatCounts(s.LODCounts))
		}
	}

	if *verbose {
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Updates:      %d\n", totals.Updates)
	fmt.Fprintf(out, "Boundaries:   %d\n", totals.Steps)
	fmt.Fprintf(out, "Added:        %d (max %d per update)\n", totals.Added, totals.MaxAdded)
	fmt.Fprintf(out, "Evicted:      %d\n", totals.Evicted)
	fmt.Fprintf(out, "LOD changes:  %d\n", totals.LODChanges)
	fmt.Fprintf(out, "Final center: %s, %d patches, %s\n", w.Grid.Center(), w.Grid.Len(), formatCounts(last.LODCounts))
	return nil
}

func cmdConfig(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	output := fs.String("o", "", "Write to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *output != "" {
		if err := cfg.SaveTo(*output); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", *output)
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// parsePoint parses "x,z" into a ground-level point.
func parsePoint(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return math.Vec3{}, fmt.Errorf("expected x,z, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 32)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("x: %w", err)
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 32)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("z: %w", err)
	}
	return math.Vec3{X: float32(x), Z: float32(z)}, nil
}

func describeLOD(lod config.LODConfig) string {
	if !lod.Enabled {
		return "disabled (all Standard)"
	}
	return fmt.Sprintf("coarse from %g, very coarse from %g", lod.CoarseFrom, lod.VeryCoarseFrom)
}

func formatCounts(c [3]int) string {
	return fmt.Sprintf("%d/%d/%d", c[terrain.LODStandard], c[terrain.LODCoarse], c[terrain.LODVeryCoarse])
}
