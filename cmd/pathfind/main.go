// Command pathfind answers path queries on the configured maps without a
// window: one query from flags, or a batch from a YAML file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"tilepath/internal/config"
	"tilepath/internal/logging"
	"tilepath/internal/monitoring"
	"tilepath/internal/pathfinding"
	"tilepath/internal/planner"
	"tilepath/internal/tilemap"
)

// errNoPath marks a single query that completed without finding a path.
var errNoPath = errors.New("no path")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, errNoPath):
		os.Exit(2)
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	default:
		fmt.Fprintln(os.Stderr, "pathfind:", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	mapKey     string
	from, to   string
	batch      string
	heuristic  string
	origin     string
	cardinal   bool
	screen     bool
	quiet      bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("pathfind", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "config.yaml", "path to the configuration file")
	fs.StringVar(&o.mapKey, "map", "", "map key (default: the configured default map)")
	fs.StringVar(&o.from, "from", "", "start tile as col,row (default: the map's start marker)")
	fs.StringVar(&o.to, "to", "", "target tile as col,row (default: the map's goal marker)")
	fs.StringVar(&o.batch, "batch", "", "YAML file with a list of queries")
	fs.StringVar(&o.heuristic, "heuristic", "", "override the heuristic: manhattan, euclidean or chebyshev")
	fs.StringVar(&o.origin, "origin", "", "override the origin: bottom_left or top_left")
	fs.BoolVar(&o.cardinal, "cardinal", false, "forbid diagonal steps")
	fs.BoolVar(&o.screen, "screen", false, "print waypoints in screen units")
	fs.BoolVar(&o.quiet, "quiet", false, "do not draw the map")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return err
	}
	if o.heuristic != "" {
		cfg.Pathfinding.Heuristic = o.heuristic
	}
	if o.origin != "" {
		cfg.Pathfinding.Origin = o.origin
	}
	if o.cardinal {
		diagonal := false
		cfg.Pathfinding.AllowDiagonal = &diagonal
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var logger *slog.Logger
	if cfg.Logging.File != "" {
		var closer io.Closer
		logger, closer, err = logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		defer closer.Close()
	} else if logger, err = logging.NewWithWriter(cfg.Logging, stderr); err != nil {
		return err
	}

	catalog, err := tilemap.LoadCatalog(cfg, logger)
	if err != nil {
		return err
	}

	var batch *batchFile
	mapKey := o.mapKey
	if o.batch != "" {
		if batch, err = loadBatch(o.batch); err != nil {
			return err
		}
		if mapKey == "" {
			mapKey = batch.Map
		}
	}
	m := catalog.DefaultMap()
	if mapKey == "" {
		mapKey = catalog.Keys[catalog.Default]
	} else {
		var ok bool
		if m, ok = catalog.Lookup(mapKey); !ok {
			return fmt.Errorf("unknown map %q (have %s)", mapKey, strings.Join(catalog.Keys, ", "))
		}
	}

	opts, err := cfg.PathfinderOptions()
	if err != nil {
		return err
	}
	monitor := monitoring.NewSearchMonitor()
	opts = append(opts, pathfinding.WithLogger(logger), pathfinding.WithRecorder(monitor))
	pf, err := pathfinding.New(m.Size(), cfg.GetTileSize(), m, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "map: %s [%s] (%dx%d)\n", m.Name, mapKey, m.Size().Width, m.Size().Height)
	fmt.Fprintf(stdout, "policy: heuristic=%s diagonal=%t ignore_barriers=%t cross_borders=%t origin=%s\n",
		pf.Heuristic(), pf.DiagonalMovement(), pf.IgnoresDiagonalBarriers(), pf.CrossesBorders(), pf.Origin())

	if batch != nil {
		return runBatch(ctx, cfg, pf, batch, monitor, logger, stdout)
	}
	return runSingle(o, m, pf, stdout)
}

func runSingle(o options, m *tilemap.Map, pf *pathfinding.Pathfinder, stdout io.Writer) error {
	start, hasStart := m.Start()
	target, hasTarget := m.Goal()
	var err error
	if o.from != "" {
		if start, err = parseTile(o.from); err != nil {
			return fmt.Errorf("-from: %w", err)
		}
		hasStart = true
	}
	if o.to != "" {
		if target, err = parseTile(o.to); err != nil {
			return fmt.Errorf("-to: %w", err)
		}
		hasTarget = true
	}
	if !hasStart || !hasTarget {
		return fmt.Errorf("map %s has no start/goal markers; use -from and -to", m.Name)
	}

	r, err := pf.SearchTiles(start, target)
	if err != nil {
		return err
	}
	if !r.Found {
		fmt.Fprintf(stdout, "no path from %v to %v: %s (expanded %d)\n", start, target, r.Reason, r.Expanded)
		if !o.quiet {
			fmt.Fprint(stdout, m.Render(nil))
		}
		return errNoPath
	}

	fmt.Fprintf(stdout, "path from %v to %v: %d tiles, cost %d, expanded %d\n",
		start, target, len(r.Tiles), r.Cost, r.Expanded)
	if !o.quiet {
		fmt.Fprint(stdout, m.Render(r.Tiles))
	}
	if o.screen {
		parts := make([]string, len(r.Waypoints))
		for i, wp := range r.Waypoints {
			parts[i] = fmt.Sprintf("(%g,%g)", wp.X, wp.Y)
		}
		fmt.Fprintf(stdout, "waypoints: %s\n", strings.Join(parts, " "))
	}
	return nil
}

// batchFile is the YAML layout of -batch files.
type batchFile struct {
	Map     string       `yaml:"map"`
	Queries []batchQuery `yaml:"queries"`
}

type batchQuery struct {
	ID   string `yaml:"id"`
	From [2]int `yaml:"from"`
	To   [2]int `yaml:"to"`
}

func loadBatch(path string) (*batchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file %s: %w", path, err)
	}
	var batch batchFile
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", path, err)
	}
	if len(batch.Queries) == 0 {
		return nil, fmt.Errorf("batch file %s has no queries", path)
	}
	for i := range batch.Queries {
		if batch.Queries[i].ID == "" {
			batch.Queries[i].ID = strconv.Itoa(i + 1)
		}
	}
	return &batch, nil
}

func runBatch(ctx context.Context, cfg *config.Config, pf *pathfinding.Pathfinder, batch *batchFile,
	monitor *monitoring.SearchMonitor, logger *slog.Logger, stdout io.Writer) error {
	queries := make([]planner.Query, len(batch.Queries))
	for i, q := range batch.Queries {
		queries[i] = planner.Query{
			ID:     q.ID,
			Start:  pathfinding.GridCoord{Col: q.From[0], Row: q.From[1]},
			Target: pathfinding.GridCoord{Col: q.To[0], Row: q.To[1]},
		}
	}

	p := planner.NewPlanner(pf, planner.Options{
		Workers:   cfg.Planner.Workers,
		QueueSize: cfg.Planner.QueueSize,
		Logger:    logger,
	})
	defer p.Stop()

	outcomes, planErr := p.Plan(ctx, queries)

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFROM\tTO\tRESULT\tCOST\tTILES\tEXPANDED")
	for _, out := range outcomes {
		q := out.Query
		switch {
		case out.Err != nil:
			fmt.Fprintf(tw, "%s\t%v\t%v\terror: %v\t-\t-\t-\n", q.ID, q.Start, q.Target, out.Err)
		case out.Result.Found:
			fmt.Fprintf(tw, "%s\t%v\t%v\tfound\t%d\t%d\t%d\n", q.ID, q.Start, q.Target,
				out.Result.Cost, len(out.Result.Tiles), out.Result.Expanded)
		default:
			fmt.Fprintf(tw, "%s\t%v\t%v\t%s\t-\t-\t%d\n", q.ID, q.Start, q.Target,
				out.Result.Reason, out.Result.Expanded)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	snap := monitor.Snapshot()
	var noPath uint64
	for _, n := range snap.NoPath {
		noPath += n
	}
	fmt.Fprintf(stdout, "searches: %d  found: %d  no path: %d  errors: %d  avg expanded: %.1f  workers: %d\n",
		snap.Searches, snap.Found, noPath, snap.Failed, snap.AvgExpanded, p.Workers())
	return planErr
}

// parseTile reads a tile written as "col,row".
func parseTile(s string) (pathfinding.GridCoord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return pathfinding.GridCoord{}, fmt.Errorf("tile %q is not col,row", s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return pathfinding.GridCoord{}, fmt.Errorf("tile %q: bad column: %w", s, err)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return pathfinding.GridCoord{}, fmt.Errorf("tile %q: bad row: %w", s, err)
	}
	return pathfinding.GridCoord{Col: col, Row: row}, nil
}
