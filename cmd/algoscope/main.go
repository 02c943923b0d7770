package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/guptarohit/asciigraph"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/san-kum/algoscope/internal/compare"
	"github.com/san-kum/algoscope/internal/config"
	"github.com/san-kum/algoscope/internal/export"
	"github.com/san-kum/algoscope/internal/registry"
	"github.com/san-kum/algoscope/internal/render"
	"github.com/san-kum/algoscope/internal/storage"
	"github.com/san-kum/algoscope/internal/structures"
	"github.com/san-kum/algoscope/internal/tester"
	"github.com/san-kum/algoscope/internal/trace"
	"github.com/san-kum/algoscope/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	values     string
	target     int
	edges      string
	vertices   int
	start      int
	speed      float64
	noSave     bool
	playAfter  bool
	// export options
	format     string
	outPath    string
	frameIndex int
	scale      float64
	// tester options
	implName  string
	implCmd   string
	timeout   time.Duration
	stepLimit int
	// compare/stats options
	family string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "algoscope",
		Short: "algorithm execution recorder and playback lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "apply a named preset")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "trace one algorithm run",
		Args:  cobra.ExactArgs(1),
		RunE:  runAlgorithm,
	}
	runCmd.Flags().StringVar(&values, "values", "64,34,25,12,22,11,90", "comma-separated input values")
	runCmd.Flags().IntVar(&target, "target", 22, "search/lookup target")
	runCmd.Flags().StringVar(&edges, "edges", "0-1,0-2,1-3,2-4,3-5", "graph edges as a-b pairs")
	runCmd.Flags().IntVar(&vertices, "vertices", 0, "vertex count (0 = infer from edges)")
	runCmd.Flags().IntVar(&start, "start", 0, "traversal start vertex")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")
	runCmd.Flags().BoolVar(&playAfter, "play", false, "open the player after tracing")
	runCmd.Flags().Float64Var(&speed, "speed", 0, "playback speed in steps per second")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list available algorithms",
		RunE:  listAlgorithms,
	}
	listCmd.Flags().StringVar(&family, "family", "", "filter by family")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	playCmd := &cobra.Command{
		Use:   "play [run_id]",
		Short: "replay a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  playRun,
	}
	playCmd.Flags().Float64Var(&speed, "speed", 0, "playback speed in steps per second")

	compareCmd := &cobra.Command{
		Use:   "compare [algorithm] [algorithm] ...",
		Short: "race algorithms on the same input",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareAlgorithms,
	}
	compareCmd.Flags().StringVar(&values, "values", "64,34,25,12,22,11,90", "comma-separated input values")
	compareCmd.Flags().IntVar(&target, "target", 22, "search/lookup target")
	compareCmd.Flags().Float64Var(&speed, "speed", 0, "playback speed in steps per second")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as svg, html, gif, live page or chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "", "svg, html, gif, live or chart (default from config)")
	exportCmd.Flags().StringVar(&outPath, "out", "", "output path (default <run_id>.<format>)")
	exportCmd.Flags().IntVar(&frameIndex, "frame", 0, "step to render (svg)")
	exportCmd.Flags().Float64Var(&speed, "speed", 0, "animation steps per second")
	exportCmd.Flags().Float64Var(&scale, "scale", 0, "dot scale (svg/gif)")

	statsCmd := &cobra.Command{
		Use:   "stats [run_id]",
		Short: "plot counter growth for a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  statsRun,
	}

	testCmd := &cobra.Command{
		Use:   "test [algorithm]",
		Short: "vet a demo submission against a reference algorithm",
		Args:  cobra.ExactArgs(1),
		RunE:  testSubmission,
	}
	testCmd.Flags().StringVar(&implName, "impl", "correct", "demo submission: correct, lazy or panic")
	testCmd.Flags().StringVar(&implCmd, "cmd", "", "external submission command (input JSON on stdin, trace JSON on stdout)")
	testCmd.Flags().StringVar(&values, "values", "5,2,8,1,9", "comma-separated input values")
	testCmd.Flags().DurationVar(&timeout, "timeout", 0, "submission time budget")
	testCmd.Flags().IntVar(&stepLimit, "step-limit", 0, "submission step cap")

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return storage.New(cfg.DataDir).Delete(args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.PresetNames() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, runsCmd, playCmd, compareCmd, exportCmd, statsCmd, testCmd, deleteCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, the config file, a preset, and finally any
// changed CLI flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		if err := config.ApplyPreset(cfg, preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.PresetNames())
		}
	}

	if cmd.Flags().Changed("data") {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("speed") && speed > 0 {
		cfg.Speed = speed
	}

	return cfg, nil
}

func buildInput(d registry.Descriptor) (registry.Input, error) {
	in := registry.Input{Target: target, Start: start}

	vals, err := parseInts(values)
	if err != nil {
		return in, err
	}
	in.Values = vals

	if d.Family == registry.FamilyGraph {
		es, err := parseEdges(edges)
		if err != nil {
			return in, err
		}
		in.Edges = es
		in.Vertices = vertices
		if in.Vertices == 0 {
			for _, e := range es {
				in.Vertices = max(in.Vertices, max(e[0], e[1])+1)
			}
		}
	}

	return in, nil
}

func runAlgorithm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	reg := registry.New()
	d, err := reg.Get(args[0])
	if err != nil {
		return err
	}

	in, err := buildInput(d)
	if err != nil {
		return err
	}

	started := time.Now()
	tr, err := d.Run(context.Background(), in)
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	final := tr.FinalCounters()
	color.New(color.FgGreen).Printf("traced %s in %v\n", d.Name, elapsed)
	fmt.Printf("steps: %d\n", tr.Len())
	fmt.Printf("comparisons: %d  swaps: %d  touches: %d\n",
		final.Comparisons, final.Swaps, final.Touches)

	if !noSave {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(d.Name, string(d.Family), in, tr)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", id)
	}

	if playAfter {
		return tui.RunPlayback(d.Name, tr, cfg.Speed)
	}
	return nil
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	reg := registry.New()

	ds := reg.Descriptors()
	if family != "" {
		ds = reg.Family(registry.Family(family))
		if len(ds) == 0 {
			return fmt.Errorf("unknown family: %s", family)
		}
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(os.Stdout)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"NAME", "FAMILY", "COMPLEXITY", "SUMMARY"})
	for _, d := range ds {
		tbl.AppendRow(table.Row{d.Name, d.Family, d.Complexity, d.Summary})
	}
	tbl.Render()
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(os.Stdout)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"ID", "ALGORITHM", "FAMILY", "STEPS", "CMP", "SWP", "AGE", "SIZE"})
	for _, run := range runs {
		tbl.AppendRow(table.Row{
			run.ID, run.Algorithm, run.Family, run.Steps,
			run.Counters.Comparisons, run.Counters.Swaps,
			humanize.Time(run.Timestamp),
			humanize.Bytes(uint64(run.Bytes)),
		})
	}
	tbl.Render()
	return nil
}

func playRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	meta, err := st.LoadMeta(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	return tui.RunPlayback(meta.Algorithm, tr, cfg.Speed)
}

func compareAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	reg := registry.New()

	// All compared algorithms must share one input shape, so the first
	// descriptor decides how to build it.
	first, err := reg.Get(args[0])
	if err != nil {
		return err
	}
	in, err := buildInput(first)
	if err != nil {
		return err
	}

	results, err := registry.NewBatch(reg, args...).Run(context.Background(), in)
	if err != nil {
		return err
	}

	session := compare.NewSession()
	for _, res := range results {
		session.Add(res.Name, res.Trace)
	}

	return tui.RunCompare(session, cfg.Speed)
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if format == "" {
		format = cfg.Export.Format
	}
	if scale <= 0 {
		scale = cfg.Export.Scale
	}
	if outPath == "" {
		outPath = args[0] + "." + format
	}

	st := storage.New(cfg.DataDir)
	meta, err := st.LoadMeta(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	r := render.NewCanvasRenderer(cfg.Canvas.Width, cfg.Canvas.Height)
	opts := export.Options{
		Title:      meta.Algorithm,
		FrameIndex: frameIndex,
		Speed:      cfg.Speed,
		Scale:      scale,
		Theme:      cfg.Theme,
	}
	if err := export.Export(tr, r, export.Format(format), outPath, opts); err != nil {
		return err
	}

	color.New(color.FgGreen).Printf("wrote %s\n", outPath)
	return nil
}

func statsRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	meta, err := st.LoadMeta(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("steps: %d\n\n", tr.Len())

	series := map[string][]float64{
		"comparisons": make([]float64, tr.Len()),
		"swaps":       make([]float64, tr.Len()),
		"touches":     make([]float64, tr.Len()),
	}
	for i := 0; i < tr.Len(); i++ {
		step, _ := tr.At(i)
		series["comparisons"][i] = float64(step.Counters.Comparisons)
		series["swaps"][i] = float64(step.Counters.Swaps)
		series["touches"][i] = float64(step.Counters.Touches)
	}

	for _, name := range []string{"comparisons", "swaps", "touches"} {
		graph := asciigraph.Plot(series[name],
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func testSubmission(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	vals, err := parseInts(values)
	if err != nil {
		return err
	}

	var impl registry.Runner
	if implCmd != "" {
		parts := strings.Fields(implCmd)
		impl = tester.CommandRunner(parts[0], parts[1:]...)
	} else {
		impl, err = demoImpl(implName)
		if err != nil {
			return err
		}
	}

	if timeout <= 0 {
		timeout = time.Duration(cfg.Tester.TimeoutSeconds) * time.Second
	}
	if stepLimit <= 0 {
		stepLimit = cfg.Tester.StepLimit
	}

	report := tester.New(registry.New()).Run(tester.Submission{
		Reference: args[0],
		Impl:      impl,
		Input:     registry.Input{Values: vals, Target: target},
		Timeout:   timeout,
		StepLimit: stepLimit,
	})

	if !report.Success {
		color.New(color.FgRed).Printf("submission faulted: %s\n", report.Fault)
		return nil
	}
	if report.Correct {
		color.New(color.FgGreen).Println("submission correct")
	} else {
		color.New(color.FgRed).Println("submission incorrect")
	}
	if report.Divergence >= 0 {
		color.New(color.FgYellow).Printf("diverges from reference at step %d\n", report.Divergence)
		if step, err := report.Reference.At(report.Divergence); err == nil {
			fmt.Printf("reference: %s\n", describeStep(step))
		}
		if step, err := report.Trace.At(report.Divergence); err == nil {
			fmt.Printf("submission: %s\n", describeStep(step))
		}
	}
	fmt.Printf("submission steps: %d  reference steps: %d\n",
		report.Trace.Len(), report.Reference.Len())
	return nil
}

// demoImpl returns a canned submission so the vetting pipeline can be
// exercised without compiling external code.
func demoImpl(name string) (registry.Runner, error) {
	switch name {
	case "correct":
		return func(ctx context.Context, in registry.Input) (*trace.Trace, error) {
			a := structures.NewArray(in.Values)
			a.Tracer().SetLimit(in.StepLimit)
			a.Tracer().Begin()
			// insertion sort: a correct submission need not mirror the
			// reference's moves, only its final state
			for i := 1; i < a.Len(); i++ {
				for j := i; j > 0; j-- {
					greater, err := a.Greater(j-1, j)
					if err != nil {
						return nil, err
					}
					if !greater {
						break
					}
					if err := a.Swap(j-1, j); err != nil {
						return nil, err
					}
				}
			}
			if err := a.Done("sorted"); err != nil {
				return nil, err
			}
			return a.Tracer().Finish()
		}, nil
	case "lazy":
		return func(ctx context.Context, in registry.Input) (*trace.Trace, error) {
			a := structures.NewArray(in.Values)
			a.Tracer().SetLimit(in.StepLimit)
			a.Tracer().Begin()
			if err := a.Done("nothing to do"); err != nil {
				return nil, err
			}
			return a.Tracer().Finish()
		}, nil
	case "panic":
		return func(ctx context.Context, in registry.Input) (*trace.Trace, error) {
			var empty []int
			_ = empty[3]
			return nil, nil
		}, nil
	}
	return nil, fmt.Errorf("unknown demo submission: %s (correct, lazy, panic)", name)
}

func describeStep(step trace.Step) string {
	s := step.Op.String()
	if len(step.Highlights) > 0 {
		s += fmt.Sprintf(" %v", step.Highlights)
	}
	if step.Snap.Kind == trace.KindArray {
		s += fmt.Sprintf(" %v", step.Snap.Array)
	}
	if step.Annotation != "" {
		s += " (" + step.Annotation + ")"
	}
	return s
}

func parseInts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	vals := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", p, err)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func parseEdges(s string) ([][2]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	es := make([][2]int, 0, len(parts))
	for _, p := range parts {
		ab := strings.Split(strings.TrimSpace(p), "-")
		if len(ab) != 2 {
			return nil, fmt.Errorf("bad edge %q: want a-b", p)
		}
		a, err := strconv.Atoi(ab[0])
		if err != nil {
			return nil, fmt.Errorf("bad edge %q: %w", p, err)
		}
		b, err := strconv.Atoi(ab[1])
		if err != nil {
			return nil, fmt.Errorf("bad edge %q: %w", p, err)
		}
		es = append(es, [2]int{a, b})
	}
	return es, nil
}
