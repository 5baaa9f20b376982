package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/scenelab/internal/catalog"
	"github.com/san-kum/scenelab/internal/engine"
	"github.com/san-kum/scenelab/internal/experiment"
	"github.com/san-kum/scenelab/internal/export"
	"github.com/san-kum/scenelab/internal/physstate"
	"github.com/san-kum/scenelab/internal/storage"
	"github.com/san-kum/scenelab/internal/tui"
)

const (
	worldWidth  = 800.0
	worldHeight = 600.0
)

var (
	dataDir     string
	catalogFile string
	duration    float64
	gravity     float64
	timeScale   float64
	selectIndex int
	series      string
	svgPath     string
	outPath     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scenelab",
		Short: "rigid-body scene sandbox with force fields and live readouts",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".scenelab", "data directory")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "extra catalog file (yaml)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run an experiment headless and record samples",
		Args:  cobra.ExactArgs(1),
		RunE:  runExperiment,
	}
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "duration in seconds")
	runCmd.Flags().Float64Var(&gravity, "gravity", 1.0, "gravity scale")
	runCmd.Flags().Float64Var(&timeScale, "timescale", 1.0, "time scale")
	runCmd.Flags().IntVar(&selectIndex, "select", 0, "placement index to track")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "watch an experiment in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := buildCatalog()
			if err != nil {
				return err
			}
			preset := ""
			if len(args) > 0 {
				preset = args[0]
			}
			session := experiment.NewSession(cat, worldWidth, worldHeight)
			return tui.Run(session, worldWidth, worldHeight, preset)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list presets and object definitions",
		RunE:  listCatalog,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "speed", "series: speed, ke, pe, total, x, y")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON, or the trajectory as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgPath, "svg", "", "write the trajectory to this SVG file instead")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset...]",
		Short: "run presets in parallel and record every run",
		RunE:  sweepPresets,
	}
	sweepCmd.Flags().Float64Var(&duration, "time", 10.0, "duration in seconds")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [preset]",
		Short: "simulate a preset and render the final scene as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotPreset,
	}
	snapshotCmd.Flags().Float64Var(&duration, "time", 2.0, "seconds to simulate before the snapshot")
	snapshotCmd.Flags().StringVar(&outPath, "out", "scene.svg", "output file")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, runsCmd, plotCmd, exportCmd, sweepCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildCatalog() (*catalog.Catalog, error) {
	cat := catalog.Builtin()
	if catalogFile != "" {
		if err := cat.LoadFile(catalogFile); err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
	}
	return cat, nil
}

func runExperiment(cmd *cobra.Command, args []string) error {
	presetID := args[0]

	cat, err := buildCatalog()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	session := experiment.NewSession(cat, worldWidth, worldHeight)
	session.SetGravity(gravity)
	session.SetTimeScale(timeScale)
	// a long window so the whole run survives for plotting
	buffer := physstate.NewGraphBuffer(physstate.ExtendedRetention)

	report, err := session.LoadExperiment(presetID)
	if err != nil {
		return err
	}
	for _, skip := range report.SkippedPlacements {
		fmt.Fprintf(os.Stderr, "warning: skipped placement: %v\n", skip)
	}
	for _, skip := range report.SkippedConstraints {
		fmt.Fprintf(os.Stderr, "warning: skipped constraint: %v\n", skip)
	}

	if id, ok := report.Created[selectIndex]; ok {
		session.Select(id)
	} else if objects := session.Registry().Objects(); len(objects) > 0 {
		session.Select(objects[0].ID)
	}

	ticks := int(duration * engine.TicksPerSecond)
	for i := 0; i < ticks; i++ {
		session.Tick()
		if state, ok := session.SelectedState(); ok {
			buffer.Push(physstate.SampleOf(session.World().Time(), state))
		}
	}

	meta := storage.RunMetadata{
		Preset:    presetID,
		Duration:  duration,
		Gravity:   session.World().Gravity(),
		TimeScale: session.World().TimeScale(),
		Objects:   session.Registry().Count(),
	}
	if state, ok := session.SelectedState(); ok {
		meta.Final = map[string]float64{
			"speed":            state.Speed,
			"kinetic_energy":   state.KineticEnergy,
			"potential_energy": state.PotentialEnergy,
			"total_energy":     state.TotalEnergy,
		}
	}

	runID, err := st.Save(meta, buffer.Samples())
	if err != nil {
		return err
	}

	fmt.Printf("run saved: %s\n", runID)
	printSummary(meta)

	speeds := buffer.Series(func(s physstate.Sample) float64 { return s.Speed })
	if len(speeds) >= 2 {
		fmt.Println("\nspeed:")
		fmt.Println(asciigraph.Plot(speeds, asciigraph.Height(10), asciigraph.Width(70)))
	}
	return nil
}

func printSummary(meta storage.RunMetadata) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "preset\t%s\n", meta.Preset)
	fmt.Fprintf(w, "duration\t%.1fs\n", meta.Duration)
	fmt.Fprintf(w, "objects\t%d\n", meta.Objects)
	for k, v := range meta.Final {
		fmt.Fprintf(w, "%s\t%.2f\n", k, v)
	}
	w.Flush()
}

func listCatalog(cmd *cobra.Command, args []string) error {
	cat, err := buildCatalog()
	if err != nil {
		return err
	}

	fmt.Println("presets:")
	for _, id := range cat.ListPresets() {
		p, _ := cat.ResolvePreset(id)
		fmt.Printf("  %-20s %s\n", id, p.Description)
	}
	fmt.Println("\ndefinitions:")
	for _, id := range cat.ListDefinitions() {
		d, _ := cat.ResolveDefinition(id)
		emitter := ""
		if d.Emitter != nil {
			emitter = fmt.Sprintf(" (emitter: %s)", d.Emitter.Type)
		}
		fmt.Printf("  %-20s %s %s%s\n", id, d.Shape.Kind, d.Label, emitter)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tDURATION\tOBJECTS\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.1fs\t%d\t%s\n",
			r.ID, r.Preset, r.Duration, r.Objects, r.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("run %s has no samples", args[0])
	}

	extract, ok := map[string]func(physstate.Sample) float64{
		"speed": func(s physstate.Sample) float64 { return s.Speed },
		"ke":    func(s physstate.Sample) float64 { return s.KineticEnergy },
		"pe":    func(s physstate.Sample) float64 { return s.PotentialEnergy },
		"total": func(s physstate.Sample) float64 { return s.TotalEnergy },
		"x":     func(s physstate.Sample) float64 { return s.Position.X },
		"y":     func(s physstate.Sample) float64 { return s.Position.Y },
	}[series]
	if !ok {
		return fmt.Errorf("unknown series: %s", series)
	}

	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = extract(s)
	}
	fmt.Printf("%s (%s)\n", args[0], series)
	fmt.Println(asciigraph.Plot(values, asciigraph.Height(14), asciigraph.Width(76)))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	if svgPath != "" {
		samples, err := st.LoadSamples(args[0])
		if err != nil {
			return err
		}
		doc := export.TrajectoryToSVG(samples, 800, 600, "#00ccff")
		if doc == "" {
			return fmt.Errorf("run %s has too few samples to plot", args[0])
		}
		if err := os.WriteFile(svgPath, []byte(doc), 0644); err != nil {
			return err
		}
		fmt.Printf("trajectory written: %s\n", svgPath)
		return nil
	}

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func sweepPresets(cmd *cobra.Command, args []string) error {
	cat, err := buildCatalog()
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	presets := args
	if len(presets) == 0 {
		presets = cat.ListPresets()
	}

	sweep := experiment.NewSweep(cat, worldWidth, worldHeight)
	results := sweep.Run(cmd.Context(), presets, duration)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tRUN\tFINAL SPEED")
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\n", res.Preset, res.Err)
			continue
		}
		meta := storage.RunMetadata{
			Preset:    res.Preset,
			Duration:  duration,
			Gravity:   res.Gravity,
			TimeScale: res.TimeScale,
			Objects:   len(res.Report.Created),
		}
		speed := 0.0
		if res.Final != nil {
			speed = res.Final.Speed
			meta.Final = map[string]float64{
				"speed":            res.Final.Speed,
				"kinetic_energy":   res.Final.KineticEnergy,
				"potential_energy": res.Final.PotentialEnergy,
				"total_energy":     res.Final.TotalEnergy,
			}
		}
		runID, err := st.Save(meta, res.Samples)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\n", res.Preset, runID, speed)
	}
	return w.Flush()
}

func snapshotPreset(cmd *cobra.Command, args []string) error {
	cat, err := buildCatalog()
	if err != nil {
		return err
	}

	session := experiment.NewSession(cat, worldWidth, worldHeight)
	if _, err := session.LoadExperiment(args[0]); err != nil {
		return err
	}
	if objects := session.Registry().Objects(); len(objects) > 0 {
		session.Select(objects[0].ID)
	}

	ticks := int(duration * engine.TicksPerSecond)
	for i := 0; i < ticks; i++ {
		session.Tick()
	}

	doc := export.SceneToSVG(session.World(), session.OverlayFrame(), worldWidth, worldHeight)
	if err := os.WriteFile(outPath, []byte(doc), 0644); err != nil {
		return err
	}
	fmt.Printf("scene written: %s\n", outPath)
	return nil
}
