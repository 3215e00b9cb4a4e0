package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravflow/internal/config"
	"github.com/san-kum/gravflow/internal/integrators"
	"github.com/san-kum/gravflow/internal/metrics"
	"github.com/san-kum/gravflow/internal/nbody"
	"github.com/san-kum/gravflow/internal/ode"
	"github.com/san-kum/gravflow/internal/storage"
	"github.com/san-kum/gravflow/internal/trajectory"
	"github.com/san-kum/gravflow/internal/viz"
)

var (
	dataDir    string
	configFile string
	dt         float64
	softening  float64
	integrator string
	// Plot axes
	plotBody  int
	plotCoord string
	// Live view
	frameRate int
	speed     float64
)

var coordIndex = map[string]int{
	"x": 0, "y": 1, "z": 2, "vx": 3, "vy": 4, "vz": 5,
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravflow",
		Short: "n-body trajectory evaluation",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravflow", "data directory")

	evaluateCmd := &cobra.Command{
		Use:   "evaluate [preset]",
		Short: "evaluate a scenario and store the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEvaluate,
	}
	evaluateCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	evaluateCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "integration substep")
	evaluateCmd.Flags().Float64Var(&softening, "softening", config.DefaultSoftening, "plummer softening length")
	evaluateCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				scn := config.GetPreset(name)
				fmt.Printf("%-14s %d bodies, %d output times\n", name, len(scn.Masses), len(scn.Times.Grid()))
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  runList,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one coordinate of one body over time",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().IntVar(&plotBody, "body", 1, "body index")
	plotCmd.Flags().StringVar(&plotCoord, "coord", "x", "coordinate (x y z vx vy vz)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's trajectory as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "watch a scenario integrate in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().Float64Var(&speed, "speed", 1.0, "simulated time per wall second")

	rootCmd.AddCommand(evaluateCmd, presetsCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadScenario(cmd *cobra.Command, args []string) (*config.Scenario, error) {
	var scn *config.Scenario
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario: %w", err)
		}
		scn = loaded
	case len(args) > 0:
		scn = config.GetPreset(args[0])
		if scn == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	default:
		scn = config.Default()
	}

	// CLI flags override scenario values.
	if cmd.Flags().Changed("dt") {
		scn.Dt = dt
	}
	if cmd.Flags().Changed("softening") {
		scn.Softening = softening
	}
	if cmd.Flags().Changed("integrator") {
		scn.Integrator = integrator
	}

	return scn, scn.Validate()
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	scn, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	if _, err := integrators.New(scn.Integrator); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	eval := trajectory.NewEvaluator()
	eval.Dt = scn.Dt
	eval.Softening = scn.Softening
	eval.Validate = scn.CheckStates
	eval.NewIntegrator = func() ode.Integrator {
		integ, _ := integrators.New(scn.Integrator)
		return integ
	}

	times := scn.Times.Grid()

	fmt.Printf("evaluating %s (%d bodies, %d times)...\n", scn.Name, len(scn.Masses), len(times))
	start := time.Now()

	result, err := eval.Evaluate(context.Background(), scn.Masses, scn.Coords(), times)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	diagnostics, err := runDiagnostics(scn, result, times)
	if err != nil {
		return err
	}

	runID, err := st.Save(storage.RunMetadata{
		Scenario:    scn.Name,
		Integrator:  scn.Integrator,
		Dt:          scn.Dt,
		Softening:   scn.Softening,
		Masses:      scn.Masses,
		Diagnostics: diagnostics,
		Elapsed:     elapsed,
	}, times, result)
	if err != nil {
		return err
	}

	tt, n, c := result.Shape()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("result shape: (%d, %d, %d)\n", tt, n, c)
	if len(diagnostics) > 0 {
		fmt.Println("\ndiagnostics:")
		for _, name := range []string{"energy_drift", "momentum_drift", "angular_momentum_drift"} {
			fmt.Printf("  %s: %.3e\n", name, diagnostics[name])
		}
	}

	return nil
}

func runDiagnostics(scn *config.Scenario, result *trajectory.Tensor, times []float64) (map[string]float64, error) {
	if len(times) == 0 {
		return nil, nil
	}

	simMasses, g, err := trajectory.SimulationMasses(scn.Masses)
	if err != nil {
		return nil, err
	}

	ms := []metrics.Metric{
		metrics.NewEnergyDrift(g, scn.Softening),
		metrics.NewMomentumDrift(),
		metrics.NewAngularMomentumDrift(),
	}

	for ti := range times {
		parts := metrics.Bodies(simMasses, result.Row(ti))
		for _, m := range ms {
			m.Observe(parts, times[ti])
		}
	}

	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out, nil
}

func runList(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tBODIES\tTIMES\tINTEGRATOR\tENERGY DRIFT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%.2e\n",
			run.ID, run.Scenario, run.Bodies, run.Steps, run.Integrator,
			run.Diagnostics["energy_drift"])
	}
	return w.Flush()
}

func runPlot(cmd *cobra.Command, args []string) error {
	comp, ok := coordIndex[plotCoord]
	if !ok {
		return fmt.Errorf("unknown coordinate: %s (want x y z vx vy vz)", plotCoord)
	}

	st := storage.New(dataDir)
	times, rows, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("run %s has no output times", args[0])
	}

	n := len(rows[0]) / trajectory.StateComponents
	if plotBody < 0 || plotBody >= n {
		return fmt.Errorf("body index %d out of range [0, %d)", plotBody, n)
	}

	series := make([]float64, len(rows))
	for ti, row := range rows {
		series[ti] = row[plotBody*trajectory.StateComponents+comp]
	}

	caption := fmt.Sprintf("body %d %s, t=%g..%g", plotBody, plotCoord, times[0], times[len(times)-1])
	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(18),
		asciigraph.Width(90),
		asciigraph.Caption(caption)))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	scn, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	simMasses, g, err := trajectory.SimulationMasses(scn.Masses)
	if err != nil {
		return err
	}
	integ, err := integrators.New(scn.Integrator)
	if err != nil {
		return err
	}

	sim := nbody.New()
	sim.Dt = scn.Dt
	sim.Softening = scn.Softening
	sim.Validate = scn.CheckStates
	sim.SetG(g)
	sim.SetIntegrator(integ)
	for i, row := range scn.Coords() {
		sim.Add(nbody.Particle{
			M: simMasses[i],
			X: row[0], Y: row[1], Z: row[2],
			VX: row[3], VY: row[4], VZ: row[5],
		})
	}

	return viz.Run(sim, scn.Name, speed/float64(frameRate), frameRate)
}
