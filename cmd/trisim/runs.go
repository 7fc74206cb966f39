package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/ryanmcf10/three-body-simulation/internal/analysis"
	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"github.com/ryanmcf10/three-body-simulation/internal/export"
	"github.com/ryanmcf10/three-body-simulation/internal/integrators"
	"github.com/ryanmcf10/three-body-simulation/internal/physics"
	"github.com/ryanmcf10/three-body-simulation/internal/storage"
	"github.com/ryanmcf10/three-body-simulation/internal/units"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSTEPS\tSAMPLES\tDT\tINTEG\tDRIFT\tSTATUS")

	for _, run := range runs {
		status := "ok"
		if run.Error != "" {
			status = "stopped"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.4f\t%s\t%.2e\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Samples,
			run.Dt,
			run.Integrator,
			run.Metrics["energy_drift"],
			status,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}
	if len(result.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	model, err := physics.NewThreeBody(meta.Masses)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s  integrator: %s\n", meta.Name, meta.Integrator)
	fmt.Printf("samples: %d\n\n", len(result.States))

	energy := make([]float64, len(result.States))
	closest := make([]float64, len(result.States))
	for i, y := range result.States {
		energy[i] = model.Energy(y)
		sep := model.Separations(y)
		closest[i] = floats.Min(sep[:])
	}

	plot(energy, "total energy")
	plot(closest, "closest separation")
	for i := 0; i < dynamo.NumBodies; i++ {
		xs := make([]float64, len(result.States))
		for k, y := range result.States {
			xs[k] = y.Position(i).X
		}
		plot(xs, fmt.Sprintf("body %d x", i+1))
	}

	mean, std := stat.MeanStdDev(energy, nil)
	fmt.Printf("energy mean=%.6f std=%.3e range=[%.6f, %.6f]\n", mean, std, floats.Min(energy), floats.Max(energy))
	fmt.Printf("closest approach %.4f\n", floats.Min(closest))
	return nil
}

func plot(data []float64, caption string) {
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()
}

// output opens the --out file, or stdout when none is given.
func output(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	w, err := output(outPath)
	if err != nil {
		return err
	}
	defer w.Close()
	return storage.ExportCSV(w, result)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	w, err := output(outPath)
	if err != nil {
		return err
	}
	defer w.Close()
	return storage.ExportJSON(w, meta, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	_, result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	var svg string
	if canvasMode {
		// One braille cell is 2x4 sub-pixels drawn 4 px apart.
		svg = export.FrameToSVG(result, units.Default(), svgWidth/8, svgHeight/16, 4)
	} else {
		svg = export.TrajectoriesToSVG(result, svgWidth, svgHeight)
	}
	if svg == "" {
		return fmt.Errorf("run %s has too few states to draw", runID)
	}

	path := outPath
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if len(result.States) == 0 {
		return fmt.Errorf("no data to analyze")
	}

	model, err := physics.NewThreeBody(meta.Masses)
	if err != nil {
		return err
	}
	integ, err := integrators.Get(meta.Integrator)
	if err != nil {
		return err
	}

	n := analyzeSteps
	if n == 0 {
		n = meta.Steps
	}
	lambda, err := analysis.LyapunovExponent(model, integ, result.States[0], meta.Dt, n, perturbation)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("lyapunov exponent: %.6f over %d steps\n", lambda, n)
	if lambda > 0 {
		fmt.Printf("divergence time: %.2f\n", 1/lambda)
	}
	return nil
}
