package storage

import (
	"encoding/json"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/ryanmcf10/three-body-simulation/internal/sim"
)

type ExportBody struct {
	Mass  float64    `json:"mass"`
	Color [3]float64 `json:"color"`
}

type ExportData struct {
	Name       string             `json:"name"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Samples    int                `json:"samples"`
	Bodies     [3]ExportBody      `json:"bodies"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run with each state flattened to 18 values.
func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	data := ExportData{
		Name:       meta.Name,
		Integrator: meta.Integrator,
		Dt:         meta.Dt,
		Steps:      meta.Steps,
		Samples:    len(result.States),
		Times:      result.Times,
		States:     make([][]float64, len(result.States)),
		Metrics:    result.Metrics,
	}
	for i := range data.Bodies {
		data.Bodies[i] = ExportBody{Mass: result.Masses[i], Color: result.Colors[i]}
	}
	for i, y := range result.States {
		data.States[i] = y.Flatten()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes the states of a run in the states.csv layout.
func ExportCSV(w io.Writer, result *sim.Result) error {
	records := make([]*StateRecord, len(result.States))
	for i, y := range result.States {
		records[i] = newRecord(result.Times[i], y)
	}
	return gocsv.Marshal(&records, w)
}
