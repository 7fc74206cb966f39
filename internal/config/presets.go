package config

import "sort"

var rgb = func(r, g, b uint8) *[3]uint8 { return &[3]uint8{r, g, b} }

// Presets are named body layouts in placement-layer units.
var Presets = map[string]*Config{
	"triangle": {
		Dt: 0.1, Rate: 100, Steps: 2000,
		Bodies: []BodyConfig{
			{Position: [2]float64{400, 250}, Size: 1, Velocity: [2]float64{-1.2, 0}, Color: rgb(230, 80, 80)},
			{Position: [2]float64{530, 475}, Size: 1, Velocity: [2]float64{0.6, -1.04}, Color: rgb(80, 200, 120)},
			{Position: [2]float64{270, 475}, Size: 1, Velocity: [2]float64{0.6, 1.04}, Color: rgb(90, 140, 240)},
		},
	},
	"binary": {
		Dt: 0.1, Rate: 100, Steps: 3000,
		Bodies: []BodyConfig{
			{Position: [2]float64{360, 400}, Size: 1, Velocity: [2]float64{0, 1.1}, Color: rgb(250, 200, 60)},
			{Position: [2]float64{440, 400}, Size: 1, Velocity: [2]float64{0, -1.1}, Color: rgb(240, 120, 40)},
			{Position: [2]float64{400, 120}, Size: 0.1, Velocity: [2]float64{0.9, 0}, Color: rgb(170, 170, 255)},
		},
	},
	"sling": {
		Dt: 0.1, Rate: 100, Steps: 1500,
		Bodies: []BodyConfig{
			{Position: [2]float64{400, 400}, Size: 1, Velocity: [2]float64{0, 0}, Color: rgb(255, 230, 120)},
			{Position: [2]float64{250, 400}, Size: 0.3, Velocity: [2]float64{0, 1.6}, Color: rgb(120, 220, 255)},
			{Position: [2]float64{650, 300}, Size: 0.2, Velocity: [2]float64{-0.8, 0.3}, Color: rgb(255, 120, 200)},
		},
	},
	"collision": {
		Dt: 0.1, Rate: 100, Steps: 100,
		Bodies: []BodyConfig{
			{Position: [2]float64{400, 400}, Size: 0.5, Velocity: [2]float64{0, 0}, Color: rgb(255, 80, 80)},
			{Position: [2]float64{400, 400}, Size: 0.5, Velocity: [2]float64{0, 0}, Color: rgb(80, 255, 80)},
			{Position: [2]float64{600, 400}, Size: 0.5, Velocity: [2]float64{0, 0}, Color: rgb(80, 80, 255)},
		},
	},
}

// GetPreset returns a full configuration built from a named preset, or
// nil when the name is unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Dt = p.Dt
	cfg.Rate = p.Rate
	cfg.Steps = p.Steps
	cfg.Bodies = clone(p.Bodies)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
