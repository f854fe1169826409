// Package config implements the ambient configuration layer: the built-in
// render-job preset the CLI applies its flags over, and a loader for a
// render-job YAML preset file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Job is the render-job configuration: resolution, samples, worker count,
// block size, and sampler kind.
type Job struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	SPP         int    `yaml:"spp"`
	Workers     int    `yaml:"workers"`
	BlockSize   int    `yaml:"blockSize"`
	SamplerKind string `yaml:"sampler"`
	Output      string `yaml:"output"`
}

// Default returns the built-in preset used when no YAML file is given.
func Default() Job {
	return Job{
		Width:       800,
		Height:      600,
		SPP:         16,
		Workers:     0,
		BlockSize:   32,
		SamplerKind: "random",
		Output:      "render",
	}
}

// Load reads a YAML preset file and merges it over Default(), leaving any
// field the file doesn't mention at its default. cmd/raytracer does not
// call Load: its flags are applied over Default() alone.
func Load(path string) (Job, error) {
	j := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &j); err != nil {
		return Job{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return j, nil
}
