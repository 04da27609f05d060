package starfield

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrInvalidLayer is returned when a layer spec is out of range.
var ErrInvalidLayer = errors.New("invalid layer")

// LayerSpec holds the shared parameters of one layer.
type LayerSpec struct {
	Density float64 `json:"density" toml:"density"`
	Size    float64 `json:"size" toml:"size"`
	Opacity float64 `json:"opacity" toml:"opacity"`
}

// Layer is a generated set of stars rendered with the same opacity.
type Layer struct {
	LayerSpec
	Stars []Star `json:"stars"`
}

// DefaultLayers returns the near, mid and far layers in drawing order.
func DefaultLayers() []LayerSpec {
	return []LayerSpec{
		{Density: 0.4, Size: 2.0, Opacity: 0.9},
		{Density: 0.2, Size: 2.8, Opacity: 0.75},
		{Density: 0.1, Size: 3.2, Opacity: 0.65},
	}
}

// Validate reports whether the spec can be rendered.
func (s LayerSpec) Validate() error {
	switch {
	case s.Size < 0:
		return fmt.Errorf("%w: size %v is negative", ErrInvalidLayer, s.Size)
	case s.Opacity < 0 || s.Opacity > 1:
		return fmt.Errorf("%w: opacity %v outside [0, 1]", ErrInvalidLayer, s.Opacity)
	}
	return nil
}

// Compose generates every layer in specs from scratch.
func Compose(rng RandSource, specs []LayerSpec) []Layer {
	layers := make([]Layer, len(specs))
	for i, spec := range specs {
		layers[i] = Layer{
			LayerSpec: spec,
			Stars:     GenerateLayer(rng, spec.Density, spec.Size),
		}
	}
	return layers
}

// Total returns the number of stars across layers.
func Total(layers []Layer) int {
	n := 0
	for _, l := range layers {
		n += len(l.Stars)
	}
	return n
}

type layerFile struct {
	Layers []LayerSpec `toml:"layer"`
}

// LoadLayerSpecs reads [[layer]] tables from a TOML file. An empty path
// yields DefaultLayers.
//
//	[[layer]]
//	density = 0.4
//	size = 2.0
//	opacity = 0.9
func LoadLayerSpecs(path string) ([]LayerSpec, error) {
	if path == "" {
		return DefaultLayers(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layers: %w", err)
	}
	return ParseLayerSpecs(data)
}

// ParseLayerSpecs decodes and validates TOML layer tables.
func ParseLayerSpecs(data []byte) ([]LayerSpec, error) {
	var f layerFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse layers: %w", err)
	}
	if len(f.Layers) == 0 {
		return nil, fmt.Errorf("%w: no [[layer]] tables", ErrInvalidLayer)
	}
	for i, spec := range f.Layers {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return f.Layers, nil
}
