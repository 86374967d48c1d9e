package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/born-ml/ganlab"
	"gopkg.in/yaml.v3"
)

// loadConfig starts from the defaults, applies the YAML file at path (if
// any) and then every flag the user set explicitly.
func loadConfig(path string, fs *flag.FlagSet, overrides *ganlab.Config) (ganlab.Config, error) {
	cfg := ganlab.DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shape":
			cfg.ShapeName = overrides.ShapeName
		case "noise":
			cfg.NoiseType = overrides.NoiseType
		case "loss":
			cfg.LossType = overrides.LossType
		case "g-layers":
			cfg.NumGeneratorLayers = overrides.NumGeneratorLayers
		case "d-layers":
			cfg.NumDiscriminatorLayers = overrides.NumDiscriminatorLayers
		case "g-neurons":
			cfg.NumGeneratorNeurons = overrides.NumGeneratorNeurons
		case "d-neurons":
			cfg.NumDiscriminatorNeurons = overrides.NumDiscriminatorNeurons
		case "d-opt":
			cfg.DOptimizerType = overrides.DOptimizerType
		case "g-opt":
			cfg.GOptimizerType = overrides.GOptimizerType
		case "d-lr":
			cfg.DLearningRate = overrides.DLearningRate
		case "g-lr":
			cfg.GLearningRate = overrides.GLearningRate
		case "kd":
			cfg.KDSteps = overrides.KDSteps
		case "kg":
			cfg.KGSteps = overrides.KGSteps
		case "seed":
			cfg.Seed = overrides.Seed
		case "batch":
			cfg.BatchSize = overrides.BatchSize
		}
	})
	return cfg, cfg.Validate()
}

// configFlags registers one flag per overridable field, writing into dst.
func configFlags(fs *flag.FlagSet, dst *ganlab.Config) {
	def := ganlab.DefaultConfig()
	fs.StringVar(&dst.ShapeName, "shape", def.ShapeName, "true distribution: line, gaussians, ring, disjoint")
	fs.StringVar(&dst.NoiseType, "noise", def.NoiseType, `noise type: "1D Uniform", "1D Gaussian", "2D Uniform", "2D Gaussian"`)
	fs.StringVar(&dst.LossType, "loss", def.LossType, `loss family: "Log loss" or "LeastSq loss"`)
	fs.IntVar(&dst.NumGeneratorLayers, "g-layers", def.NumGeneratorLayers, "generator hidden layers")
	fs.IntVar(&dst.NumDiscriminatorLayers, "d-layers", def.NumDiscriminatorLayers, "discriminator hidden layers")
	fs.IntVar(&dst.NumGeneratorNeurons, "g-neurons", def.NumGeneratorNeurons, "generator neurons per layer")
	fs.IntVar(&dst.NumDiscriminatorNeurons, "d-neurons", def.NumDiscriminatorNeurons, "discriminator neurons per layer")
	fs.StringVar(&dst.DOptimizerType, "d-opt", def.DOptimizerType, "discriminator optimizer: SGD or Adam")
	fs.StringVar(&dst.GOptimizerType, "g-opt", def.GOptimizerType, "generator optimizer: SGD or Adam")
	fs.Float64Var(&dst.DLearningRate, "d-lr", def.DLearningRate, "discriminator learning rate")
	fs.Float64Var(&dst.GLearningRate, "g-lr", def.GLearningRate, "generator learning rate")
	fs.IntVar(&dst.KDSteps, "kd", def.KDSteps, "discriminator updates per step")
	fs.IntVar(&dst.KGSteps, "kg", def.KGSteps, "generator updates per step")
	fs.Uint64Var(&dst.Seed, "seed", def.Seed, "random seed")
	fs.IntVar(&dst.BatchSize, "batch", def.BatchSize, "batch size")
}
