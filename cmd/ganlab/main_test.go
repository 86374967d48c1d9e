package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/ganlab"
	"github.com/born-ml/ganlab/internal/serialization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigYAMLAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ring.yaml")
	yml := "shape_name: ring\nnum_generator_neurons: 8\nseed: 7\nd_learning_rate: 0.05\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	var overrides ganlab.Config
	configFlags(fs, &overrides)
	require.NoError(t, fs.Parse([]string{"-seed", "9", "-loss", ganlab.LossLeastSquares}))

	cfg, err := loadConfig(path, fs, &overrides)
	require.NoError(t, err)
	assert.Equal(t, ganlab.ShapeRing, cfg.ShapeName)
	assert.Equal(t, 8, cfg.NumGeneratorNeurons)
	assert.InDelta(t, 0.05, cfg.DLearningRate, 1e-12)
	assert.Equal(t, uint64(9), cfg.Seed, "explicit flag overrides file")
	assert.Equal(t, ganlab.LossLeastSquares, cfg.LossType)
	assert.Equal(t, ganlab.DefaultConfig().BatchSize, cfg.BatchSize, "unset fields keep defaults")
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	var overrides ganlab.Config
	configFlags(fs, &overrides)
	require.NoError(t, fs.Parse([]string{"-shape", "spiral"}))

	_, err := loadConfig("", fs, &overrides)
	assert.ErrorIs(t, err, ganlab.ErrConfiguration)
}

func TestInspect(t *testing.T) {
	cfg := ganlab.DefaultConfig()
	cfg.AtlasSize = 600
	cfg.NumTrueSamples = 300
	trainer, err := ganlab.New(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, trainer.Export(&buf))

	var out bytes.Buffer
	require.NoError(t, inspect(&out, &buf, serialization.ReaderOptions{}))
	text := out.String()
	assert.Contains(t, text, "Model:    GANLab")
	assert.Contains(t, text, "shape_name")
	assert.Contains(t, text, "g-0")
	assert.Contains(t, text, "d-0")
}

func TestPrintVersion(t *testing.T) {
	var out bytes.Buffer
	printVersion(&out)
	assert.Contains(t, out.String(), "GAN Lab "+version)
	assert.Contains(t, out.String(), "CPU: ")
}
