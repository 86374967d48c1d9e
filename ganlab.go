// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ganlab trains small generative adversarial networks on 2-D point
// distributions and reports everything needed to visualise the training:
// losses, generated samples, the discriminator heatmap, the generator
// manifold, gradient vectors and grid-based KL/JS divergence.
//
// # Basic Usage
//
//	cfg := ganlab.DefaultConfig()
//	cfg.ShapeName = ganlab.ShapeRing
//
//	trainer, err := ganlab.New(cfg, ganlab.WithLogger(slog.Default()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for range 500 {
//	    res, err := trainer.Step()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    draw(res.GeneratedSamples, res.GridPredictions)
//	}
//
// # Weight Files
//
// Export writes both networks to a .born file together with the
// configuration and iteration count; Import restores them:
//
//	f, _ := os.Create("ring.born")
//	defer f.Close()
//	if err := trainer.Export(f); err != nil {
//	    log.Fatal(err)
//	}
package ganlab

import (
	"github.com/born-ml/ganlab/internal/atlas"
	"github.com/born-ml/ganlab/internal/gan"
)

// Trainer drives training one synchronous step at a time.
type Trainer = gan.Trainer

// Config describes an experiment.
type Config = gan.Config

// StepResult is the report of one training step.
type StepResult = gan.StepResult

// Manifold is the generator's image of the noise lattice.
type Manifold = gan.Manifold

// Network is a generator or discriminator.
type Network = gan.Network

// Role identifies the generator or the discriminator.
type Role = gan.Role

// Option configures a Trainer.
type Option = gan.Option

// Point is a point of a free-hand drawing.
type Point = atlas.Point

// ConfigurationError reports an invalid configuration or weight file.
type ConfigurationError = gan.ConfigurationError

// ErrConfiguration matches every ConfigurationError under errors.Is.
var ErrConfiguration = gan.ErrConfiguration

// Network roles.
const (
	RoleGenerator     = gan.RoleGenerator
	RoleDiscriminator = gan.RoleDiscriminator
)

// Noise types.
const (
	Noise1DUniform  = gan.Noise1DUniform
	Noise1DGaussian = gan.Noise1DGaussian
	Noise2DUniform  = gan.Noise2DUniform
	Noise2DGaussian = gan.Noise2DGaussian
)

// Loss families.
const (
	LossLog          = gan.LossLog
	LossLeastSquares = gan.LossLeastSquares
)

// True distributions.
const (
	ShapeLine      = atlas.ShapeLine
	ShapeGaussians = atlas.ShapeGaussians
	ShapeRing      = atlas.ShapeRing
	ShapeDisjoint  = atlas.ShapeDisjoint
	ShapeDrawing   = atlas.ShapeDrawing
)

// Weight file metadata keys.
const (
	MetaShapeName    = gan.MetaShapeName
	MetaIterCount    = gan.MetaIterCount
	MetaExperimentID = gan.MetaExperimentID
	MetaConfig       = gan.MetaConfig
)

// DefaultConfig returns the GAN Lab defaults.
func DefaultConfig() Config {
	return gan.DefaultConfig()
}

// New validates cfg and creates a trainer.
func New(cfg Config, opts ...Option) (*Trainer, error) {
	return gan.New(cfg, opts...)
}

// WithLogger sets the trainer's logger.
var WithLogger = gan.WithLogger

// ShapeNames lists the built-in true distributions.
func ShapeNames() []string {
	return atlas.ShapeNames()
}
