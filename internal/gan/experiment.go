package gan

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/born-ml/ganlab/internal/atlas"
	"github.com/born-ml/ganlab/internal/evaluator"
	"github.com/born-ml/ganlab/internal/optim"
	"github.com/born-ml/ganlab/internal/tensor"
	"github.com/google/uuid"
)

// experiment owns everything derived from the structural configuration:
// atlases, networks, optimizer state and the evaluator. It is replaced as
// a whole, never patched.
type experiment struct {
	id  uuid.UUID
	cfg Config

	generator     *Network
	discriminator *Network
	dOpt          optim.Optimizer[Backend]
	gOpt          optim.Optimizer[Backend]

	noise       *atlas.Provider
	noiseTrain  *atlas.Handle
	noiseAnchor *atlas.Handle

	truth      *atlas.Provider
	trueTrain  *atlas.Handle
	trueAnchor *atlas.Handle

	gridProv    *atlas.Provider
	grid        *atlas.Handle
	latticeProv *atlas.Provider
	lattice     *atlas.Handle

	evaluator         *evaluator.GridDensities
	gaussianDensities []float64

	iteration int
}

// newExperiment builds a complete experiment from a validated config.
// Random draws happen in a fixed order: generator weights, discriminator
// weights, noise atlas, true atlas.
func newExperiment(cfg Config, backend Backend) (*experiment, error) {
	cfg.DrawingPositions = slices.Clone(cfg.DrawingPositions)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5deece66d))
	noiseSize := cfg.NoiseSize()

	e := &experiment{
		id:            uuid.New(),
		cfg:           cfg,
		generator:     NewGenerator(noiseSize, cfg.NumGeneratorLayers, cfg.NumGeneratorNeurons, rng, backend),
		discriminator: NewDiscriminator(cfg.NumDiscriminatorLayers, cfg.NumDiscriminatorNeurons, rng, backend),
		evaluator:     evaluator.New(cfg.NumGridCells),
	}

	var err error
	if e.dOpt, err = newOptimizer("discriminator optimizer", cfg.DOptimizerType, cfg.DLearningRate); err != nil {
		return nil, err
	}
	if e.gOpt, err = newOptimizer("generator optimizer", cfg.GOptimizerType, cfg.GLearningRate); err != nil {
		return nil, err
	}

	var noiseSampler atlas.Sampler = atlas.NewUniformNoise(noiseSize, rng)
	if cfg.GaussianNoise() {
		noiseSampler = atlas.NewTruncatedNormalNoise(noiseSize, rng)
		e.gaussianDensities = atlas.GaussianDensities(noiseSize, cfg.NumManifoldCells)
	}
	shape, err := atlas.NewShapeSampler(cfg.ShapeName, cfg.DrawingPositions, rng)
	if err != nil {
		return nil, configErr("distribution", cfg.ShapeName, "%v", err)
	}

	if e.noise, err = atlas.NewRandom("noise", noiseSampler, cfg.AtlasSize, cfg.BatchSize); err != nil {
		return nil, err
	}
	if e.truth, err = atlas.NewRandom("true samples", shape, cfg.AtlasSize, cfg.BatchSize); err != nil {
		return nil, err
	}
	if e.gridProv, err = atlas.NewUniformGrid(cfg.NumGridCells, cfg.BatchSize); err != nil {
		return nil, err
	}
	if e.latticeProv, err = atlas.NewNoiseLattice(noiseSize, cfg.NumManifoldCells, cfg.BatchSize); err != nil {
		return nil, err
	}
	for _, p := range []*atlas.Provider{e.noise, e.truth, e.gridProv, e.latticeProv} {
		if err := p.GenerateAtlas(); err != nil {
			return nil, err
		}
	}

	handles := []struct {
		dst   **atlas.Handle
		p     *atlas.Provider
		fixed bool
	}{
		{&e.noiseTrain, e.noise, false},
		{&e.noiseAnchor, e.noise, true},
		{&e.trueTrain, e.truth, false},
		{&e.trueAnchor, e.truth, true},
		{&e.grid, e.gridProv, false},
		{&e.lattice, e.latticeProv, false},
	}
	for _, h := range handles {
		if *h.dst, err = h.p.Handle(h.fixed); err != nil {
			return nil, err
		}
	}

	if err := e.evaluator.CreateTrueGrid(e.truth.Atlas().AsFloat32(), cfg.NumTrueSamples); err != nil {
		return nil, fmt.Errorf("gan: %w", err)
	}
	return e, nil
}

func newOptimizer(field, family string, lr float64) (optim.Optimizer[Backend], error) {
	if err := validateOptimizer(field, family, lr); err != nil {
		return nil, err
	}
	opt, err := optim.New[Backend](family, float32(lr))
	if err != nil {
		return nil, configErr(field, family, "%v", err)
	}
	return opt, nil
}

// batch wraps an atlas view as a tensor on backend.
func batch(h *atlas.Handle, backend Backend) *tensor.Tensor[Backend] {
	return tensor.New(h.NextBatch(), backend)
}

// sweep runs fn over every batch of a lattice handle and returns the first
// rows*width output values.
func sweep(h *atlas.Handle, p *atlas.Provider, width int, backend Backend, fn func(*tensor.Tensor[Backend]) *tensor.Tensor[Backend]) []float32 {
	out := make([]float32, 0, p.NumBatches()*p.BatchSize()*width)
	for range p.NumBatches() {
		out = append(out, fn(batch(h, backend)).Data()...)
	}
	return out[:p.Len()*width]
}

// trueSamples returns the points the true grid density was built from.
func (e *experiment) trueSamples() []float32 {
	return append([]float32(nil), e.truth.Atlas().AsFloat32()[:2*e.cfg.NumTrueSamples]...)
}

// noiseSamples returns the first batch of the noise atlas.
func (e *experiment) noiseSamples() []float32 {
	n := e.cfg.BatchSize * e.cfg.NoiseSize()
	return append([]float32(nil), e.noise.Atlas().AsFloat32()[:n]...)
}
