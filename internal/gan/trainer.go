package gan

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/born-ml/ganlab/internal/autodiff"
	"github.com/born-ml/ganlab/internal/backend/cpu"
	"github.com/born-ml/ganlab/internal/nn"
	"github.com/born-ml/ganlab/internal/optim"
	"github.com/born-ml/ganlab/internal/tensor"
)

// StepResult is everything one training step reports.
type StepResult struct {
	Iteration int

	// DLoss and GLoss are the losses of the last D and G update in the
	// step, as computed before that update. NaN and Inf are passed through.
	DLoss    float32
	GLoss    float32
	DTrained bool
	GTrained bool

	// GeneratedSamples is G(anchor noise) after training, [batch*2].
	GeneratedSamples []float32
	// TrueAnchorPredictions and GeneratedAnchorPredictions are D's outputs
	// on the fixed true batch and on G(anchor noise), before training.
	TrueAnchorPredictions      []float32
	GeneratedAnchorPredictions []float32
	// GridPredictions is D over the uniform grid, NumGridCells² values.
	GridPredictions []float32
	// Gradients is d sum(D(x)) / dx at x = G(anchor noise), [batch*2],
	// taken after the discriminator phase.
	Gradients []float32
	Manifold  *Manifold

	KLDivergence float64
	JSDivergence float64
}

// Trainer drives GAN training one synchronous step at a time.
// A Trainer is not safe for concurrent use.
type Trainer struct {
	backend Backend
	logger  *slog.Logger
	loss    nn.GANLoss[Backend]
	exp     *experiment
}

// Option configures a Trainer.
type Option func(*Trainer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(t *Trainer) {
		t.logger = l
	}
}

// WithBackend sets the compute backend.
func WithBackend(b Backend) Option {
	return func(t *Trainer) {
		t.backend = b
	}
}

// New validates cfg and creates a trainer with a fresh experiment.
func New(cfg Config, opts ...Option) (*Trainer, error) {
	t := &Trainer{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.backend == nil {
		t.backend = autodiff.New(cpu.New())
	}
	if err := t.Reconfigure(cfg); err != nil {
		return nil, err
	}
	return t, nil
}

func newLoss(name string) (nn.GANLoss[Backend], error) {
	switch name {
	case LossLog:
		return nn.NewLogLoss[Backend](), nil
	case LossLeastSquares:
		return nn.NewLeastSquaresLoss[Backend](), nil
	default:
		return nil, validateLossType(name)
	}
}

// Reconfigure applies cfg. Structural changes replace the whole experiment
// and reset the iteration count; live changes keep it. On error nothing
// changes.
func (t *Trainer) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	loss, err := newLoss(cfg.LossType)
	if err != nil {
		return err
	}

	if t.exp == nil || !t.exp.cfg.sameStructure(cfg) {
		exp, err := newExperiment(cfg, t.backend)
		if err != nil {
			return err
		}
		t.exp, t.loss = exp, loss
		t.logger.Debug("experiment created",
			"id", exp.id,
			"noise", cfg.NoiseType,
			"shape", cfg.ShapeName,
			"generator_layers", exp.generator.NumLayers(),
			"discriminator_layers", exp.discriminator.NumLayers())
		return nil
	}

	old := t.exp.cfg
	var dOpt, gOpt optim.Optimizer[Backend]
	if old.DOptimizerType != cfg.DOptimizerType || old.DLearningRate != cfg.DLearningRate {
		if dOpt, err = newOptimizer("discriminator optimizer", cfg.DOptimizerType, cfg.DLearningRate); err != nil {
			return err
		}
	}
	if old.GOptimizerType != cfg.GOptimizerType || old.GLearningRate != cfg.GLearningRate {
		if gOpt, err = newOptimizer("generator optimizer", cfg.GOptimizerType, cfg.GLearningRate); err != nil {
			return err
		}
	}
	if dOpt != nil {
		t.exp.dOpt = dOpt
		t.logger.Debug("optimizer replaced", "role", RoleDiscriminator, "family", cfg.DOptimizerType, "lr", cfg.DLearningRate)
	}
	if gOpt != nil {
		t.exp.gOpt = gOpt
		t.logger.Debug("optimizer replaced", "role", RoleGenerator, "family", cfg.GOptimizerType, "lr", cfg.GLearningRate)
	}
	cfg.DrawingPositions = slices.Clone(cfg.DrawingPositions)
	t.exp.cfg = cfg
	t.loss = loss
	return nil
}

// SetLossType switches the loss family without touching parameters.
func (t *Trainer) SetLossType(name string) error {
	cfg := t.exp.cfg
	cfg.LossType = name
	return t.Reconfigure(cfg)
}

// SetOptimizer replaces one network's optimizer, discarding its state.
func (t *Trainer) SetOptimizer(role Role, family string, lr float64) error {
	field := role.String() + " optimizer"
	opt, err := newOptimizer(field, family, lr)
	if err != nil {
		return err
	}
	if role == RoleGenerator {
		t.exp.gOpt = opt
		t.exp.cfg.GOptimizerType, t.exp.cfg.GLearningRate = family, lr
	} else {
		t.exp.dOpt = opt
		t.exp.cfg.DOptimizerType, t.exp.cfg.DLearningRate = family, lr
	}
	t.logger.Debug("optimizer replaced", "role", role, "family", family, "lr", lr)
	return nil
}

// Config returns a copy of the active configuration.
func (t *Trainer) Config() Config {
	cfg := t.exp.cfg
	cfg.DrawingPositions = slices.Clone(cfg.DrawingPositions)
	return cfg
}

// Iteration returns the number of steps taken in the current experiment.
func (t *Trainer) Iteration() int {
	return t.exp.iteration
}

// ExperimentID identifies the current experiment.
func (t *Trainer) ExperimentID() string {
	return t.exp.id.String()
}

// Generator returns the current generator.
func (t *Trainer) Generator() *Network {
	return t.exp.generator
}

// Discriminator returns the current discriminator.
func (t *Trainer) Discriminator() *Network {
	return t.exp.discriminator
}

// Backend returns the compute backend.
func (t *Trainer) Backend() Backend {
	return t.backend
}

// TrueSamples returns the NumTrueSamples points the true density is built from.
func (t *Trainer) TrueSamples() []float32 {
	return t.exp.trueSamples()
}

// NoiseSamples returns the first batch of the noise atlas.
func (t *Trainer) NoiseSamples() []float32 {
	return t.exp.noiseSamples()
}

// GaussianDensities returns the analytic noise density at each manifold
// cell centre for 2D Gaussian noise, nil otherwise.
func (t *Trainer) GaussianDensities() []float64 {
	return t.exp.gaussianDensities
}

// Step runs one training step with the configured KDSteps and KGSteps.
func (t *Trainer) Step() (*StepResult, error) {
	return t.step(t.exp.cfg.KDSteps, t.exp.cfg.KGSteps)
}

// StepD runs one step that trains only the discriminator, once.
func (t *Trainer) StepD() (*StepResult, error) {
	return t.step(1, 0)
}

// StepG runs one step that trains only the generator, once.
func (t *Trainer) StepG() (*StepResult, error) {
	return t.step(0, 1)
}

// step runs one training step:
//
//  1. D predictions on the fixed true batch and on G(anchor noise)
//  2. kD discriminator updates on fresh noise and true batches
//  3. D over the uniform grid and the gradient field at G(anchor noise)
//  4. kG generator updates on fresh noise batches
//  5. the manifold, G(anchor noise) and the divergence scores
//
// A tensor shape mismatch aborts the step with an error wrapping the
// *tensor.ShapeError; the iteration count only advances on success.
func (t *Trainer) step(kD, kG int) (res *StepResult, err error) {
	e, b := t.exp, t.backend
	n := e.iteration + 1

	defer func() {
		if r := recover(); r != nil {
			var shapeErr *tensor.ShapeError
			if rerr, ok := r.(error); ok && errors.As(rerr, &shapeErr) {
				res, err = nil, fmt.Errorf("gan: step %d: %w", n, rerr)
				return
			}
			panic(r)
		}
	}()

	gen, disc := e.generator.Forward, e.discriminator.Forward
	res = &StepResult{Iteration: n}

	noiseAnchor := batch(e.noiseAnchor, b)
	fakeAnchor := gen(noiseAnchor)
	res.TrueAnchorPredictions = disc(batch(e.trueAnchor, b)).Data()
	res.GeneratedAnchorPredictions = disc(fakeAnchor).Data()

	for range kD {
		noise, truth := batch(e.noiseTrain, b), batch(e.trueTrain, b)
		res.DLoss = optim.Minimize(e.dOpt, b, e.discriminator.Parameters(), func() *tensor.Tensor[Backend] {
			return t.loss.DiscriminatorLoss(disc(truth), disc(gen(noise)))
		})
		res.DTrained = true
	}

	res.GridPredictions = sweep(e.grid, e.gridProv, 1, b, disc)
	_, grads := autodiff.Gradients(b, func() *tensor.Tensor[Backend] {
		return disc(fakeAnchor).Sum()
	}, fakeAnchor)
	res.Gradients = grads[0].AsFloat32()

	for range kG {
		noise := batch(e.noiseTrain, b)
		res.GLoss = optim.Minimize(e.gOpt, b, e.generator.Parameters(), func() *tensor.Tensor[Backend] {
			return t.loss.GeneratorLoss(disc(gen(noise)))
		})
		res.GTrained = true
	}

	points := sweep(e.lattice, e.latticeProv, 2, b, gen)
	res.Manifold = buildManifold(points, e.cfg.NoiseSize(), e.cfg.NumManifoldCells)

	res.GeneratedSamples = gen(noiseAnchor).Data()
	if err := e.evaluator.UpdateGeneratedGrid(res.GeneratedSamples); err != nil {
		return nil, fmt.Errorf("gan: step %d: %w", n, err)
	}
	res.KLDivergence = e.evaluator.KLDivergence()
	res.JSDivergence = e.evaluator.JSDivergence()

	e.iteration = n
	return res, nil
}
