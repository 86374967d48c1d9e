package gan

import (
	"slices"

	"github.com/born-ml/ganlab/internal/atlas"
	"github.com/born-ml/ganlab/internal/optim"
)

// Noise types.
const (
	Noise1DUniform  = "1D Uniform"
	Noise1DGaussian = "1D Gaussian"
	Noise2DUniform  = "2D Uniform"
	Noise2DGaussian = "2D Gaussian"
)

// Loss families.
const (
	LossLog          = "Log loss"
	LossLeastSquares = "LeastSq loss"
)

// Config describes one experiment. Changing a structural field rebuilds
// the experiment; live fields are applied to the running one.
type Config struct {
	// Structural.
	NoiseType               string        `yaml:"noise_type" json:"noise_type"`
	NumGeneratorLayers      int           `yaml:"num_generator_layers" json:"num_generator_layers"`
	NumDiscriminatorLayers  int           `yaml:"num_discriminator_layers" json:"num_discriminator_layers"`
	NumGeneratorNeurons     int           `yaml:"num_generator_neurons" json:"num_generator_neurons"`
	NumDiscriminatorNeurons int           `yaml:"num_discriminator_neurons" json:"num_discriminator_neurons"`
	ShapeName               string        `yaml:"shape_name" json:"shape_name"`
	DrawingPositions        []atlas.Point `yaml:"drawing_positions,omitempty" json:"drawing_positions,omitempty"`
	Seed                    uint64        `yaml:"seed" json:"seed"`
	BatchSize               int           `yaml:"batch_size" json:"batch_size"`
	AtlasSize               int           `yaml:"atlas_size" json:"atlas_size"`
	NumGridCells            int           `yaml:"num_grid_cells" json:"num_grid_cells"`
	NumManifoldCells        int           `yaml:"num_manifold_cells" json:"num_manifold_cells"`
	NumTrueSamples          int           `yaml:"num_true_samples" json:"num_true_samples"`

	// Live.
	LossType       string  `yaml:"loss_type" json:"loss_type"`
	DOptimizerType string  `yaml:"d_optimizer_type" json:"d_optimizer_type"`
	GOptimizerType string  `yaml:"g_optimizer_type" json:"g_optimizer_type"`
	DLearningRate  float64 `yaml:"d_learning_rate" json:"d_learning_rate"`
	GLearningRate  float64 `yaml:"g_learning_rate" json:"g_learning_rate"`
	KDSteps        int     `yaml:"k_d_steps" json:"k_d_steps"`
	KGSteps        int     `yaml:"k_g_steps" json:"k_g_steps"`
}

// DefaultConfig returns the GAN Lab defaults.
func DefaultConfig() Config {
	return Config{
		NoiseType:               Noise2DUniform,
		NumGeneratorLayers:      1,
		NumDiscriminatorLayers:  1,
		NumGeneratorNeurons:     16,
		NumDiscriminatorNeurons: 16,
		ShapeName:               atlas.ShapeGaussians,
		BatchSize:               150,
		AtlasSize:               12000,
		NumGridCells:            30,
		NumManifoldCells:        20,
		NumTrueSamples:          450,
		LossType:                LossLog,
		DOptimizerType:          optim.FamilySGD,
		GOptimizerType:          optim.FamilySGD,
		DLearningRate:           0.1,
		GLearningRate:           0.1,
		KDSteps:                 1,
		KGSteps:                 1,
	}
}

// NoiseSize returns the noise dimensionality implied by NoiseType.
func (c Config) NoiseSize() int {
	switch c.NoiseType {
	case Noise1DUniform, Noise1DGaussian:
		return 1
	default:
		return 2
	}
}

// GaussianNoise reports whether noise is drawn from the truncated normal.
func (c Config) GaussianNoise() bool {
	return c.NoiseType == Noise1DGaussian || c.NoiseType == Noise2DGaussian
}

// Validate checks every field and returns the first *ConfigurationError found.
func (c Config) Validate() error {
	switch c.NoiseType {
	case Noise1DUniform, Noise1DGaussian, Noise2DUniform, Noise2DGaussian:
	default:
		return configErr("noise type", c.NoiseType, "unknown noise type")
	}
	if !atlas.IsShape(c.ShapeName) {
		return configErr("distribution", c.ShapeName, "unknown distribution")
	}
	if c.ShapeName == atlas.ShapeDrawing && len(c.DrawingPositions) == 0 {
		return configErr("distribution", c.ShapeName, "drawing has no points")
	}
	if err := validateLossType(c.LossType); err != nil {
		return err
	}
	if err := validateOptimizer("discriminator optimizer", c.DOptimizerType, c.DLearningRate); err != nil {
		return err
	}
	if err := validateOptimizer("generator optimizer", c.GOptimizerType, c.GLearningRate); err != nil {
		return err
	}

	for _, f := range []struct {
		name string
		v    int
		min  int
	}{
		{"generator layers", c.NumGeneratorLayers, 0},
		{"discriminator layers", c.NumDiscriminatorLayers, 0},
		{"generator neurons", c.NumGeneratorNeurons, 1},
		{"discriminator neurons", c.NumDiscriminatorNeurons, 1},
		{"k_d steps", c.KDSteps, 0},
		{"k_g steps", c.KGSteps, 0},
		{"batch size", c.BatchSize, 1},
		{"atlas size", c.AtlasSize, 1},
		{"grid cells", c.NumGridCells, 1},
		{"manifold cells", c.NumManifoldCells, 1},
		{"true samples", c.NumTrueSamples, 1},
	} {
		if f.v < f.min {
			return configErr(f.name, f.v, "must be at least %d", f.min)
		}
	}
	if c.NumTrueSamples > c.AtlasSize {
		return configErr("true samples", c.NumTrueSamples, "exceeds atlas size %d", c.AtlasSize)
	}
	return nil
}

func validateLossType(name string) error {
	if name != LossLog && name != LossLeastSquares {
		return configErr("loss type", name, "unknown loss family")
	}
	return nil
}

func validateOptimizer(field, family string, lr float64) error {
	if family != optim.FamilySGD && family != optim.FamilyAdam {
		return configErr(field, family, "unknown optimizer family")
	}
	if !(lr > 0) {
		return configErr(field+" learning rate", lr, "must be positive")
	}
	return nil
}

// sameStructure reports whether c and other build identical experiments.
func (c Config) sameStructure(other Config) bool {
	return c.NoiseType == other.NoiseType &&
		c.NumGeneratorLayers == other.NumGeneratorLayers &&
		c.NumDiscriminatorLayers == other.NumDiscriminatorLayers &&
		c.NumGeneratorNeurons == other.NumGeneratorNeurons &&
		c.NumDiscriminatorNeurons == other.NumDiscriminatorNeurons &&
		c.ShapeName == other.ShapeName &&
		slices.Equal(c.DrawingPositions, other.DrawingPositions) &&
		c.Seed == other.Seed &&
		c.BatchSize == other.BatchSize &&
		c.AtlasSize == other.AtlasSize &&
		c.NumGridCells == other.NumGridCells &&
		c.NumManifoldCells == other.NumManifoldCells &&
		c.NumTrueSamples == other.NumTrueSamples
}
