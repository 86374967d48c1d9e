package gan

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/born-ml/ganlab/internal/nn"
	"github.com/born-ml/ganlab/internal/serialization"
	"github.com/born-ml/ganlab/internal/tensor"
)

// Weight file metadata keys.
const (
	MetaShapeName    = "shape_name"
	MetaIterCount    = "iter_count"
	MetaExperimentID = "experiment_id"
	MetaConfig       = "config"

	modelType = "GANLab"
)

// Export writes both networks' parameters as d-i and g-i tensors, with the
// configuration and iteration count as metadata.
func (t *Trainer) Export(w io.Writer) error {
	e := t.exp
	cfgJSON, err := json.Marshal(e.cfg)
	if err != nil {
		return fmt.Errorf("gan: marshal config: %w", err)
	}

	var tensors []serialization.NamedTensor
	for _, net := range []*Network{e.discriminator, e.generator} {
		for i, p := range net.Parameters() {
			tensors = append(tensors, serialization.NamedTensor{Name: net.ParameterName(i), Raw: p.Tensor().Raw()})
		}
	}

	meta := map[string]string{
		MetaShapeName:    e.cfg.ShapeName,
		MetaIterCount:    strconv.Itoa(e.iteration),
		MetaExperimentID: e.id.String(),
		MetaConfig:       string(cfgJSON),
	}
	if err := serialization.Write(w, tensors, modelType, meta); err != nil {
		return fmt.Errorf("gan: export: %w", err)
	}
	t.logger.Info("weights exported", "experiment", e.id, "iteration", e.iteration, "tensors", len(tensors))
	return nil
}

// Import reads a file written by Export. It rebuilds the experiment from the
// stored configuration, loads every parameter and restores the iteration
// count. The file must hold exactly the expected names and shapes; on any
// error the trainer is left unchanged.
func (t *Trainer) Import(r io.Reader) error {
	f, err := serialization.Read(r, serialization.ReaderOptions{})
	if err != nil {
		return fmt.Errorf("gan: import: %w", err)
	}
	meta := f.Metadata()

	var cfg Config
	raw, ok := meta[MetaConfig]
	if !ok {
		return configErr("weights", nil, "missing %q metadata", MetaConfig)
	}
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return configErr("weights", nil, "bad %q metadata: %v", MetaConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	iteration, err := strconv.Atoi(meta[MetaIterCount])
	if err != nil || iteration < 0 {
		return configErr("weights", meta[MetaIterCount], "bad %q metadata", MetaIterCount)
	}
	loss, err := newLoss(cfg.LossType)
	if err != nil {
		return err
	}

	exp, err := newExperiment(cfg, t.backend)
	if err != nil {
		return err
	}
	if err := loadParameters(f, exp); err != nil {
		return err
	}

	exp.iteration = iteration
	t.exp, t.loss = exp, loss
	t.logger.Info("weights imported", "experiment", exp.id, "iteration", iteration, "shape", cfg.ShapeName)
	return nil
}

// loadParameters decodes and checks every tensor before assigning any.
func loadParameters(f *serialization.File, exp *experiment) error {
	targets := make(map[string]*nn.Parameter[Backend])
	for _, net := range []*Network{exp.discriminator, exp.generator} {
		for i, p := range net.Parameters() {
			targets[net.ParameterName(i)] = p
		}
	}

	stored := f.TensorNames()
	var extra []string
	for _, name := range stored {
		if _, ok := targets[name]; !ok {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		return configErr("weights", extra, "unexpected tensors")
	}
	if len(stored) != len(targets) {
		var missing []string
		for name := range targets {
			if _, err := f.TensorInfo(name); err != nil {
				missing = append(missing, name)
			}
		}
		sort.Strings(missing)
		return configErr("weights", missing, "missing tensors")
	}

	values := make(map[string]*tensor.RawTensor, len(targets))
	for name, p := range targets {
		v, err := f.Tensor(name)
		if err != nil {
			return fmt.Errorf("gan: import: %w", err)
		}
		if !v.Shape().Equal(p.Shape()) {
			return configErr("weights", name, "shape %v, want %v", v.Shape(), p.Shape())
		}
		values[name] = v
	}
	for name, p := range targets {
		if err := p.Assign(values[name]); err != nil {
			return fmt.Errorf("gan: import %s: %w", name, err)
		}
	}
	return nil
}
