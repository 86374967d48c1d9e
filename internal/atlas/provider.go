package atlas

import (
	"errors"
	"fmt"

	"github.com/born-ml/ganlab/internal/tensor"
)

// Filler is the value used to pad an atlas up to a multiple of the batch size.
const Filler = 0.5

// ErrNotGenerated is returned when a handle is requested before GenerateAtlas.
var ErrNotGenerated = errors.New("atlas: GenerateAtlas has not been called")

// Provider materialises an atlas from a sampling rule and serves cyclic batches.
type Provider struct {
	name      string
	dim       int
	batchSize int

	// cycleLen is the number of rows the cyclic offset ranges over.
	cycleLen int
	// sweep makes the counter run over whole batches of the meaningful
	// rows, restarting at row 0 after the last (possibly padded) batch.
	sweep bool

	generate func() ([]float32, error)
	atlas    *tensor.RawTensor
}

// Handle serves batches from a Provider's atlas.
type Handle struct {
	provider   *Provider
	fixedStart bool
	counter    int
}

// GenerateAtlas materialises the atlas, replacing any previous one.
func (p *Provider) GenerateAtlas() error {
	data, err := p.generate()
	if err != nil {
		return fmt.Errorf("atlas %s: %w", p.name, err)
	}
	rows := len(data) / p.dim
	for rows%p.batchSize != 0 {
		for range p.dim {
			data = append(data, Filler)
		}
		rows++
	}
	raw, err := tensor.RawFromSlice(data, tensor.Shape{rows, p.dim}, tensor.CPU)
	if err != nil {
		return fmt.Errorf("atlas %s: %w", p.name, err)
	}
	p.atlas = raw
	return nil
}

// Handle returns a new batch handle with its own counter.
// With fixedStart every call returns the first batch of the atlas.
func (p *Provider) Handle(fixedStart bool) (*Handle, error) {
	if p.atlas == nil {
		return nil, ErrNotGenerated
	}
	return &Handle{provider: p, fixedStart: fixedStart, counter: -1}, nil
}

// Atlas returns the materialised atlas (nil before GenerateAtlas), padding included.
func (p *Provider) Atlas() *tensor.RawTensor {
	return p.atlas
}

// Dim returns the row width.
func (p *Provider) Dim() int {
	return p.dim
}

// BatchSize returns the number of rows per batch.
func (p *Provider) BatchSize() int {
	return p.batchSize
}

// Len returns the number of meaningful rows, excluding padding.
func (p *Provider) Len() int {
	return p.cycleLen
}

// NumBatches returns how many batches cover the meaningful rows once.
func (p *Provider) NumBatches() int {
	return (p.cycleLen + p.batchSize - 1) / p.batchSize
}

// NextBatch advances the handle's counter and returns the next
// [batchSize, dim] view.
func (h *Handle) NextBatch() *tensor.RawTensor {
	p := h.provider
	h.counter++
	if p.sweep && h.counter >= p.NumBatches() {
		h.counter = 0
	}
	return p.atlas.Rows(h.Offset(), p.batchSize)
}

// Offset returns the row offset the most recent NextBatch call used,
// or -1 before the first call.
func (h *Handle) Offset() int {
	if h.counter < 0 {
		return -1
	}
	if h.fixedStart {
		return 0
	}
	return (h.counter * h.provider.batchSize) % h.provider.cycleLen
}

func checkSizes(dim, rows, batchSize int) error {
	if dim < 1 {
		return fmt.Errorf("atlas: dimension must be positive, got %d", dim)
	}
	if rows < 1 {
		return fmt.Errorf("atlas: size must be positive, got %d", rows)
	}
	if batchSize < 1 {
		return fmt.Errorf("atlas: batch size must be positive, got %d", batchSize)
	}
	return nil
}
