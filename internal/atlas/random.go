package atlas

// NewRandom creates a provider whose atlas holds atlasSize independent
// draws from sampler. When atlasSize is not a multiple of batchSize it is
// rounded up with further draws, so every served row is a real sample.
func NewRandom(name string, sampler Sampler, atlasSize, batchSize int) (*Provider, error) {
	if err := checkSizes(sampler.Dim(), atlasSize, batchSize); err != nil {
		return nil, err
	}
	rows := (atlasSize + batchSize - 1) / batchSize * batchSize
	dim := sampler.Dim()

	return &Provider{
		name:      name,
		dim:       dim,
		batchSize: batchSize,
		cycleLen:  rows,
		generate: func() ([]float32, error) {
			data := make([]float32, rows*dim)
			for r := range rows {
				sampler.Sample(data[r*dim : (r+1)*dim])
			}
			return data, nil
		},
	}, nil
}
