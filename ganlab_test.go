// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ganlab_test

import (
	"bytes"
	"testing"

	"github.com/born-ml/ganlab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacade(t *testing.T) {
	cfg := ganlab.DefaultConfig()
	cfg.ShapeName = ganlab.ShapeDisjoint
	cfg.AtlasSize, cfg.BatchSize, cfg.NumTrueSamples = 300, 30, 150

	tr, err := ganlab.New(cfg)
	require.NoError(t, err)
	res, err := tr.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iteration)

	var buf bytes.Buffer
	require.NoError(t, tr.Export(&buf))

	cfg.ShapeName = "spiral"
	_, err = ganlab.New(cfg)
	assert.ErrorIs(t, err, ganlab.ErrConfiguration)
	assert.Contains(t, ganlab.ShapeNames(), ganlab.ShapeRing)
}
