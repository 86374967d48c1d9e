// Package atlas pre-materialises pools of input vectors and serves them in
// fixed-size batches by cyclic indexing.
//
// A Provider owns one atlas. Callers obtain any number of Handles over it;
// each handle keeps a private call counter, so one atlas can feed a rotating
// training stream and a fixed anchor batch at the same time:
//
//	p, _ := atlas.NewRandom(sampler, 12000, 150)
//	_ = p.GenerateAtlas()
//	train, _ := p.Handle(false)
//	anchor, _ := p.Handle(true)
//	batch := train.NextBatch() // rows [0,150), then [150,300), ...
//	fixed := anchor.NextBatch() // always rows [0,150)
//
// Batches are views that share memory with the atlas and must not be
// written to.
package atlas
