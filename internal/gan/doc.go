// Package gan trains a small generative adversarial network on 2-D point
// distributions one synchronous step at a time.
//
// A Trainer owns one experiment: the noise and true-sample atlases, the
// generator and discriminator, their optimizers and the grid density
// evaluator. Structural configuration changes replace the experiment as a
// unit; loss family, optimizer and step-count changes apply in place.
//
//	t, err := gan.New(gan.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	for range 100 {
//	    res, err := t.Step()
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Printf("%d: KL %.3f JS %.3f\n", res.Iteration, res.KLDivergence, res.JSDivergence)
//	}
package gan
