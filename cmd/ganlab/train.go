package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/born-ml/ganlab"
)

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML configuration file")
	steps := fs.Int("steps", 1000, "number of training steps")
	logEvery := fs.Int("log-every", 100, "print progress every N steps")
	resume := fs.String("resume", "", "weight file to continue from (its configuration wins)")
	out := fs.String("out", "", "write weights to this file when done")
	verbose := fs.Bool("v", false, "debug logging")
	var overrides ganlab.Config
	configFlags(fs, &overrides)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(*configPath, fs, &overrides)
	if err != nil {
		return err
	}
	trainer, err := ganlab.New(cfg, ganlab.WithLogger(logger))
	if err != nil {
		return err
	}
	if *resume != "" {
		if err := importFile(trainer, *resume); err != nil {
			return err
		}
		cfg = trainer.Config()
	}

	fmt.Println("GAN Lab training")
	fmt.Printf("  CPU: %s\n", trainer.Backend().Inner().Description())
	fmt.Printf("  Distribution: %s, noise: %s, loss: %s\n", cfg.ShapeName, cfg.NoiseType, cfg.LossType)
	fmt.Printf("  Generator: %d hidden x %d neurons, %s lr=%g, k=%d\n",
		cfg.NumGeneratorLayers, cfg.NumGeneratorNeurons, cfg.GOptimizerType, cfg.GLearningRate, cfg.KGSteps)
	fmt.Printf("  Discriminator: %d hidden x %d neurons, %s lr=%g, k=%d\n",
		cfg.NumDiscriminatorLayers, cfg.NumDiscriminatorNeurons, cfg.DOptimizerType, cfg.DLearningRate, cfg.KDSteps)
	fmt.Printf("  Starting at iteration %d\n\n", trainer.Iteration())

	start := time.Now()
	for i := 1; i <= *steps; i++ {
		res, err := trainer.Step()
		if err != nil {
			return err
		}
		if *logEvery > 0 && (i%*logEvery == 0 || i == *steps) {
			fmt.Printf("Iter %6d | D loss %8.4f | G loss %8.4f | KL %7.4f | JS %6.4f\n",
				res.Iteration, res.DLoss, res.GLoss, res.KLDivergence, res.JSDivergence)
		}
	}
	fmt.Printf("\n%d steps in %v\n", *steps, time.Since(start).Round(time.Millisecond))

	if *out != "" {
		if err := exportFile(trainer, *out); err != nil {
			return err
		}
		fmt.Printf("Weights written to %s\n", *out)
	}
	return nil
}

func importFile(trainer *ganlab.Trainer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return trainer.Import(f)
}

func exportFile(trainer *ganlab.Trainer, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return trainer.Export(f)
}
