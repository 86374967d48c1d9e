package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/born-ml/ganlab/internal/serialization"
)

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	skipChecksum := fs.Bool("skip-checksum", false, "do not verify the SHA-256 checksum")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: ganlab inspect [-skip-checksum] <file.born>")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()
	return inspect(os.Stdout, f, serialization.ReaderOptions{SkipChecksumValidation: *skipChecksum})
}

func inspect(w io.Writer, r io.Reader, opts serialization.ReaderOptions) error {
	file, err := serialization.Read(r, opts)
	if err != nil {
		return err
	}

	h := file.Header
	fmt.Fprintf(w, "Format:   v%d (born %s)\n", file.Version, h.BornVersion)
	fmt.Fprintf(w, "Model:    %s\n", h.ModelType)
	if !h.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Created:  %s\n", h.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	}

	meta := file.Metadata()
	if len(meta) > 0 {
		fmt.Fprintln(w, "Metadata:")
		keys := make([]string, 0, len(meta))
		for k := range meta {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %-14s %s\n", k, meta[k])
		}
	}

	fmt.Fprintf(w, "Tensors:  %d\n", len(h.Tensors))
	for _, name := range file.TensorNames() {
		info, err := file.TensorInfo(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-8s %-8s %v\n", name, info.DType, info.Shape)
	}
	return nil
}
