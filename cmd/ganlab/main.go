// Package main provides the GAN Lab command line trainer.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/born-ml/ganlab/internal/backend/cpu"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "version":
		printVersion(os.Stdout)
	case "train":
		err = runTrain(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("ganlab %s: %v", os.Args[1], err)
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "GAN Lab %s\n", version)
	fmt.Fprintf(w, "CPU: %s\n", cpu.New().Description())
}

func usage() {
	fmt.Println("GAN Lab - train a 2-D GAN step by step")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  train      Train and optionally export weights (ganlab train -h)")
	fmt.Println("  inspect    Print the contents of an exported weight file")
}
