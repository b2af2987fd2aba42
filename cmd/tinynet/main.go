// Package main provides the tinynet demonstration command.
//
// By default it builds the reference 3-3-3 network (learning rate 0.3, fixed
// literal weights), trains it once on input [1.0, 0.5, -1.5] with the same
// vector as target, and prints the weights before and after the step.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/tinynet/internal/config"
	"github.com/born-ml/tinynet/internal/nn"
)

const version = "v0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("tinynet: %v", err)
	}
}

func run(args []string, w io.Writer) error {
	if len(args) > 0 && args[0] == "version" {
		fmt.Fprintf(w, "tinynet %s\n", version)
		return nil
	}

	fs := flag.NewFlagSet("tinynet", flag.ContinueOnError)
	fs.SetOutput(w)
	configPath := fs.String("config", "", "YAML network definition (default: reference 3-3-3 network)")
	query := fs.Bool("query", false, "Query the network before and after training")
	inputFlag := fs.String("input", "1.0,0.5,-1.5", "Comma-separated input vector")
	targetFlag := fs.String("target", "1.0,0.5,-1.5", "Comma-separated target vector")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	inputs, err := parseVector(*inputFlag)
	if err != nil {
		return fmt.Errorf("invalid -input: %w", err)
	}
	targets, err := parseVector(*targetFlag)
	if err != nil {
		return fmt.Errorf("invalid -target: %w", err)
	}

	net, err := cfg.Network()
	if err != nil {
		return fmt.Errorf("build network: %w", err)
	}
	if len(inputs) != net.InputSize() {
		return fmt.Errorf("%w: -input has %d values, network expects %d", nn.ErrDimension, len(inputs), net.InputSize())
	}
	if len(targets) != net.OutputSize() {
		return fmt.Errorf("%w: -target has %d values, network expects %d", nn.ErrDimension, len(targets), net.OutputSize())
	}

	fmt.Fprintf(w, "Network %d-%d-%d, learning rate %g\n",
		net.InputSize(), net.HiddenSize(), net.OutputSize(), net.LearningRate())
	printParameters(w, net)

	if *query {
		out, err := net.Query(inputs)
		if err != nil {
			return fmt.Errorf("query: %w", err)
		}
		fmt.Fprintf(w, "\nQuery before training: %v\n", out)
	}

	if err := net.Train(inputs, targets); err != nil {
		return fmt.Errorf("train: %w", err)
	}
	fmt.Fprintln(w, "\nAfter one training step:")
	printParameters(w, net)

	if *query {
		out, err := net.Query(inputs)
		if err != nil {
			return fmt.Errorf("query: %w", err)
		}
		fmt.Fprintf(w, "\nQuery after training: %v\n", out)
	}
	return nil
}

func printParameters(w io.Writer, net *nn.Network) {
	for _, p := range net.Parameters() {
		fmt.Fprintf(w, "%s %v:\n%v\n", p.Name(), p.Shape(), p.Tensor())
	}
}

func parseVector(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
