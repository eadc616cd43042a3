// Command sortmatch loads a dataset and computes its update-subscription
// overlap matrix, printing it with -print-matrix and otherwise logging
// only its shape and checksum. It is a thin collaborator around package matching: no
// random dataset generation, timing output, or OpenCL offload (those
// belong to tooling outside this library, not the core algorithm).
package main

import (
	"flag"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/sortmatch/datasetio"
	"github.com/grailbio/sortmatch/matching"
	"v.io/x/lib/vlog"
)

var (
	input    = flag.String("input", "", "dataset path (local or remote, gzip auto-detected)")
	combine  = flag.String("combine", "two-matrix", "combine mode: two-matrix or in-place")
	parallel = flag.String("parallel", "sequential", "parallel mode: sequential or threaded")
	widen    = flag.Bool("superset", false, "widen endpoints so touching extents overlap")
	verbose  = flag.Bool("print-matrix", false, "print the result matrix as 0/1 rows")
)

func parseConfig() matching.Config {
	var cfg matching.Config
	switch *combine {
	case "two-matrix":
		cfg.Combine = matching.TwoMatrix
	case "in-place":
		cfg.Combine = matching.InPlace
	default:
		vlog.Fatalf("unknown -combine value %q", *combine)
	}
	switch *parallel {
	case "sequential":
		cfg.Parallel = matching.Sequential
	case "threaded":
		cfg.Parallel = matching.PerDimensionThread
	default:
		vlog.Fatalf("unknown -parallel value %q", *parallel)
	}
	if *widen {
		cfg.Widen = matching.Superset
	}
	return cfg
}

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if *input == "" {
		vlog.Fatal("-input is required")
	}

	ds, err := datasetio.LoadDatasetFromPath[int32](*input, nil)
	if err != nil {
		vlog.Fatalf("loading dataset: %v", err)
	}

	cfg := parseConfig()
	out, err := matching.SortMatching(ds, cfg)
	if err != nil {
		vlog.Fatalf("sort matching: %v", err)
	}

	if *verbose {
		os.Stdout.WriteString(out.String())
		return
	}
	vlog.Infof("computed %dx%d overlap matrix, checksum=%x", out.Rows, out.Cols, out.Checksum())
}
