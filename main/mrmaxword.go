package main

//
// find the longest words in a set of text files.
//
// go run mrmaxword.go [-workers N] [-nreduce N] [-lines N] [-out dir] [-v] inputfiles...
//

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Collapssar/maxwordlength/corpus"
	"github.com/Collapssar/maxwordlength/maxword"
)

func main() {
	cfg := maxword.DefaultConfig()
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of worker goroutines")
	flag.IntVar(&cfg.NReduce, "nreduce", cfg.NReduce, "number of reduce partitions")
	flag.IntVar(&cfg.LinesPerSplit, "lines", cfg.LinesPerSplit, "lines per map task (0 = one task per file)")
	flag.StringVar(&cfg.OutputDir, "out", "", "directory for per-partition reduce output")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mrmaxword [flags] inputfiles...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	logrus.SetOutput(os.Stderr)
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	files := flag.Args()
	splits, err := corpus.Load(files, cfg.LinesPerSplit)
	if err != nil {
		logrus.Fatal("Failed to load input: ", err)
	}

	agg, err := maxword.Aggregate(splits, cfg)
	if err != nil {
		logrus.Fatal("Failed to run job: ", err)
	}
	for _, g := range agg.Groups() {
		logrus.WithFields(logrus.Fields{
			"length": g.MaxLength,
			"words":  len(g.Words),
		}).Debug("length group")
	}

	result, err := agg.Finalize()
	source := strings.Join(files, ", ")
	if errors.Is(err, maxword.ErrEmptyCorpus) {
		fmt.Fprintf(os.Stderr, "No qualifying words found in %s.\n", source)
		os.Exit(1)
	} else if err != nil {
		logrus.Fatal(err)
	}

	fmt.Print(result.Summary(source))
	if cfg.OutputDir != "" {
		fmt.Printf("Per-length results were written to %s.\n", cfg.OutputDir)
	}
}
