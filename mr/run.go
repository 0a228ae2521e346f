package mr

import (
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Run executes job over splits on cfg.Workers goroutines and returns the
// reduce output of every partition, sorted by key. The first failing task
// aborts the run and its error is returned.
func Run(job Job, splits []Split, cfg Config) ([]KeyValue, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := job.validate(); err != nil {
		return nil, err
	}
	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"splits":  len(splits),
		"workers": cfg.Workers,
		"nreduce": cfg.NReduce,
	}).Info("starting job")

	m := MakeMaster(splits, cfg.NReduce)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			Worker(id, m, job, cfg.OutputDir)
		}(i)
	}
	wg.Wait()

	if err := m.Err(); err != nil {
		return nil, err
	}
	out := m.Output()
	logrus.WithField("keys", len(out)).Info("job finished")
	return out, nil
}
