package mr

import (
	"errors"
	"fmt"
	"runtime"
)

// Config controls how a job is executed.
type Config struct {
	Workers   int    // worker goroutines
	NReduce   int    // reduce partitions
	OutputDir string // if set, reduce tasks also write mr-out-<id> files here
}

func DefaultConfig() Config {
	return Config{
		Workers: runtime.NumCPU(),
		NReduce: 1,
	}
}

func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.NReduce < 1 {
		return fmt.Errorf("nreduce must be positive, got %d", c.NReduce)
	}
	return nil
}

func (j Job) validate() error {
	if j.Map == nil {
		return errors.New("job has no map function")
	}
	if j.Reduce == nil {
		return errors.New("job has no reduce function")
	}
	return nil
}
