package maxword

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Collapssar/maxwordlength/corpus"
	"github.com/Collapssar/maxwordlength/mr"
	"github.com/Collapssar/maxwordlength/wordset"
)

type Config struct {
	mr.Config
	LinesPerSplit int
}

func DefaultConfig() Config {
	return Config{
		Config:        mr.DefaultConfig(),
		LinesPerSplit: 1000,
	}
}

// Map emits the longest word of one line keyed by its length.
func Map(_ string, line string) []mr.KeyValue {
	c, ok := LongestWord(line)
	if !ok {
		return nil
	}
	return []mr.KeyValue{{Key: strconv.Itoa(c.Length), Value: c.Word}}
}

// Reduce merges words and serialized partial sets of one length into a
// serialized set. Its output is valid input to itself, so it doubles as
// the combiner.
func Reduce(key string, values []string) (string, error) {
	length, err := strconv.Atoi(key)
	if err != nil {
		return "", fmt.Errorf("bad length key %q: %w", key, err)
	}
	set := wordset.New()
	for _, v := range values {
		if err := addValue(set, length, v); err != nil {
			return "", err
		}
	}
	return set.String(), nil
}

func Job() mr.Job {
	return mr.Job{Map: Map, Combine: Reduce, Reduce: Reduce}
}

// Aggregate runs the job over splits and merges every reduce partition's
// output into a new Aggregator.
func Aggregate(splits []mr.Split, cfg Config) (*Aggregator, error) {
	out, err := mr.Run(Job(), splits, cfg.Config)
	if err != nil {
		return nil, err
	}
	agg := NewAggregator()
	for _, kv := range out {
		length, err := strconv.Atoi(kv.Key)
		if err != nil {
			return nil, fmt.Errorf("bad length key %q: %w", kv.Key, err)
		}
		if err := agg.MergeValue(length, kv.Value); err != nil {
			return nil, err
		}
	}
	logrus.WithField("groups", len(out)).Debug("aggregated reduce output")
	return agg, nil
}

// Process scans splits and returns the longest words. It fails with
// ErrEmptyCorpus if no line had a qualifying word.
func Process(splits []mr.Split, cfg Config) (Result, error) {
	agg, err := Aggregate(splits, cfg)
	if err != nil {
		return Result{}, err
	}
	return agg.Finalize()
}

// ProcessLines is Process over an in-memory corpus.
func ProcessLines(lines []string, cfg Config) (Result, error) {
	return Process(corpus.FromLines("lines", lines, cfg.LinesPerSplit), cfg)
}
