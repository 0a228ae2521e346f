// Package corpus turns text files into map splits.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Collapssar/maxwordlength/mr"
)

const readBufSize = 256 << 10

// FromLines cuts lines into splits of at most linesPerSplit lines each.
// linesPerSplit <= 0 puts every line into one split.
func FromLines(name string, lines []string, linesPerSplit int) []mr.Split {
	if len(lines) == 0 {
		return nil
	}
	if linesPerSplit <= 0 || linesPerSplit >= len(lines) {
		return []mr.Split{{Name: name, Lines: lines, FirstLine: 1}}
	}
	var splits []mr.Split
	for start := 0; start < len(lines); start += linesPerSplit {
		end := start + linesPerSplit
		if end > len(lines) {
			end = len(lines)
		}
		splits = append(splits, mr.Split{
			Name:      name + "#" + strconv.Itoa(len(splits)),
			Lines:     lines[start:end],
			FirstLine: start + 1,
		})
	}
	return splits
}

// Load cuts every file in paths into splits of at most linesPerSplit
// lines. Only split boundaries are kept in memory; the lines themselves
// are read by the map task that owns the split.
func Load(paths []string, linesPerSplit int) ([]mr.Split, error) {
	var splits []mr.Split
	for _, path := range paths {
		fileSplits, lines, err := index(path, linesPerSplit)
		if err != nil {
			return nil, err
		}
		logrus.WithFields(logrus.Fields{
			"file":   path,
			"lines":  lines,
			"splits": len(fileSplits),
		}).Debug("indexed input")
		splits = append(splits, fileSplits...)
	}
	return splits, nil
}

// index scans path once and records the byte range of every split.
func index(path string, linesPerSplit int) ([]mr.Split, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot open %v: %w", path, err)
	}
	defer f.Close()
	adviseSequential(f)

	var splits []mr.Split
	emit := func(start, end int64, first int) {
		splits = append(splits, mr.Split{
			Name:      path + "#" + strconv.Itoa(len(splits)),
			Path:      path,
			Offset:    start,
			Size:      end - start,
			FirstLine: first,
		})
	}

	r := bufio.NewReaderSize(f, readBufSize)
	var off, lineStart, splitStart int64
	total, inSplit := 0, 0
	for {
		chunk, err := r.ReadSlice('\n')
		off += int64(len(chunk))
		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil && err != io.EOF {
			return nil, 0, fmt.Errorf("cannot read %v: %w", path, err)
		}
		if off > lineStart {
			total++
			inSplit++
			lineStart = off
			if linesPerSplit > 0 && inSplit == linesPerSplit {
				emit(splitStart, off, total-inSplit+1)
				splitStart, inSplit = off, 0
			}
		}
		if err == io.EOF {
			break
		}
	}
	if inSplit > 0 {
		emit(splitStart, off, total-inSplit+1)
	}
	if len(splits) == 1 {
		splits[0].Name = path
	}
	return splits, total, nil
}
