package mr

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Split is the input of one map task. A split either holds its Lines in
// memory or names the byte range [Offset, Offset+Size) of the file at
// Path, which is read only when the task runs.
type Split struct {
	Name      string
	Lines     []string
	Path      string
	Offset    int64
	Size      int64
	FirstLine int // number of the split's first line, 1-based
}

// Each calls f with every line of the split and its line number.
// Lines have no length limit.
func (s Split) Each(f func(n int, line string)) error {
	first := s.FirstLine
	if first == 0 {
		first = 1
	}
	if s.Path == "" {
		for i, line := range s.Lines {
			f(first+i, line)
		}
		return nil
	}

	file, err := os.Open(s.Path)
	if err != nil {
		return fmt.Errorf("cannot open %v: %w", s.Path, err)
	}
	defer file.Close()
	adviseRange(file, s.Offset, s.Size)

	r := bufio.NewReader(io.NewSectionReader(file, s.Offset, s.Size))
	for n := first; ; n++ {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("cannot read %v: %w", s.Path, err)
		}
		if line == "" && err == io.EOF {
			return nil
		}
		f(n, trimEOL(line))
		if err == io.EOF {
			return nil
		}
	}
}

// trimEOL drops a trailing "\n" or "\r\n".
func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
