package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Collapssar/maxwordlength/mr"
)

type numbered struct {
	n    int
	line string
}

func readSplit(t *testing.T, s mr.Split) []numbered {
	t.Helper()
	var out []numbered
	require.NoError(t, s.Each(func(n int, line string) {
		out = append(out, numbered{n, line})
	}))
	return out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromLines(t *testing.T) {
	lines := []string{"1", "2", "3", "4", "5"}

	splits := FromLines("in", lines, 2)
	require.Len(t, splits, 3)
	require.Equal(t, "in#0", splits[0].Name)
	require.Equal(t, []string{"1", "2"}, splits[0].Lines)
	require.Equal(t, []string{"5"}, splits[2].Lines)
	require.Equal(t, []numbered{{5, "5"}}, readSplit(t, splits[2]))

	splits = FromLines("in", lines, 0)
	require.Len(t, splits, 1)
	require.Equal(t, "in", splits[0].Name)
	require.Equal(t, lines, splits[0].Lines)

	require.Empty(t, FromLines("in", nil, 2))
}

func TestLoad(t *testing.T) {
	a := writeFile(t, "a.txt", "one\ntwo\nthree\n")
	b := writeFile(t, "b.txt", "four")

	splits, err := Load([]string{a, b}, 2)
	require.NoError(t, err)
	require.Len(t, splits, 3)
	for _, s := range splits {
		require.Empty(t, s.Lines, "file splits are read by the map task")
	}
	require.Equal(t, a+"#0", splits[0].Name)
	require.Equal(t, []numbered{{1, "one"}, {2, "two"}}, readSplit(t, splits[0]))
	require.Equal(t, []numbered{{3, "three"}}, readSplit(t, splits[1]))
	require.Equal(t, b, splits[2].Name)
	require.Equal(t, []numbered{{1, "four"}}, readSplit(t, splits[2]))
}

func TestLoadWholeFile(t *testing.T) {
	path := writeFile(t, "crlf.txt", "one\r\n\r\nthree\r\n")

	splits, err := Load([]string{path}, 0)
	require.NoError(t, err)
	require.Len(t, splits, 1)
	require.Equal(t, path, splits[0].Name)
	require.Equal(t, []numbered{{1, "one"}, {2, ""}, {3, "three"}}, readSplit(t, splits[0]))
}

func TestLoadLongLine(t *testing.T) {
	long := strings.Repeat("word ", 300_000) // 1.5 MB, bigger than the read buffer
	path := writeFile(t, "big.txt", "short\n"+long+"\nend")

	splits, err := Load([]string{path}, 1)
	require.NoError(t, err)
	require.Len(t, splits, 3)

	got := readSplit(t, splits[1])
	require.Len(t, got, 1)
	require.Equal(t, 2, got[0].n)
	require.Equal(t, long, got[0].line)
	require.Equal(t, []numbered{{3, "end"}}, readSplit(t, splits[2]))
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.txt", "")

	splits, err := Load([]string{path}, 10)
	require.NoError(t, err)
	require.Empty(t, splits)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load([]string{filepath.Join(t.TempDir(), "nope.txt")}, 10)
	require.ErrorIs(t, err, os.ErrNotExist)
}
