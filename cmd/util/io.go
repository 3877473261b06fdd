package util

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// ReadLines returns the trimmed non-empty lines of r.
func ReadLines(r io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); len(line) > 0 {
			lines = append(lines, line)
		}
	}
	Assert(scanner.Err(), "Could not read lines")
	return lines
}

// Inputs returns the positional arguments. A single '-' means the arguments
// are read from stdin, one per line.
func Inputs() []string {
	if NArg() == 1 && Arg(0) == "-" {
		return ReadLines(os.Stdin)
	}
	return Args()
}

func CreateFile(path string) *os.File {
	f, err := os.Create(path)
	Assert(err, "Could not create file '%s'", path)
	return f
}
