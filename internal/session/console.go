package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LineReader supplies one line of user input at a time
type LineReader interface {
	// ReadLine returns the next line without its terminator. It returns
	// io.EOF once the input is exhausted.
	ReadLine() (string, error)
}

// LineWriter receives prompts and diagnostics
type LineWriter interface {
	WriteLine(line string)
}

// Console adapts a reader and writer pair to LineReader and LineWriter
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole creates a console over in and out
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// ReadLine implements LineReader. A final line without a newline is
// returned before io.EOF.
func (c *Console) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WriteLine implements LineWriter
func (c *Console) WriteLine(line string) {
	fmt.Fprintln(c.out, line)
}

// Prompt writes question and returns the trimmed answer
func Prompt(r LineReader, w LineWriter, question string) (string, error) {
	w.WriteLine(question)
	answer, err := r.ReadLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// ConfirmPrompt asks a yes/no question. Anything but y or yes, including end of
// input, counts as no.
func ConfirmPrompt(r LineReader, w LineWriter, question string) (bool, error) {
	answer, err := Prompt(r, w, question+" [y/N]:")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// lineWriterAdapter lets an io.Writer consumer report through a LineWriter
type lineWriterAdapter struct {
	w LineWriter
}

func (a lineWriterAdapter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		a.w.WriteLine(line)
	}
	return len(p), nil
}
