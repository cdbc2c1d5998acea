package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"sitemap-manager/core/utils"
	"sitemap-manager/feature/sitemap"
)

// linePrompter asks questions on a terminal, one answer per line.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

var _ sitemap.Prompter = (*linePrompter)(nil)

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

// stdinPrompter returns a prompter on the process terminal, or nil when
// prompting was disabled with --yes.
func stdinPrompter() sitemap.Prompter {
	if yesConfirm {
		return nil
	}
	return newLinePrompter(os.Stdin, os.Stdout)
}

// Choose prints the numbered options and reads a number or an option name.
// An empty or unknown answer yields "".
func (p *linePrompter) Choose(message string, options []string) (string, error) {
	fmt.Fprintf(p.out, "\n%s:\n", message)
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o)
	}
	fmt.Fprint(p.out, "> ")

	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if n, ok := utils.ToInt(answer); ok {
		if n < 1 || n > len(options) {
			return "", nil
		}
		return options[n-1], nil
	}
	if slices.Contains(options, answer) {
		return answer, nil
	}
	return "", nil
}

// Confirm asks a yes/no question.
func (p *linePrompter) Confirm(message string) bool {
	fmt.Fprintf(p.out, "\n%s ", message)
	answer, err := p.readLine()
	if err != nil {
		return false
	}
	return utils.ToBool(answer)
}

func (p *linePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
