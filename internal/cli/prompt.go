package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/klauern/envsync/internal/sync"
)

// Prompter collects interactive answers from stdin for the plain-text
// prompt flow.
type Prompter struct {
	reader *bufio.Reader
}

// NewPrompter creates a prompter reading from stdin.
func NewPrompter() *Prompter {
	return &Prompter{
		reader: bufio.NewReader(os.Stdin),
	}
}

// Confirm asks a yes/no question and returns true for y/yes.
func (p *Prompter) Confirm(msg string) (bool, error) {
	fmt.Printf("%s (y/n): ", msg)

	response, err := p.reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PromptOverwrite asks how to handle existing variables: overwrite all of
// them, an explicit comma-separated subset, or nothing at all. Empty input
// at the subset prompt cancels without changes. The bool result reports
// cancellation.
func (p *Prompter) PromptOverwrite(conflicts []string) (sync.Selection, bool, error) {
	fmt.Printf("\nThe following variables already exist: %s\n", strings.Join(conflicts, ", "))

	all, err := p.Confirm("Do you want to overwrite all of them?")
	if err != nil {
		return sync.Selection{}, false, err
	}
	if all {
		return sync.SelectAll(), false, nil
	}

	fmt.Print("Enter the key(s) to overwrite (comma-separated), 'all' for every variable, or press Enter to cancel: ")
	response, err := p.reader.ReadString('\n')
	if err != nil {
		return sync.Selection{}, false, fmt.Errorf("failed to read input: %w", err)
	}

	response = strings.TrimSpace(response)
	if response == "" {
		return sync.Selection{}, true, nil
	}
	if strings.EqualFold(response, "all") {
		return sync.SelectAll(), false, nil
	}

	var keys []string
	for _, k := range strings.Split(response, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return sync.Selection{}, true, nil
	}
	return sync.SelectKeys(keys), false, nil
}
