package prompt

import (
	"github.com/charmbracelet/huh"
)

// HuhPrompter implements Prompter using the charmbracelet/huh library.
type HuhPrompter struct{}

// NewHuhPrompter creates a new huh-based prompter.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{}
}

func (p *HuhPrompter) Select(title string, options []string) (int, error) {
	result := -1

	opts := make([]huh.Option[int], len(options))
	for i, opt := range options {
		opts[i] = huh.NewOption(opt, i)
	}

	err := huh.NewSelect[int]().
		Title(title).
		Options(opts...).
		Value(&result).
		Run()

	return result, err
}

func (p *HuhPrompter) Input(title string, placeholder string) (string, error) {
	var result string

	err := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&result).
		Run()

	return result, err
}

func (p *HuhPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	result := defaultValue

	err := huh.NewConfirm().
		Title(title).
		Value(&result).
		Run()

	return result, err
}
