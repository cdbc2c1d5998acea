package sitemap

import (
	"errors"
	"slices"
)

// Prompter asks the user to pick one of several options.
type Prompter interface {
	Choose(message string, options []string) (string, error)
}

// Answers of the overwrite prompt.
const (
	ChoiceOverwrite = "Overwrite"
	ChoiceAbort     = "Abort"
)

// Select resolves the target sitemap, asking the prompter when several are configured.
func (s *Service) Select(name string, p Prompter) (string, error) {
	target, err := s.Resolve(name)
	if err == nil {
		return target, nil
	}

	var ambiguous *AmbiguousSelectionError
	if !errors.As(err, &ambiguous) || p == nil {
		return "", err
	}

	choice, err := p.Choose("Choose the sitemap to use", ambiguous.Candidates)
	if err != nil {
		return "", err
	}
	if !slices.Contains(ambiguous.Candidates, choice) {
		return "", ErrAborted
	}
	return choice, nil
}

// ConfirmOverwrite asks whether an existing sitemap may be replaced.
func ConfirmOverwrite(p Prompter, sitemapPath string) (bool, error) {
	if p == nil {
		return false, nil
	}
	choice, err := p.Choose("Sitemap "+sitemapPath+" already exists", []string{ChoiceOverwrite, ChoiceAbort})
	if err != nil {
		return false, err
	}
	return choice == ChoiceOverwrite, nil
}
