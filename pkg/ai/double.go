package ai

import "context"

// Scripted is a deterministic Generator for tests and offline use.
type Scripted struct {
	Text     string
	TextErr  error
	Image    []byte
	ImageErr error

	TextCalls  int
	ImageCalls int
	Prompts    []string
}

var _ Generator = (*Scripted)(nil)

func (s *Scripted) GenerateText(_ context.Context, prompt string) (string, error) {
	s.TextCalls++
	s.Prompts = append(s.Prompts, prompt)
	if s.TextErr != nil {
		return "", s.TextErr
	}
	return s.Text, nil
}

func (s *Scripted) GenerateImage(_ context.Context, prompt string, _ string) ([]byte, error) {
	s.ImageCalls++
	s.Prompts = append(s.Prompts, prompt)
	if s.ImageErr != nil {
		return nil, s.ImageErr
	}
	return s.Image, nil
}
