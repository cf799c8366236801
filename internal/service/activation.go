package service

import (
	"context"
	"errors"
)

// ErrAlreadyActivated is returned when the start button was already pressed.
var ErrAlreadyActivated = errors.New("system already activated")

// Presser is a button that can be pressed in software.
type Presser interface {
	Press()
	IsPressed() bool
}

type ActivationService struct {
	button Presser
}

func NewActivationService(button Presser) *ActivationService {
	return &ActivationService{button: button}
}

func (s *ActivationService) Activate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.button == nil {
		return errors.New("activation button not available")
	}
	if s.button.IsPressed() {
		return ErrAlreadyActivated
	}
	s.button.Press()
	return nil
}
