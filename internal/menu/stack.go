package menu

import (
	"errors"
	"fmt"

	"front-auditor/internal/apperr"
)

var ErrEmptyStack = errors.New("menu stack is already empty")

// Stack holds the open screens, Home at the bottom.
type Stack struct {
	screens []Screen
}

func (s *Stack) Push(kind Kind) error {
	if _, ok := kindNames[kind]; !ok {
		return apperr.New(apperr.KindInvalidMenuType, "push", fmt.Errorf("invalid menu type %s", kind))
	}
	s.screens = append(s.screens, Screen{Kind: kind})
	return nil
}

func (s *Stack) Pop() error {
	if len(s.screens) == 0 {
		return ErrEmptyStack
	}
	s.screens = s.screens[:len(s.screens)-1]
	return nil
}

func (s *Stack) Peek() (Screen, bool) {
	if len(s.screens) == 0 {
		return Screen{}, false
	}
	return s.screens[len(s.screens)-1], true
}

func (s *Stack) Len() int {
	return len(s.screens)
}

func (s *Stack) IsEmpty() bool {
	return len(s.screens) == 0
}

// Kinds returns the kinds from bottom to top.
func (s *Stack) Kinds() []Kind {
	out := make([]Kind, len(s.screens))
	for i, screen := range s.screens {
		out[i] = screen.Kind
	}
	return out
}
