package menu

import (
	"context"
	"errors"
	"fmt"
)

// ErrAborted is returned by a Prompter when the user cancels a prompt or
// input ends.
var ErrAborted = errors.New("prompt aborted")

// Prompter is the interactive input a screen blocks on.
type Prompter interface {
	Select(ctx context.Context, header, question string, options []string) (string, error)
	Confirm(ctx context.Context, question string) (bool, error)
	ClearScreen()
}

type Kind int

const (
	KindUnknown Kind = iota
	KindHome
	KindReportCategory
	KindConfirmPrompt
)

var kindNames = map[Kind]string{
	KindHome:           "Home",
	KindReportCategory: ChoiceReports,
	KindConfirmPrompt:  "Confirmar",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return name
}

// KindFor returns the screen pushed when the category choice is picked.
func KindFor(choice string) Kind {
	for kind, name := range kindNames {
		if name == choice {
			return kind
		}
	}
	return KindUnknown
}

// Screen is one entry of the menu stack.
type Screen struct {
	Kind Kind
}

// PromptChoice shows the screen and blocks until the user picks an option.
// username is shown on the home header, empty when there is no session.
func (s Screen) PromptChoice(ctx context.Context, p Prompter, username string) (string, error) {
	switch s.Kind {
	case KindHome:
		label := username
		if label == "" {
			label = NoSessionLabel
		}
		return p.Select(ctx, fmt.Sprintf("Front 2 Go TOOLS (%s)", label), "Elije una opcion:", HomeOptions)
	case KindReportCategory:
		return p.Select(ctx, "", "Elija un tipo de reporte:", ReportOptions)
	case KindConfirmPrompt:
		ok, err := p.Confirm(ctx, "Confirmar?")
		if err != nil {
			return "", err
		}
		if ok {
			return ChoiceYes, nil
		}
		return ChoiceNo, nil
	}
	panic(fmt.Sprintf("prompt on unknown screen %s", s.Kind))
}
