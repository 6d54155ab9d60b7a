package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"front-auditor/internal/apperr"
	"front-auditor/internal/outcome"
	"front-auditor/lib/telemetry"
)

const (
	report_navigator_handle = "navigator.handle_choice"
	report_navigator_pop    = "navigator.pop"
)

// Operations classifies and performs menu choices.
type Operations interface {
	Classify(choice string) (Category, error)
	Perform(ctx context.Context, choice string) outcome.Result
}

// Session tells the navigator whether actions are allowed.
type Session interface {
	IsAuthenticated() bool
	Username() string
}

// Reporter displays results to the user.
type Reporter interface {
	Report(result outcome.Result)
}

type NavigatorOptions struct {
	Operations Operations
	Session    Session
	Prompter   Prompter
	Reporter   Reporter
	Telemetry  telemetry.API
}

// Navigator drives the menu stack: it reads a choice from the top screen,
// then pushes, pops or runs an action until the stack is empty.
type Navigator struct {
	stack    Stack
	ops      Operations
	session  Session
	prompter Prompter
	reporter Reporter
	tel      telemetry.API
}

func NewNavigator(opts NavigatorOptions) *Navigator {
	return &Navigator{
		ops:      opts.Operations,
		session:  opts.Session,
		prompter: opts.Prompter,
		reporter: opts.Reporter,
		tel:      opts.Telemetry,
	}
}

func (n *Navigator) IsFinalized() bool {
	return n.stack.IsEmpty()
}

func (n *Navigator) ReadChoice(ctx context.Context) (string, error) {
	top, ok := n.stack.Peek()
	if !ok {
		return "", ErrEmptyStack
	}
	return top.PromptChoice(ctx, n.prompter, n.session.Username())
}

func (n *Navigator) report(result outcome.Result) *outcome.Result {
	n.reporter.Report(result)
	return &result
}

// popTop pops the top screen unless it is the root.
func (n *Navigator) popTop() {
	if n.stack.Len() <= 1 {
		return
	}
	err := n.stack.Pop()
	if err != nil {
		n.tel.ReportBroken(report_navigator_pop, err)
	}
}

// HandleChoice applies one choice to the stack. It returns the result shown
// to the user, or nil when the choice only navigated. It never panics.
func (n *Navigator) HandleChoice(ctx context.Context, choice string) (result *outcome.Result) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		n.tel.ReportBroken(report_navigator_handle, r, choice)
		n.popTop()
		result = n.report(outcome.FromError(fmt.Errorf("handle %s: %v", choice, r)))
	}()

	if choice == ChoiceBack || choice == ChoiceExit {
		n.prompter.ClearScreen()
		err := n.stack.Pop()
		if err != nil {
			n.tel.ReportWarning(report_navigator_pop, err)
		}
		return nil
	}

	if choice != ChoiceLogin && !n.session.IsAuthenticated() {
		n.prompter.ClearScreen()
		return n.report(outcome.Informative(LoginFirstNotice))
	}

	category, err := n.ops.Classify(choice)
	if errors.Is(err, apperr.ErrInvalidChoice) {
		return n.report(outcome.FromError(err))
	}
	if err != nil {
		n.tel.ReportBroken(report_navigator_handle, err, choice)
		n.popTop()
		return n.report(outcome.FromError(err))
	}

	if category == Categories || category == SubCategories {
		err = n.stack.Push(KindFor(choice))
		if err != nil {
			n.tel.ReportBroken(report_navigator_handle, err, choice)
			n.popTop()
			return n.report(outcome.FromError(err))
		}
		return nil
	}

	err = n.stack.Push(KindConfirmPrompt)
	if err != nil {
		panic(err)
	}
	answer, err := n.ReadChoice(ctx)
	if err != nil || answer != ChoiceYes {
		n.popTop()
		return nil
	}

	res := n.ops.Perform(ctx, choice)
	n.popTop()
	return n.report(res)
}

// Run pushes the home screen and loops until the stack is empty or input
// ends.
func (n *Navigator) Run(ctx context.Context) error {
	err := n.stack.Push(KindHome)
	if err != nil {
		return err
	}

	for !n.IsFinalized() {
		choice, err := n.ReadChoice(ctx)
		if errors.Is(err, ErrAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read choice: %w", err)
		}
		n.HandleChoice(ctx, choice)
	}
	return nil
}
