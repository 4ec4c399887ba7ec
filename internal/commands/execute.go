package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Category func(CategoryArgs) (Result, error)
	Level    func(LevelArgs) (Result, error)
	Goal     func(GoalArgs) (Result, error)
	Reroll   func() (Result, error)
	Done     func() (Result, error)
	Log      func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeCategory:
		if handlers.Category == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Category(*cmd.Category)
	case TypeLevel:
		if handlers.Level == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Level(*cmd.Level)
	case TypeGoal:
		if handlers.Goal == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Goal(*cmd.Goal)
	case TypeReroll:
		if handlers.Reroll == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Reroll()
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Done()
	case TypeLog:
		if handlers.Log == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Log()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
