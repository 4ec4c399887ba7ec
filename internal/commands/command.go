package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/lazyd/internal/model"
)

type Type string

const (
	TypeCategory Type = "category"
	TypeLevel    Type = "level"
	TypeGoal     Type = "goal"
	TypeReroll   Type = "reroll"
	TypeDone     Type = "done"
	TypeLog      Type = "log"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

type CategoryArgs struct {
	Category model.Category
}

type LevelArgs struct {
	Level int
}

type GoalArgs struct {
	Goal int
}

type Command struct {
	Type     Type
	Raw      string
	Category *CategoryArgs
	Level    *LevelArgs
	Goal     *GoalArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeCategory:
		return parseCategory(input, args)
	case TypeLevel:
		return parseLevel(input, args)
	case TypeGoal:
		return parseGoal(input, args)
	case TypeReroll, TypeDone, TypeLog:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseCategory(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "category requires one name"}
	}
	category, err := model.ParseCategory(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category: %s", args[0]), Err: err}
	}
	return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Category: category}}, nil
}

func parseLevel(raw string, args []string) (Command, error) {
	n, err := singleInt("level", args)
	if err != nil {
		return Command{}, err
	}
	if verr := model.ValidateLevel(n); verr != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "level must be between 1 and 5", Err: verr}
	}
	return Command{Type: TypeLevel, Raw: raw, Level: &LevelArgs{Level: n}}, nil
}

func parseGoal(raw string, args []string) (Command, error) {
	n, err := singleInt("goal", args)
	if err != nil {
		return Command{}, err
	}
	if verr := model.ValidateGoal(n); verr != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal must be positive", Err: verr}
	}
	return Command{Type: TypeGoal, Raw: raw, Goal: &GoalArgs{Goal: n}}, nil
}

func singleInt(name string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires one number", name)}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s is not a number: %s", name, args[0])}
	}
	return n, nil
}
