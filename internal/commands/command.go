// Package commands parses the TUI command palette grammar.
package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeSearch Type = "search"
	TypeFilter Type = "filter"
	TypeExport Type = "export"
	TypeImport Type = "import"
	TypeUndo   Type = "undo"
	TypeRedo   Type = "redo"
	TypeStats  Type = "stats"
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
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text string
}

type SearchArgs struct {
	// Query may be empty: an empty search resets the view to all tasks.
	Query string
}

type FilterArgs struct {
	Tag string
}

type ExportArgs struct {
	Path string
}

type ImportArgs struct {
	Path string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Search *SearchArgs
	Filter *FilterArgs
	Export *ExportArgs
	Import *ImportArgs
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
	case TypeAdd:
		return parseAdd(input, args)
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Query: strings.Join(args, " ")}}, nil
	case TypeFilter:
		return parseFilter(input, args)
	case TypeExport:
		return parsePath(TypeExport, input, args)
	case TypeImport:
		return parsePath(TypeImport, input, args)
	case TypeUndo:
		return Command{Type: TypeUndo, Raw: input}, nil
	case TypeRedo:
		return Command{Type: TypeRedo, Raw: input}, nil
	case TypeStats:
		return Command{Type: TypeStats, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	tag := strings.TrimSpace(strings.Join(args, " "))
	if tag == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires a tag"}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Tag: tag}}, nil
}

func parsePath(t Type, raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a file path", t)}
	}
	path := strings.TrimSpace(strings.Join(args, " "))
	cmd := Command{Type: t, Raw: raw}
	if t == TypeExport {
		cmd.Export = &ExportArgs{Path: path}
	} else {
		cmd.Import = &ImportArgs{Path: path}
	}
	return cmd, nil
}
