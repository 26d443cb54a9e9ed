package models

import "strings"

// CommandType enumerates the chat commands understood by the dispatcher.
type CommandType string

const (
	CommandAdd     CommandType = "add"
	CommandSell    CommandType = "sell"
	CommandPrice   CommandType = "price"
	CommandDelete  CommandType = "delete"
	CommandStock   CommandType = "stock"
	CommandSearch  CommandType = "search"
	CommandStats   CommandType = "stats"
	CommandHelp    CommandType = "help"
	CommandUnknown CommandType = "unknown"
)

// Command represents a parsed instruction extracted from a chat message.
type Command struct {
	Type CommandType
	Raw  string
	// Rest is the text after the command word, trimmed.
	Rest string
	Args []string
}

// ParseCommand derives a Command from a free-form text message such as
// "/sell 01HV... 25". The command word is case-insensitive and the leading
// slash optional; arguments keep their case.
func ParseCommand(message string) Command {
	cmd := Command{Type: CommandUnknown, Raw: message}

	tokens := strings.Fields(message)
	if len(tokens) == 0 {
		return cmd
	}

	head := strings.ToLower(strings.TrimPrefix(tokens[0], "/"))
	switch t := CommandType(head); t {
	case CommandAdd, CommandSell, CommandPrice, CommandDelete, CommandStock, CommandSearch, CommandStats, CommandHelp:
		cmd.Type = t
	case "reprice":
		cmd.Type = CommandPrice
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
		cmd.Rest = strings.TrimSpace(strings.TrimSpace(message)[len(tokens[0]):])
	}
	return cmd
}
