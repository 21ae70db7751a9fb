package service

import "strings"

// Command identifies a recognized control input. Anything that is not a
// recognized command is an ordinary conversational turn.
type Command int

const (
	CommandNone Command = iota
	CommandGetPersonality
	CommandRegenPersonality
	CommandExportSummary
)

// ParseCommand resolves a raw input string to a control command.
// Matching is exact and case-insensitive.
func ParseCommand(input string) Command {
	switch strings.ToLower(input) {
	case "get_personality":
		return CommandGetPersonality
	case "regen_personality":
		return CommandRegenPersonality
	case "export_summary":
		return CommandExportSummary
	default:
		return CommandNone
	}
}
