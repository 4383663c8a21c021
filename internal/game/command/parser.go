package command

import (
	"strconv"
	"strings"
)

// ParseResult holds the parsed command name and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
	// RawArgs is the trimmed text after the command, e.g. a dungeon name
	// that contains spaces.
	RawArgs string
}

// Parse splits a text line into a command and arguments. Only the command
// word is lowercased; names in the arguments keep their case.
//
// Postcondition: If line is blank, Command is empty.
func Parse(line string) ParseResult {
	word, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	if word == "" {
		return ParseResult{}
	}
	rest = strings.TrimSpace(rest)
	return ParseResult{
		Command: strings.ToLower(word),
		Args:    nonEmpty(strings.Fields(rest)),
		RawArgs: rest,
	}
}

func nonEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

// Index reads the first argument as a 1-based position in a list of n
// entries and returns it 0-based.
//
// Postcondition: ok is false unless the argument is a number in [1, n].
func (p ParseResult) Index(n int) (i int, ok bool) {
	if len(p.Args) == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimPrefix(p.Args[0], "#"))
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}
