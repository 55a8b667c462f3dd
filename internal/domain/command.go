package domain

import "strings"

// Command — разобранная текстовая команда модерации.
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits message text on whitespace: the first token lower-cased
// is the command name, the rest are arguments. Returns ok=false for empty text.
func ParseCommand(text string) (Command, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Command{}, false
	}
	return Command{
		Name: strings.ToLower(fields[0]),
		Args: fields[1:],
	}, true
}
