package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// confirm asks the user a yes/no question before a destructive action.
// It is a variable so non-interactive callers and tests can supply a
// fixed answer.
var confirm = func(question string, def bool) bool {
	return askYesNo(os.Stdin, question, def)
}

// askYesNo reads a y/n answer from r, re-prompting on anything else.
// An empty answer (or read failure) takes the default.
func askYesNo(r io.Reader, question string, def bool) bool {
	choices := "[Y/n]"
	defaultChoice := "Y"
	if !def {
		choices = "[y/N]"
		defaultChoice = "N"
	}

	reader := bufio.NewReader(r)
	fmt.Printf("%s %s ", question, choices)
	for {
		input, err := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(input))
		switch answer {
		case "y":
			return true
		case "n":
			return false
		case "":
			if err == nil {
				return def
			}
		}
		if err != nil {
			return def
		}
		fmt.Printf(" ?? %s (or press enter for %s) ", choices, defaultChoice)
	}
}
