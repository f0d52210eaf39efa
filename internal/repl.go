package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/color"
	"github.com/peterh/liner"
)

const prompt = ">> "

// completionWords feeds tab completion: keywords plus the builtin registry.
var completionWords = []string{
	"let", "fn", "if", "else", "return", "true", "false",
	"len", "first", "last", "rest", "push", "puts",
}

// StartREPL runs the interactive loop: liner line editing with a history
// file, one persistent root environment across lines.
func StartREPL(out io.Writer, version string) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var words []string
		for _, w := range completionWords {
			if strings.HasPrefix(w, prefix) {
				words = append(words, w)
			}
		}
		return words
	})

	historyFile := filepath.Join(os.TempDir(), ".skink_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintf(out, "skink %s\n", version)
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit")

	env := NewEnvironment()

	for {
		input, err := line.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Fprintln(out, "^C")
				continue
			}
			fmt.Fprintln(out)
			return
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		if trimmed == "exit" || trimmed == "quit" {
			return
		}
		line.AppendHistory(input)

		result := Run(input, env)
		if !result.OK() {
			for _, msg := range result.Errors {
				fmt.Fprintln(out, color.Red(msg))
			}
			continue
		}
		if result.Value != nil {
			fmt.Fprintln(out, result.Value.Inspect())
		}
	}
}
