// Package repl implements an interactive stepper over an rlenv.Environment,
// grounded on internal/repl/repl.go's liner setup, colored-prompt
// conventions, and command-dispatch loop.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/rddlgo/rddlgo/internal/model"
	"github.com/rddlgo/rddlgo/internal/rlenv"
)

// Color functions for pretty output.
var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// REPL is an interactive stepper: each line is either a `:` command or a
// whitespace-separated list of `fluent=value` action assignments passed to
// the next step.
type REPL struct {
	env     *rlenv.Environment
	m       *model.Model
	history []string
	version string
}

// New constructs a REPL over a freshly built Environment for m.
func New(m *model.Model, seed uint64, enforceActionConstraints bool, version string) *REPL {
	if version == "" {
		version = "dev"
	}
	return &REPL{
		env:     rlenv.New(m, seed, enforceActionConstraints),
		m:       m,
		history: []string{},
		version: version,
	}
}

// Start begins the REPL session, reading from the terminal via liner and
// writing all output to out.
func (r *REPL) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), ".rddlsim_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s %s\n", bold("RDDLGO"), bold(r.version))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	obs, err := r.env.Reset()
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	r.printObservation(out, obs)

	line.SetCompleter(func(input string) (c []string) {
		if strings.HasPrefix(input, ":") {
			for _, cmd := range []string{":help", ":quit", ":reset", ":spaces", ":history"} {
				if strings.HasPrefix(cmd, input) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	for {
		prompt := fmt.Sprintf("rddl[h=%d]> ", r.m.Horizon)
		input, err := line.Prompt(prompt)
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if strings.HasPrefix(input, ":quit") || strings.HasPrefix(input, ":q") || strings.HasPrefix(input, ":exit") {
				fmt.Fprintln(out, green("Goodbye!"))
				break
			}
			r.HandleCommand(input, out)
			continue
		}

		r.step(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// step parses `name=value` pairs separated by whitespace and passes them to
// Environment.Step.
func (r *REPL) step(input string, out io.Writer) {
	actions := map[string]any{}
	for _, tok := range strings.Fields(input) {
		name, raw, ok := strings.Cut(tok, "=")
		if !ok {
			fmt.Fprintf(out, "%s: malformed action %q, want name=value\n", red("Error"), tok)
			return
		}
		actions[name] = parseValue(raw)
	}

	obs, reward, done, err := r.env.Step(actions)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}

	fmt.Fprintf(out, "%s %s\n", cyan("reward"), formatFloat(reward))
	r.printObservation(out, obs)
	if done {
		fmt.Fprintln(out, yellow("episode done"))
	}
}

func parseValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

func (r *REPL) printObservation(out io.Writer, obs map[string]any) {
	names := make([]string, 0, len(obs))
	for name := range obs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s = %v\n", name, obs[name])
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
