package repl

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rddlgo/rddlgo/internal/rlenv"
)

// HandleCommand processes REPL commands.
func (r *REPL) HandleCommand(cmd string, out io.Writer) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case ":help", ":h":
		r.printHelp(out)

	case ":quit", ":q", ":exit":
		fmt.Fprintln(out, green("Goodbye!"))
		// Exit is handled by caller

	case ":reset":
		obs, err := r.env.Reset()
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			return
		}
		fmt.Fprintln(out, yellow("episode reset"))
		r.printObservation(out, obs)

	case ":spaces":
		r.printSpaces(out)

	case ":history":
		for i, h := range r.history {
			fmt.Fprintf(out, "%d: %s\n", i, h)
		}

	default:
		fmt.Fprintf(out, "unknown command %q, type :help\n", parts[0])
	}
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, cyan("Commands:"))
	fmt.Fprintln(out, "  :help              show this message")
	fmt.Fprintln(out, "  :reset             reset the episode")
	fmt.Fprintln(out, "  :spaces            print action/observation spaces")
	fmt.Fprintln(out, "  :history           print input history")
	fmt.Fprintln(out, "  :quit              exit")
	fmt.Fprintln(out, cyan("Stepping:"))
	fmt.Fprintln(out, "  flip=true count=3  step with these action overrides, others take default")
}

func (r *REPL) printSpaces(out io.Writer) {
	fmt.Fprintln(out, cyan("action space:"))
	printSpaceMap(out, r.env.ActionSpace())
	fmt.Fprintln(out, cyan("observation space:"))
	printSpaceMap(out, r.env.ObservationSpace())
}

func printSpaceMap(out io.Writer, spaces map[string]rlenv.Space) {
	names := make([]string, 0, len(spaces))
	for name := range spaces {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := spaces[name]
		switch s.Kind {
		case rlenv.KindDiscrete:
			fmt.Fprintf(out, "  %s: Discrete(%d, start=%d)\n", name, s.N, s.Start)
		case rlenv.KindBox:
			fmt.Fprintf(out, "  %s: Box(%s, %s)\n", name, formatFloat(s.Low), formatFloat(s.High))
		}
	}
}
