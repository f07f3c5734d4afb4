package ground

import (
	"strings"

	"github.com/rddlgo/rddlgo/internal/ast"
	rerrors "github.com/rddlgo/rddlgo/internal/errors"
)

// checkLevelCycles is a supplemented validation not spelled out by the
// grounding contract itself: the same-level CPF read-order is left as an
// authorship contract (§9 Open Questions), but a CPF that depends on another
// CPF at its own stratification level can never be evaluated consistently
// regardless of read-order, so it is rejected here via Tarjan's strongly
// connected components algorithm over the per-level dependency graph.
func (g *Grounder) checkLevelCycles() error {
	for _, level := range g.m.Levels() {
		names := g.m.CPFOrder[level]
		if len(names) < 2 {
			continue
		}
		members := make(map[string]bool, len(names))
		for _, n := range names {
			members[n] = true
		}

		deps := make(map[string][]string, len(names))
		for _, n := range names {
			expr, ok := g.m.CPFs[n]
			if !ok {
				continue
			}
			var refs []string
			ast.Walk(expr, func(e ast.Expr) {
				pv, ok := e.(*ast.PVar)
				if !ok {
					return
				}
				if members[pv.Name] {
					refs = append(refs, pv.Name)
				}
			})
			deps[n] = refs
		}

		if cycle := findCycle(names, deps); cycle != nil {
			return rerrors.WrapReport(rerrors.New(rerrors.GRD004,
				"CPFs at the same stratification level form a dependency cycle: %s",
				strings.Join(cycle, " -> ")))
		}
	}
	return nil
}

// tarjan state for a single level's graph.
type tarjan struct {
	index   map[string]int
	low     map[string]int
	onStack map[string]bool
	stack   []string
	counter int
	deps    map[string][]string
	cycle   []string
}

func findCycle(names []string, deps map[string][]string) []string {
	t := &tarjan{
		index:   map[string]int{},
		low:     map[string]int{},
		onStack: map[string]bool{},
		deps:    deps,
	}
	for _, n := range names {
		if t.cycle != nil {
			break
		}
		if _, visited := t.index[n]; !visited {
			t.strongconnect(n)
		}
	}
	return t.cycle
}

func (t *tarjan) strongconnect(v string) {
	t.index[v] = t.counter
	t.low[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.deps[v] {
		if t.cycle != nil {
			return
		}
		if _, visited := t.index[w]; !visited {
			t.strongconnect(w)
			if t.low[w] < t.low[v] {
				t.low[v] = t.low[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.low[v] {
				t.low[v] = t.index[w]
			}
		}
	}

	if t.low[v] != t.index[v] {
		return
	}

	var scc []string
	for {
		n := len(t.stack) - 1
		w := t.stack[n]
		t.stack = t.stack[:n]
		t.onStack[w] = false
		scc = append(scc, w)
		if w == v {
			break
		}
	}
	if len(scc) > 1 {
		t.cycle = scc
	} else if len(scc) == 1 && contains(t.deps[scc[0]], scc[0]) {
		t.cycle = scc
	}
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
