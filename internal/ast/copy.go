package ast

// Copy produces a structural deep copy of an expression tree. The grounder
// calls this before rewriting a CPF prototype so lifted CPF bodies can be
// shared across every grounded instance of a pvariable without aliasing
// (§4.1, §9 "Shared CPF prototypes").
func Copy(e Expr) Expr {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *Constant:
		c := *n
		return &c
	case *PVar:
		p := *n
		p.Args = append([]string(nil), n.Args...)
		return &p
	case *Arithmetic:
		a := *n
		a.Children = copyAll(n.Children)
		return &a
	case *Boolean:
		b := *n
		b.Children = copyAll(n.Children)
		return &b
	case *Relational:
		r := *n
		r.Children = copyAll(n.Children)
		return &r
	case *Aggregation:
		a := *n
		a.Vars = append([]TypedVar(nil), n.Vars...)
		a.Body = Copy(n.Body)
		return &a
	case *Control:
		c := *n
		c.Cond = Copy(n.Cond)
		c.Then = Copy(n.Then)
		c.Else = Copy(n.Else)
		return &c
	case *Func:
		f := *n
		f.Args = copyAll(n.Args)
		return &f
	case *RandomVar:
		r := *n
		r.Args = copyAll(n.Args)
		return &r
	default:
		return e
	}
}

func copyAll(es []Expr) []Expr {
	if es == nil {
		return nil
	}
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = Copy(e)
	}
	return out
}

// Children returns the immediate child expressions of e, in evaluation
// order, or nil for leaves (Constant, PVar). Used by generic tree walks
// (cycle detection, the fuzzy compiler's distribution check) that do not care about the
// specific operator.
func Children(e Expr) []Expr {
	switch n := e.(type) {
	case *Arithmetic:
		return n.Children
	case *Boolean:
		return n.Children
	case *Relational:
		return n.Children
	case *Aggregation:
		return []Expr{n.Body}
	case *Control:
		return []Expr{n.Cond, n.Then, n.Else}
	case *Func:
		return n.Args
	case *RandomVar:
		return n.Args
	default:
		return nil
	}
}

// Walk calls visit for e and every descendant, pre-order.
func Walk(e Expr, visit func(Expr)) {
	if e == nil {
		return
	}
	visit(e)
	for _, c := range Children(e) {
		Walk(c, visit)
	}
}
