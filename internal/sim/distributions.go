package sim

import (
	"math"

	"github.com/rddlgo/rddlgo/internal/ast"
	rerrors "github.com/rddlgo/rddlgo/internal/errors"
)

// evalRandomVar draws one sample per evaluation from the simulator's single
// PRNG stream (§4.2 "Random variables draw once per evaluation from a
// single PRNG stream owned by the simulator").
func (s *Simulator) evalRandomVar(n *ast.RandomVar, primed map[string]any) (any, error) {
	vals, err := s.evalAll(n.Args, primed)
	if err != nil {
		return nil, err
	}

	switch n.Dist {
	case "KronDelta", "DiracDelta":
		return vals[0], nil

	case "Bernoulli":
		p := toFloat(vals[0])
		return s.rng.Float64() < p, nil

	case "Normal":
		mean, variance := toFloat(vals[0]), toFloat(vals[1])
		return mean + math.Sqrt(variance)*s.rng.NormFloat64(), nil

	case "Uniform":
		lo, hi := toFloat(vals[0]), toFloat(vals[1])
		return lo + (hi-lo)*s.rng.Float64(), nil

	case "Poisson":
		return s.samplePoisson(toFloat(vals[0])), nil

	case "Gamma":
		shape, scale := toFloat(vals[0]), toFloat(vals[1])
		return s.sampleGamma(shape, scale), nil

	case "Discrete":
		return s.sampleDiscrete(vals)

	default:
		return nil, rerrors.WrapReport(rerrors.New(rerrors.SIM002, "unsupported random variable family %q", n.Dist))
	}
}

// samplePoisson uses Knuth's multiplicative algorithm; adequate for the
// small rates a planning domain's CPFs draw (it is not used on the fuzzy
// relaxation path, which rejects Poisson outright per §4.4).
func (s *Simulator) samplePoisson(rate float64) float64 {
	l := math.Exp(-rate)
	k := 0
	p := 1.0
	for {
		k++
		p *= s.rng.Float64()
		if p <= l {
			return float64(k - 1)
		}
	}
}

// sampleGamma implements the Marsaglia-Tsang method for shape >= 1; shape <
// 1 is boosted via the standard x = y * u^(1/shape) transform.
func (s *Simulator) sampleGamma(shape, scale float64) float64 {
	if shape < 1 {
		u := s.rng.Float64()
		return s.sampleGamma(shape+1, scale) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		x := s.rng.NormFloat64()
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := s.rng.Float64()
		if u < 1-0.0331*(x*x)*(x*x) {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// sampleDiscrete samples an index according to the normalized weight
// vector; negative weights raise InvalidDistribution (§4.2).
func (s *Simulator) sampleDiscrete(weights []any) (any, error) {
	total := 0.0
	ws := make([]float64, len(weights))
	for i, w := range weights {
		f := toFloat(w)
		if f < 0 {
			return nil, rerrors.WrapReport(rerrors.New(rerrors.SIM002, "Discrete distribution has a negative weight at index %d", i))
		}
		ws[i] = f
		total += f
	}
	if total == 0 {
		return nil, rerrors.WrapReport(rerrors.New(rerrors.SIM002, "Discrete distribution weights sum to zero"))
	}

	r := s.rng.Float64() * total
	cum := 0.0
	for i, w := range ws {
		cum += w
		if r < cum {
			return int64(i), nil
		}
	}
	return int64(len(ws) - 1), nil
}
