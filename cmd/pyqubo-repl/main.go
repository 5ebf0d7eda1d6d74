// Copyright 2024 The PyQUBO-Go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// pyqubo-repl is a thin demonstration CLI: pick one of the library's
// canonical example Hamiltonians by name, compile it, and print its
// compiled QUBO (or a decoded sample's energy breakdown) as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/pyqubo-go/pyqubo/coeffalgebra"
	"github.com/pyqubo-go/pyqubo/compilepkg"
	"github.com/pyqubo-go/pyqubo/decode"
	"github.com/pyqubo-go/pyqubo/expr"
	"github.com/pyqubo-go/pyqubo/model"
)

func main() {
	scenario := flag.String("scenario", "", "one of: partition, placeholder, constraint, reduce, roundtrip, subh")
	verbose := flag.Bool("v", false, "enable debug-level compile logging to stderr")
	flag.Parse()

	log := zerolog.Nop()
	if *verbose {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().
			Level(zerolog.DebugLevel)
	}

	if *scenario == "" {
		printUsage()
		os.Exit(1)
	}

	out, err := run(*scenario, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pyqubo-repl: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "pyqubo-repl: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pyqubo-repl - demonstrates the compile pipeline on canonical examples

USAGE:
    pyqubo-repl -scenario <name> [-v]

SCENARIOS:
    partition     number partitioning H=(a-b)^2
    placeholder   placeholder reuse across two bindings of the same model
    constraint    constraint detection via one_hot((a+b-1)^2)
    reduce        order reduction of a degree-3 term
    roundtrip     compiling the same expression twice agrees on every sample
    subh          sub-Hamiltonian energy decomposition`)
}

func run(scenario string, log zerolog.Logger) (interface{}, error) {
	switch scenario {
	case "partition":
		return scenarioPartition(log)
	case "placeholder":
		return scenarioPlaceholder(log)
	case "constraint":
		return scenarioConstraint(log)
	case "reduce":
		return scenarioReduce(log)
	case "roundtrip":
		return scenarioRoundTrip(log)
	case "subh":
		return scenarioSubH(log)
	default:
		return nil, fmt.Errorf("unknown scenario %q", scenario)
	}
}

func scenarioPartition(log zerolog.Logger) (interface{}, error) {
	a := expr.Var("a")
	b := expr.Var("b")
	inner, err := a.Sub(b).Pow(2)
	if err != nil {
		return nil, err
	}

	m, err := compilepkg.Compile(inner, coeffalgebra.Scalar(1), compilepkg.WithLogger(log))
	if err != nil {
		return nil, err
	}
	qubo, offset, err := m.ToQUBO(nil, false)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"qubo": model.SortedQUBO(qubo), "offset": offset}, nil
}

func scenarioPlaceholder(log zerolog.Logger) (interface{}, error) {
	a := expr.Var("a")
	h := expr.Param("w").Mul(a)

	m, err := compilepkg.Compile(h, coeffalgebra.Scalar(1), compilepkg.WithLogger(log))
	if err != nil {
		return nil, err
	}

	e1, err := m.Energy(model.Sample{"a": 1}, model.Binary, map[string]float64{"w": 2})
	if err != nil {
		return nil, err
	}
	e2, err := m.Energy(model.Sample{"a": 1}, model.Binary, map[string]float64{"w": 5})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"energy_w2": e1, "energy_w5": e2}, nil
}

func scenarioConstraint(log zerolog.Logger) (interface{}, error) {
	a := expr.Var("a")
	b := expr.Var("b")
	inner, err := a.Add(b).Sub(expr.Const(1)).Pow(2)
	if err != nil {
		return nil, err
	}
	constraint := inner.WrapConstraint("one_hot", nil)
	h := expr.Const(2).Mul(a).Add(b).Add(expr.Const(5).Mul(constraint))

	m, err := compilepkg.Compile(h, coeffalgebra.Scalar(1), compilepkg.WithLogger(log))
	if err != nil {
		return nil, err
	}

	good, err := decode.DecodeSample(m, model.Sample{"a": 1, "b": 0}, model.Binary, nil)
	if err != nil {
		return nil, err
	}
	bad, err := decode.DecodeSample(m, model.Sample{"a": 1, "b": 1}, model.Binary, nil)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"one_hot_satisfied_when_a1_b0": good.Constraints["one_hot"].Satisfied,
		"one_hot_satisfied_when_a1_b1": bad.Constraints["one_hot"].Satisfied,
	}, nil
}

func scenarioReduce(log zerolog.Logger) (interface{}, error) {
	a := expr.Var("a")
	b := expr.Var("b")
	c := expr.Var("c")
	h := a.Mul(b).Mul(c)

	m, err := compilepkg.Compile(h, coeffalgebra.Scalar(5), compilepkg.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"variables": m.VariableOrder()}, nil
}

func scenarioRoundTrip(log zerolog.Logger) (interface{}, error) {
	build := func() *expr.Node {
		a := expr.Var("a")
		b := expr.Var("b")
		inner, _ := a.Add(b).Sub(expr.Const(1)).Pow(2)
		return inner
	}

	m1, err := compilepkg.Compile(build(), coeffalgebra.Scalar(1), compilepkg.WithLogger(log))
	if err != nil {
		return nil, err
	}
	m2, err := compilepkg.Compile(build(), coeffalgebra.Scalar(1), compilepkg.WithLogger(log))
	if err != nil {
		return nil, err
	}

	agree := true
	for av := 0; av <= 1 && agree; av++ {
		for bv := 0; bv <= 1; bv++ {
			e1, err := m1.Energy(model.Sample{"a": av, "b": bv}, model.Binary, nil)
			if err != nil {
				return nil, err
			}
			e2, err := m2.Energy(model.Sample{"a": av, "b": bv}, model.Binary, nil)
			if err != nil {
				return nil, err
			}
			if e1 != e2 {
				agree = false
				break
			}
		}
	}
	return map[string]interface{}{"agrees_on_every_assignment": agree}, nil
}

func scenarioSubH(log zerolog.Logger) (interface{}, error) {
	a := expr.Var("a")
	b := expr.Var("b")
	g := a.Add(b).Sub(expr.Const(2)).WrapSubH("g")
	h := g.Add(expr.Const(2).Mul(a)).Add(b)

	m, err := compilepkg.Compile(h, coeffalgebra.Scalar(1), compilepkg.WithLogger(log))
	if err != nil {
		return nil, err
	}

	d, err := decode.DecodeSample(m, model.Sample{"a": 1, "b": 0}, model.Binary, nil)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"subh_g": d.SubH["g"], "total_energy": d.Energy}, nil
}
