package compare_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/routeflow/compare"
	"github.com/katalvlaran/routeflow/network"
	"github.com/katalvlaran/routeflow/optimizer"
)

func ExampleHarness_Run() {
	in := compare.Input{
		Nodes: []network.Node{
			{ID: "S", Role: network.Source, Capacity: 1},
			{ID: "C", Role: network.Sink, Capacity: 1},
		},
		Routes: []network.Route{{From: "S", To: "C", Cost: 3}},
	}
	down := optimizer.Func(func(context.Context, optimizer.Backend, *network.Problem, int) (optimizer.Result, error) {
		return optimizer.Result{}, errors.New("unavailable")
	})

	cmp := compare.New().Run(context.Background(), in, down, nil, 10)
	for _, side := range []compare.Side{cmp.Classical, cmp.External} {
		fmt.Printf("%s cost=%g fill=%g violations=%v\n", side.Label, side.TotalCost, side.FillRate, side.Violations)
	}
	// Output:
	// classical cost=3 fill=1 violations=[]
	// external cost=NaN fill=0 violations=[solver_error: quantum solver failed]
}
