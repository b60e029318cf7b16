package check_test

import (
	"fmt"

	"github.com/causallab/dagcheck/pkg/causal/notation"
	"github.com/causallab/dagcheck/pkg/check"
)

func ExampleEvaluate() {
	// Classic confounder: Z causes both treatment and outcome. Adjusting
	// for Z blocks the backdoor path X <- Z -> Y.
	parsed, _ := notation.Parse("Z -> X, Z -> Y, X -> Y", map[string]string{
		"X": "treatment",
		"Y": "outcome",
		"Z": "confounder",
	})

	rep, _ := check.Evaluate(check.Request{
		Graph:      parsed.Graph,
		Treatment:  "X",
		Outcome:    "Y",
		Adjustment: []string{"Z"},
	})

	fmt.Println("passed:", rep.Passed)
	fmt.Println("backdoor paths:", rep.Stats.BackdoorPaths)
	// Output:
	// passed: true
	// backdoor paths: 1
}

func ExampleEvaluate_openBackdoor() {
	// Same structure, but no adjustment set: the backdoor path stays open.
	parsed, _ := notation.Parse("Z -> X, Z -> Y, X -> Y", map[string]string{
		"X": "treatment",
		"Y": "outcome",
		"Z": "confounder",
	})

	rep, _ := check.Evaluate(check.Request{
		Graph:     parsed.Graph,
		Treatment: "X",
		Outcome:   "Y",
	})

	fmt.Println("passed:", rep.Passed)
	for _, is := range rep.Issues {
		fmt.Printf("%s %s %s\n", is.Rule, is.Severity, is.Message)
	}
	// Output:
	// passed: false
	// DAG-02 HIGH backdoor path X <- Z -> Y is not blocked by adjustment set {}
}

func ExampleEvaluate_cycle() {
	// A cycle is a CRITICAL finding and makes the path-dependent rules
	// indeterminate rather than producing false verdicts.
	parsed, _ := notation.Parse("X -> Y, Y -> X", map[string]string{
		"X": "treatment",
		"Y": "outcome",
	})

	rep, _ := check.Evaluate(check.Request{
		Graph:     parsed.Graph,
		Treatment: "X",
		Outcome:   "Y",
	})

	fmt.Println("passed:", rep.Passed)
	fmt.Println(rep.Issues[0].Message)
	fmt.Println("indeterminate:", rep.Indeterminate)
	// Output:
	// passed: false
	// causal structure contains a cycle: X -> Y -> X
	// indeterminate: [DAG-02 DAG-03]
}
