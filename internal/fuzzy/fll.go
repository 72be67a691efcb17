package fuzzy

import (
	"fmt"
	"strings"
)

// FLL renders the engine in the FuzzyLite Language.
func (e *Engine) FLL() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Engine: %s\n", e.name)
	for _, v := range e.inputs {
		fmt.Fprintf(&sb, "InputVariable: %s\n", v.name)
		writeVariable(&sb, &v.variable)
		sb.WriteString("  lock-range: false\n")
		writeTerms(&sb, &v.variable)
	}
	for _, v := range e.outputs {
		fmt.Fprintf(&sb, "OutputVariable: %s\n", v.name)
		writeVariable(&sb, &v.variable)
		fmt.Fprintf(&sb, "  lock-range: %t\n", v.lockInRange)
		fmt.Fprintf(&sb, "  aggregation: %s\n", v.aggregation)
		fmt.Fprintf(&sb, "  defuzzifier: %s %d\n", v.defuzzifier.Name(), v.defuzzifier.Resolution())
		fmt.Fprintf(&sb, "  default: %s\n", fmtNum(v.defaultValue))
		sb.WriteString("  lock-previous: false\n")
		writeTerms(&sb, &v.variable)
	}
	for _, blk := range e.blocks {
		fmt.Fprintf(&sb, "RuleBlock: %s\n", blk.name)
		fmt.Fprintf(&sb, "  enabled: %t\n", blk.enabled)
		fmt.Fprintf(&sb, "  conjunction: %s\n", blk.conjunction)
		fmt.Fprintf(&sb, "  disjunction: %s\n", blk.disjunction)
		fmt.Fprintf(&sb, "  implication: %s\n", blk.activation)
		sb.WriteString("  activation: General\n")
		for _, r := range blk.rules {
			fmt.Fprintf(&sb, "  rule: %s\n", r.source)
		}
	}
	return sb.String()
}

func writeVariable(sb *strings.Builder, v *variable) {
	fmt.Fprintf(sb, "  enabled: %t\n", v.enabled)
	fmt.Fprintf(sb, "  range: %s %s\n", fmtNum(v.rng.Min), fmtNum(v.rng.Max))
}

func writeTerms(sb *strings.Builder, v *variable) {
	for _, t := range v.terms {
		fmt.Fprintf(sb, "  term: %s %s\n", t.Name, t.MF.fll())
	}
}
