package steering

import "github.com/MikeSquared-Agency/Helm/internal/fuzzy"

type TermInfo struct {
	Name  string `json:"name"`
	Shape string `json:"shape"`
}

type VariableInfo struct {
	Name    string     `json:"name"`
	Kind    string     `json:"kind"`
	Enabled bool       `json:"enabled"`
	Min     float64    `json:"min"`
	Max     float64    `json:"max"`
	Terms   []TermInfo `json:"terms"`

	Default     *float64 `json:"default,omitempty"`
	LockInRange bool     `json:"lock_in_range,omitempty"`
	Aggregation string   `json:"aggregation,omitempty"`
	Defuzzifier string   `json:"defuzzifier,omitempty"`
	Resolution  int      `json:"resolution,omitempty"`
}

type RuleBlockInfo struct {
	Name        string   `json:"name"`
	Enabled     bool     `json:"enabled"`
	Conjunction string   `json:"conjunction"`
	Disjunction string   `json:"disjunction"`
	Activation  string   `json:"activation"`
	Rules       []string `json:"rules"`
}

// EngineInfo is the structure of the engine without its runtime state.
type EngineInfo struct {
	Name       string          `json:"name"`
	Variables  []VariableInfo  `json:"variables"`
	RuleBlocks []RuleBlockInfo `json:"rule_blocks"`
}

// Describe lists the variables, terms, operators and rules of the engine.
func (c *Controller) Describe() EngineInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	info := EngineInfo{Name: c.engine.Name()}
	for _, v := range c.engine.Inputs() {
		rng := v.Range()
		info.Variables = append(info.Variables, VariableInfo{
			Name:    v.Name(),
			Kind:    "input",
			Enabled: v.Enabled(),
			Min:     rng.Min,
			Max:     rng.Max,
			Terms:   termInfos(v.Terms()),
		})
	}
	for _, v := range c.engine.Outputs() {
		rng := v.Range()
		def := v.DefaultValue()
		info.Variables = append(info.Variables, VariableInfo{
			Name:        v.Name(),
			Kind:        "output",
			Enabled:     v.Enabled(),
			Min:         rng.Min,
			Max:         rng.Max,
			Terms:       termInfos(v.Terms()),
			Default:     &def,
			LockInRange: v.LockInRange(),
			Aggregation: v.Aggregation().String(),
			Defuzzifier: v.Defuzzifier().Name(),
			Resolution:  v.Defuzzifier().Resolution(),
		})
	}
	for _, blk := range c.engine.RuleBlocks() {
		b := RuleBlockInfo{
			Name:        blk.Name(),
			Enabled:     blk.Enabled(),
			Conjunction: blk.Conjunction().String(),
			Disjunction: blk.Disjunction().String(),
			Activation:  blk.Activation().String(),
		}
		for _, r := range blk.Rules() {
			b.Rules = append(b.Rules, r.Text())
		}
		info.RuleBlocks = append(info.RuleBlocks, b)
	}
	return info
}

func termInfos(terms []fuzzy.Term) []TermInfo {
	out := make([]TermInfo, len(terms))
	for i, t := range terms {
		out[i] = TermInfo{Name: t.Name, Shape: t.Shape()}
	}
	return out
}
