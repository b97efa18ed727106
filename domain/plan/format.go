package plan

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Format renders the plan as a multi-section report: the initial state,
// each action with its mutations and resulting state, and the final
// state with the total cost. Keys are sorted, so the output is stable
// for a given plan.
func (p *Plan) Format() string {
	var b strings.Builder

	b.WriteString("= INITIAL STATE\n")
	writeStateLines(&b, p.start)

	for _, s := range p.steps {
		b.WriteString("\n")
		fmt.Fprintf(&b, "= DO ACTION %q\n", s.act.Name())
		b.WriteString("  MUTATES:\n")
		muts := s.effect.Mutations()
		if len(muts) == 0 {
			b.WriteString("    (nothing)\n")
		}
		for _, m := range muts {
			fmt.Fprintf(&b, "    %s\n", m)
		}
		fmt.Fprintf(&b, "  RESULT: %s\n", s.after)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "= FINAL STATE (COST: %d)\n", p.cost)
	writeStateLines(&b, p.Final())

	return b.String()
}

func writeStateLines(b *strings.Builder, st world.State) {
	keys := st.Keys()
	if len(keys) == 0 {
		b.WriteString("  (empty)\n")
		return
	}
	for _, k := range keys {
		v, _ := st.Get(k)
		fmt.Fprintf(b, "  %s = %s\n", k, v)
	}
}
