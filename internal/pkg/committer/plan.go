package committer

import "cloud.google.com/go/spanner"

// Plan collects the mutations of one unit of work. The zero value is ready
// to use.
type Plan struct {
	mutations []*spanner.Mutation
}

func NewPlan() *Plan {
	return &Plan{}
}

// Add appends the given mutations, skipping nils so repos can return nil for
// "nothing to write".
func (p *Plan) Add(ms ...*spanner.Mutation) {
	for _, m := range ms {
		if m != nil {
			p.mutations = append(p.mutations, m)
		}
	}
}

func (p *Plan) IsEmpty() bool {
	return len(p.mutations) == 0
}

func (p *Plan) Len() int {
	return len(p.mutations)
}

func (p *Plan) Mutations() []*spanner.Mutation {
	return p.mutations
}
