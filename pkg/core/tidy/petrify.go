package tidy

// petrify converts relative offsets to absolute coordinates and relocates
// the vertices. All positions are computed before the first Relocate call.
func petrify(g Graph, nodes []node, cfg Config) {
	xs := make([]float64, len(nodes))
	for i := 1; i < len(nodes); i++ {
		xs[i] = xs[nodes[i].parent] + nodes[i].offset
	}
	for i := range nodes {
		g.Relocate(nodes[i].vertex,
			cfg.RootX+xs[i],
			cfg.RootY-cfg.VerticalSpacing*float64(nodes[i].level))
	}
}
