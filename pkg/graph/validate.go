package graph

// validate performs the compile-time structural checks:
//   - a start node is set and registered;
//   - every node has exactly one fixed edge or exactly one conditional
//     table, never both and never neither;
//   - no node is reachable from itself through fixed edges alone
//     (an unconditional cycle can never terminate);
//   - every registered node is reachable from the start node.
func (b *Builder[S]) validate() error {
	if b.start == "" {
		return &ValidationError{Reason: "no start node set"}
	}
	if _, ok := b.nodes[b.start]; !ok {
		return &ValidationError{Node: b.start, Reason: "start node is not registered"}
	}

	for name := range b.nodes {
		_, fixed := b.edges[name]
		_, cond := b.conds[name]
		switch {
		case fixed && cond:
			return &ValidationError{Node: name, Reason: "has both a fixed edge and a conditional-edge table"}
		case !fixed && !cond:
			return &ValidationError{Node: name, Reason: "has no outgoing edge"}
		}
	}

	if node, ok := b.fixedCycle(); ok {
		return &ValidationError{Node: node, Reason: "unconditional cycle through fixed edges"}
	}

	if node, ok := b.unreachable(); ok {
		return &ValidationError{Node: node, Reason: "unreachable from start node"}
	}
	return nil
}

// fixedCycle reports a node that can reach itself by following fixed edges
// only. Conditional edges are excluded: a run through a conditional
// divergence can always escape, an all-fixed loop cannot.
func (b *Builder[S]) fixedCycle() (string, bool) {
	for name := range b.nodes {
		seen := map[string]bool{name: true}
		cur := name
		for {
			next, ok := b.edges[cur]
			if !ok || next == End {
				break
			}
			if next == name {
				return name, true
			}
			if seen[next] {
				// A loop further down the chain; it is reported when the
				// outer iteration reaches one of its members.
				break
			}
			seen[next] = true
			cur = next
		}
	}
	return "", false
}

// unreachable reports a registered node that no path from start can visit.
func (b *Builder[S]) unreachable() (string, bool) {
	visited := make(map[string]bool, len(b.nodes))
	stack := []string{b.start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == End || visited[cur] {
			continue
		}
		visited[cur] = true
		if to, ok := b.edges[cur]; ok {
			stack = append(stack, to)
		}
		if c, ok := b.conds[cur]; ok {
			for _, to := range c.branches {
				stack = append(stack, to)
			}
		}
	}
	for name := range b.nodes {
		if !visited[name] {
			return name, true
		}
	}
	return "", false
}
