package hull

// connector is one unmatched face edge waiting for its twin.
type connector struct {
	face *face
	edge int

	// edge end points, smaller index first
	a, b int
	hash uint

	next *connector
}

// connectorTable joins faces along shared edges while the hull grows. Every
// edge is inserted once by each of its two faces; the second insert finds the
// first, links the faces and frees the bin.
type connectorTable struct {
	entries uint
	table   [ConnectorTableSize]*connector

	pooled *connector
}

func edgeKey(v0, v1 int) (int, int, uint) {
	if v0 > v1 {
		v0, v1 = v1, v0
	}
	hash := uint(v0)*31 + uint(v1)*2654435761
	return v0, v1, hash
}

func (set *connectorTable) Count() uint {
	return set.entries
}

// Connect links f across the given edge if the opposite face already registered
// it, otherwise it parks the edge until that face arrives. It returns true on
// a match.
func (set *connectorTable) Connect(f *face, edge int) bool {
	a, b, hash := edgeKey(f.v[edge], f.v[(edge+1)%3])
	idx := hash % ConnectorTableSize

	prevPtr := &set.table[idx]
	bin := set.table[idx]
	for bin != nil && !(bin.hash == hash && bin.a == a && bin.b == b) {
		prevPtr = &bin.next
		bin = bin.next
	}

	if bin != nil {
		f.adj[edge] = bin.face
		bin.face.adj[bin.edge] = f

		*prevPtr = bin.next
		set.entries--
		set.recycle(bin)
		return true
	}

	bin = set.unusedBin()
	bin.face = f
	bin.edge = edge
	bin.a = a
	bin.b = b
	bin.hash = hash

	bin.next = set.table[idx]
	set.table[idx] = bin
	set.entries++
	return false
}

func (set *connectorTable) unusedBin() *connector {
	bin := set.pooled
	if bin != nil {
		set.pooled = bin.next
		bin.next = nil
		return bin
	}
	return &connector{}
}

func (set *connectorTable) recycle(bin *connector) {
	bin.face = nil
	bin.next = set.pooled
	set.pooled = bin
}

// Reset drops all parked connectors.
func (set *connectorTable) Reset() {
	for i := range set.table {
		for bin := set.table[i]; bin != nil; {
			next := bin.next
			set.recycle(bin)
			bin = next
		}
		set.table[i] = nil
	}
	set.entries = 0
}
