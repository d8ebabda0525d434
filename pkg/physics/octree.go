// pkg/physics/octree.go
package physics

// Octree is a recursive spatial index over bodies with a position and
// bounding radius. It supports insertion with dynamic subdivision and
// region/radius queries. The whole tree is rebuilt from scratch every
// tick by the owning collision system; there is no incremental update
// or deletion.
type Octree struct {
	root       *octreeNode
	maxDepth   int
	maxObjects int
}

// octreeNode owns a region of space. A node holds bodies directly until
// inserting one more would exceed maxObjects, then subdivides once into
// eight children splitting its bounds at the midpoint of all three
// axes. Nodes at maxDepth never subdivide and accumulate bodies without
// limit. A body straddling child boundaries is stored in every child it
// intersects, so raw query results may contain duplicates.
type octreeNode struct {
	bounds   AABB
	depth    int
	objects  []*Body
	children [8]*octreeNode
	divided  bool
}

// NewOctree creates an empty tree over the given world bounds
func NewOctree(bounds AABB, maxDepth, maxObjects int) *Octree {
	return &Octree{
		root:       &octreeNode{bounds: bounds},
		maxDepth:   maxDepth,
		maxObjects: maxObjects,
	}
}

// Insert adds a body to every node region it intersects. Bodies outside
// the tree bounds are silently ignored.
func (o *Octree) Insert(body *Body) {
	o.root.insert(body, o.maxDepth, o.maxObjects)
}

// Query returns the bodies whose bounding spheres intersect the region.
// Results are deduplicated by body ID and re-verified against the
// region, so callers get each matching body exactly once; this is a
// contract of the API, not a side effect of tree layout.
func (o *Octree) Query(region AABB) []*Body {
	found := make([]*Body, 0)
	seen := make(map[string]bool)
	for _, body := range o.root.query(region) {
		if seen[body.ID] {
			continue
		}
		seen[body.ID] = true
		if region.IntersectsSphere(body.Position, body.BoundingRadius()) {
			found = append(found, body)
		}
	}
	return found
}

// QueryRadius returns the bodies within radius of center, accounting
// for each body's own bounding radius. The broad AABB pass is
// deliberately conservative; the exact squared-distance check tightens
// it.
func (o *Octree) QueryRadius(center Vector3, radius float64) []*Body {
	region := AABB{
		Min: center.Sub(Vector3{X: radius, Y: radius, Z: radius}),
		Max: center.Add(Vector3{X: radius, Y: radius, Z: radius}),
	}

	found := make([]*Body, 0)
	seen := make(map[string]bool)
	for _, body := range o.root.query(region) {
		if seen[body.ID] {
			continue
		}
		seen[body.ID] = true
		reach := radius + body.BoundingRadius()
		if center.DistanceSquared(body.Position) <= reach*reach {
			found = append(found, body)
		}
	}
	return found
}

func (n *octreeNode) insert(body *Body, maxDepth, maxObjects int) {
	if !n.bounds.IntersectsSphere(body.Position, body.BoundingRadius()) {
		return
	}

	if n.divided {
		for _, child := range n.children {
			child.insert(body, maxDepth, maxObjects)
		}
		return
	}

	// Depth limit beats capacity limit: leaf nodes at maxDepth grow
	// without subdividing
	if len(n.objects) < maxObjects || n.depth >= maxDepth {
		n.objects = append(n.objects, body)
		return
	}

	n.subdivide()
	for _, existing := range n.objects {
		for _, child := range n.children {
			child.insert(existing, maxDepth, maxObjects)
		}
	}
	n.objects = nil
	for _, child := range n.children {
		child.insert(body, maxDepth, maxObjects)
	}
}

// subdivide splits the node into eight octants at the midpoint of its
// bounds. A node subdivides at most once.
func (n *octreeNode) subdivide() {
	mid := n.bounds.Center()
	lo := n.bounds.Min
	hi := n.bounds.Max

	i := 0
	for _, x := range [2][2]float64{{lo.X, mid.X}, {mid.X, hi.X}} {
		for _, y := range [2][2]float64{{lo.Y, mid.Y}, {mid.Y, hi.Y}} {
			for _, z := range [2][2]float64{{lo.Z, mid.Z}, {mid.Z, hi.Z}} {
				n.children[i] = &octreeNode{
					bounds: AABB{
						Min: Vector3{X: x[0], Y: y[0], Z: z[0]},
						Max: Vector3{X: x[1], Y: y[1], Z: z[1]},
					},
					depth: n.depth + 1,
				}
				i++
			}
		}
	}
	n.divided = true
}

// query collects every body stored under nodes that intersect the
// region. Raw results may contain duplicates and bodies outside the
// region; Octree.Query and QueryRadius refine them.
func (n *octreeNode) query(region AABB) []*Body {
	if !n.bounds.Intersects(region) {
		return nil
	}

	found := make([]*Body, 0, len(n.objects))
	found = append(found, n.objects...)

	if !n.divided {
		return found
	}
	for _, child := range n.children {
		found = append(found, child.query(region)...)
	}
	return found
}
