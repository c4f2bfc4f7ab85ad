package services

import (
	"errors"
	"fmt"
	"sort"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"

	"github.com/shopspring/decimal"
)

// ErrNoPathAvailable is returned when no chain of active, undisrupted transfer
// routes connects the requested nodes.
var ErrNoPathAvailable = errors.New("no path available between nodes")

// Path is a resolved chain of transfer route edges from one network node to
// another, together with its aggregate metrics.
type Path struct {
	Edges             []*routing.TransferRoute
	TotalDistanceKm   decimal.Decimal
	TotalTransitHours decimal.Decimal
	TotalPriority     int
}

// ContainsRoute reports whether the path traverses the given edge.
func (p Path) ContainsRoute(routeID kernel.UUID) bool {
	for _, edge := range p.Edges {
		if edge.ID().IsEqual(routeID) {
			return true
		}
	}
	return false
}

// RouteNetwork is the directed weighted graph of warehouse/hub nodes connected
// by transfer routes. Edges are weighted lexicographically by
// (priority, distanceKm): a lower priority sum always wins, total distance
// breaks ties. Inactive edges and edges with an active disruption are excluded
// from resolution.
//
// The network is an immutable snapshot built from repository state; readers
// therefore see either the pre- or post-disruption graph, never a half-applied
// change. Resolution is deterministic: the same inputs and disruption set
// always produce the same path.
type RouteNetwork struct {
	// adjacency maps each source node to its outgoing routable edges,
	// pre-sorted for deterministic traversal
	adjacency map[kernel.UUID][]*routing.TransferRoute
}

// NewRouteNetwork builds a routable snapshot from the given edges and the
// currently active disruptions. Inactive and disrupted edges are left out of
// the adjacency index entirely.
func NewRouteNetwork(
	routes []*routing.TransferRoute,
	activeDisruptions []*routing.RouteDisruption,
) (*RouteNetwork, error) {
	disrupted := make(map[kernel.UUID]bool, len(activeDisruptions))
	for _, d := range activeDisruptions {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if d.IsActive() {
			disrupted[d.RouteID()] = true
		}
	}

	adjacency := make(map[kernel.UUID][]*routing.TransferRoute)
	for _, route := range routes {
		if err := route.Validate(); err != nil {
			return nil, err
		}
		if !route.IsActive() || disrupted[route.ID()] {
			continue
		}
		adjacency[route.FromOfficeID()] = append(adjacency[route.FromOfficeID()], route)
	}

	for _, edges := range adjacency {
		sort.Slice(edges, func(i, j int) bool {
			if edges[i].Priority() != edges[j].Priority() {
				return edges[i].Priority() < edges[j].Priority()
			}
			if !edges[i].DistanceKm().Equal(edges[j].DistanceKm()) {
				return edges[i].DistanceKm().LessThan(edges[j].DistanceKm())
			}
			return edges[i].ID().String() < edges[j].ID().String()
		})
	}

	return &RouteNetwork{adjacency: adjacency}, nil
}

// ResolvePath returns the lowest-cost chain of routable edges from one node to
// another, or an error wrapping ErrNoPathAvailable when the nodes are not
// connected. Cost is compared lexicographically: priority sum first, total
// distance second; remaining ties break on node identifiers so resolution is
// reproducible.
func (n *RouteNetwork) ResolvePath(fromOfficeID, toOfficeID kernel.UUID) (Path, error) {
	return n.resolve(fromOfficeID, toOfficeID, nil)
}

// ResolvePathExcluding resolves a path while pretending the given edge does
// not exist. Used for rerouting-impact computation on a disrupted edge that is
// still in the snapshot.
func (n *RouteNetwork) ResolvePathExcluding(fromOfficeID, toOfficeID, excludedRouteID kernel.UUID) (Path, error) {
	return n.resolve(fromOfficeID, toOfficeID, &excludedRouteID)
}

// pathCost is the lexicographic (prioritySum, distanceSum) weight of a partial path.
type pathCost struct {
	prioritySum int
	distanceSum decimal.Decimal
}

func (c pathCost) lessThan(other pathCost) bool {
	if c.prioritySum != other.prioritySum {
		return c.prioritySum < other.prioritySum
	}
	return c.distanceSum.LessThan(other.distanceSum)
}

func (n *RouteNetwork) resolve(fromOfficeID, toOfficeID kernel.UUID, excludedRouteID *kernel.UUID) (Path, error) {
	if err := fromOfficeID.Validate(); err != nil {
		return Path{}, err
	}
	if err := toOfficeID.Validate(); err != nil {
		return Path{}, err
	}
	if fromOfficeID.IsEqual(toOfficeID) {
		return Path{}, fmt.Errorf("%w: source and target are the same node %s", ErrNoPathAvailable, fromOfficeID)
	}

	// Dijkstra over the lexicographic cost. The settled set doubles as cycle
	// protection: each node is expanded at most once.
	states := map[kernel.UUID]*nodeState{
		fromOfficeID: {cost: pathCost{distanceSum: decimal.Zero}},
	}

	for {
		current, ok := n.nextUnsettled(states)
		if !ok {
			return Path{}, fmt.Errorf("%w: %s -> %s", ErrNoPathAvailable, fromOfficeID, toOfficeID)
		}

		state := states[current]
		state.settled = true

		if current.IsEqual(toOfficeID) {
			return n.assemblePath(states, fromOfficeID, toOfficeID)
		}

		for _, edge := range n.adjacency[current] {
			if excludedRouteID != nil && edge.ID().IsEqual(*excludedRouteID) {
				continue
			}

			next := edge.ToOfficeID()
			nextCost := pathCost{
				prioritySum: state.cost.prioritySum + edge.Priority(),
				distanceSum: state.cost.distanceSum.Add(edge.DistanceKm()),
			}

			known, exists := states[next]
			if !exists {
				states[next] = &nodeState{cost: nextCost, viaEdge: edge}
				continue
			}
			if !known.settled && nextCost.lessThan(known.cost) {
				known.cost = nextCost
				known.viaEdge = edge
			}
		}
	}
}

// nodeState tracks one node's best known cost during resolution.
type nodeState struct {
	cost    pathCost
	viaEdge *routing.TransferRoute
	settled bool
}

// nextUnsettled picks the unsettled node with the smallest cost,
// breaking exact-cost ties by node identifier for determinism.
func (n *RouteNetwork) nextUnsettled(states map[kernel.UUID]*nodeState) (kernel.UUID, bool) {
	var (
		best      kernel.UUID
		bestState *nodeState
	)

	for id, state := range states {
		if state.settled {
			continue
		}
		if bestState == nil ||
			state.cost.lessThan(bestState.cost) ||
			(!bestState.cost.lessThan(state.cost) && id.String() < best.String()) {
			best = id
			bestState = state
		}
	}

	return best, bestState != nil
}

// assemblePath walks the via-edge chain backwards from the target.
func (n *RouteNetwork) assemblePath(states map[kernel.UUID]*nodeState, fromOfficeID, toOfficeID kernel.UUID) (Path, error) {
	var reversed []*routing.TransferRoute

	current := toOfficeID
	for !current.IsEqual(fromOfficeID) {
		state := states[current]
		if state == nil || state.viaEdge == nil {
			return Path{}, fmt.Errorf("%w: %s -> %s", ErrNoPathAvailable, fromOfficeID, toOfficeID)
		}
		reversed = append(reversed, state.viaEdge)
		current = state.viaEdge.FromOfficeID()
	}

	path := Path{TotalDistanceKm: decimal.Zero, TotalTransitHours: decimal.Zero}
	for i := len(reversed) - 1; i >= 0; i-- {
		edge := reversed[i]
		path.Edges = append(path.Edges, edge)
		path.TotalDistanceKm = path.TotalDistanceKm.Add(edge.DistanceKm())
		path.TotalTransitHours = path.TotalTransitHours.Add(edge.TransitHours())
		path.TotalPriority += edge.Priority()
	}

	return path, nil
}
