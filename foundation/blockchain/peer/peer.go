// Package peer maintains the in-process nodes that share transactions with
// each other. There is no network transport: a node hands a transaction
// straight to the ledger of every node it is connected to.
package peer

import (
	"sort"
	"sync"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
)

// Node represents a named ledger that can be connected to other nodes.
type Node struct {
	Name  string
	State *state.State

	evHandler state.EventHandler
	peers     *PeerSet
}

// New constructs a node for the specified ledger.
func New(name string, st *state.State, evHandler state.EventHandler) *Node {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	return &Node{
		Name:      name,
		State:     st,
		evHandler: ev,
		peers:     NewPeerSet(),
	}
}

// Connect links the two nodes in both directions. Connecting nodes that
// are already linked does nothing.
func (n *Node) Connect(other *Node) {
	if n == other {
		return
	}

	if n.peers.Add(other) {
		other.peers.Add(n)
		n.evHandler("peer: Connect: %s <-> %s", n.Name, other.Name)
	}
}

// Peers returns the nodes connected to this node.
func (n *Node) Peers() []*Node {
	return n.peers.Copy(n.Name)
}

// BroadcastTransaction submits the transaction to the ledger of every
// connected node. A peer rejecting the transaction is reported through the
// event handler and otherwise ignored. The number of peers that accepted
// the transaction is returned.
func (n *Node) BroadcastTransaction(tx database.Tx) int {
	var accepted int

	for _, peer := range n.Peers() {
		if err := peer.State.SubmitTransaction(tx); err != nil {
			n.evHandler("peer: BroadcastTransaction: %s -> %s: tx[%s]: REJECTED: %s", n.Name, peer.Name, tx, err)
			continue
		}

		n.evHandler("peer: BroadcastTransaction: %s -> %s: tx[%s]: ACCEPTED", n.Name, peer.Name, tx)
		accepted++
	}

	return accepted
}

// =============================================================================

// PeerSet represents the data representation to maintain a set of known peers.
type PeerSet struct {
	mu  sync.RWMutex
	set map[string]*Node
}

// NewPeerSet constructs a new set to manage connected nodes.
func NewPeerSet() *PeerSet {
	return &PeerSet{
		set: make(map[string]*Node),
	}
}

// Add adds a new node to the set. It reports false when a node with the
// same name is already in the set.
func (ps *PeerSet) Add(node *Node) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	_, exists := ps.set[node.Name]
	if !exists {
		ps.set[node.Name] = node
		return true
	}

	return false
}

// Remove removes a node from the set.
func (ps *PeerSet) Remove(name string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	delete(ps.set, name)
}

// Copy returns the known nodes ordered by name, leaving out the node
// with the specified name.
func (ps *PeerSet) Copy(name string) []*Node {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	var peers []*Node
	for peerName, peer := range ps.set {
		if peerName != name {
			peers = append(peers, peer)
		}
	}

	sort.Slice(peers, func(i, j int) bool { return peers[i].Name < peers[j].Name })

	return peers
}
