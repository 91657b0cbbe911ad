package comments

import "plume/internal/ast"

// nodeKey makes a tree node usable as a map key by identity. Arena node IDs
// already are identity: two structurally equal nodes sit in different slots,
// so their keys never collide, while two references to the same slot always
// produce equal keys. The key does not own the node and must not outlive
// the builder that allocated it.
type nodeKey struct {
	node ast.NodeRef
}

func keyOf(node ast.NodeRef) nodeKey {
	return nodeKey{node: node}
}
