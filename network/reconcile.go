package network

import "github.com/automoto/airhockey-mp/shared/statevec"

// StateStore is the part of the simulation reconciliation needs.
type StateStore interface {
	State() statevec.StateVector
	ApplyRemote(v statevec.StateVector)
}

// Merge builds the vector to install from a remote snapshot. The snapshot
// wins everywhere except the slots of the paddle this client owns, which keep
// the local prediction. The puck block always comes from remote.
func Merge(local, remote statevec.StateVector, role Role) statevec.StateVector {
	merged := remote
	if p, ok := role.Paddle(); ok {
		x, y, _ := statevec.Slots(p)
		merged[x], merged[y] = local[x], local[y]
	}
	return merged
}

type Reconciler struct {
	store   StateStore
	session *Session
}

func NewReconciler(store StateStore, session *Session) *Reconciler {
	return &Reconciler{store: store, session: session}
}

// Reconcile merges remote into the current state and installs the result,
// which it also returns.
func (r *Reconciler) Reconcile(remote statevec.StateVector) statevec.StateVector {
	merged := Merge(r.store.State(), remote, r.session.Role())
	r.store.ApplyRemote(merged)
	return merged
}
