package messages

// Position is the locally predicted target of the sender's paddle, in
// table-local units.
type Position struct {
	X, Y float64
}
