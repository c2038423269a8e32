package messages

// Player designators carried by Active.
const (
	PlayerOne = "p1"
	PlayerTwo = "p2"
)

// Active assigns the receiving client one of the paddles. Sent once per session.
type Active struct {
	Player string
}

// Inactive tells the client its session was dropped for inactivity.
type Inactive struct{}

// Update is an authoritative snapshot in state-vector slot order
// (puck block, paddle 1 x/y, paddle 2 x/y).
type Update struct {
	State []float64
}
