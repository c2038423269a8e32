package tablephysics

// Config holds the tuning of the simulation. Speeds are in table units per
// second.
type Config struct {
	PuckFriction      float64 // speed lost per second
	MaxPuckSpeed      float64
	MaxSpin           float64 // radians per second
	SpinDamping       float64 // fraction of spin lost per second
	SpinTransfer      float64
	WallRestitution   float64
	PaddleRestitution float64
	PaddleMaxSpeed    float64
	MaxStep           float64 // longest dt accepted by Advance
	MaxSubsteps       int
}

func DefaultConfig() Config {
	return Config{
		PuckFriction:      0.15,
		MaxPuckSpeed:      4.0,
		MaxSpin:           40.0,
		SpinDamping:       0.8,
		SpinTransfer:      0.15,
		WallRestitution:   0.9,
		PaddleRestitution: 0.85,
		PaddleMaxSpeed:    6.0,
		MaxStep:           0.1,
		MaxSubsteps:       16,
	}
}
