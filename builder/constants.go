package builder

// Method names prefix constructor errors.
const (
	MethodIsolated     = "Isolated"
	MethodPath         = "Path"
	MethodCycle        = "Cycle"
	MethodStar         = "Star"
	MethodWheel        = "Wheel"
	MethodComplete     = "Complete"
	MethodGrid         = "Grid"
	MethodRandomSparse = "RandomSparse"
)

// Minimum sizes per constructor.
const (
	MinIsolatedNodes = 1
	MinPathNodes     = 2
	MinCycleNodes    = 3
	MinStarNodes     = 2
	MinWheelNodes    = 4
	MinCompleteNodes = 1
	MinGridDim       = 1
	MinRandomNodes   = 1
)

// Probability bounds for RandomSparse, inclusive.
const (
	MinProbability = 0.0
	MaxProbability = 1.0
)
