package flappy

// ScoreTracker credits each obstacle pair exactly once, on the first tick
// its leading edge is behind the bird.
type ScoreTracker struct{}

// Update marks every qualifying pair as passed and returns how many were
// credited this tick. Pairs already passed are never counted again.
func (ScoreTracker) Update(pipes []ObstaclePair, birdX float64) int {
	credited := 0
	for i := range pipes {
		if !pipes[i].Passed && pipes[i].X < birdX {
			pipes[i].Passed = true
			credited++
		}
	}
	return credited
}
