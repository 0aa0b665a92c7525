package game

// Session is the state that outlives a single run: the best score and how
// many runs have been played since the process started.
type Session struct {
	HighScore int
	LastScore int
	Runs      int
}

// EndRun records a finished run and reports whether it set a new high score.
func (s *Session) EndRun(rapidsCleared int) bool {
	s.Runs++
	s.LastScore = rapidsCleared
	if rapidsCleared > s.HighScore {
		s.HighScore = rapidsCleared
		return true
	}
	return false
}

// Played reports whether any run has scored.
// Runs start straight in the rapids once it is true.
func (s *Session) Played() bool {
	return s.HighScore > 0
}
