package game

// Phase is the current river section.
type Phase int

const (
	PhaseCalm Phase = iota
	PhaseRapids
)

func (p Phase) String() string {
	switch p {
	case PhaseCalm:
		return "calm"
	case PhaseRapids:
		return "rapids"
	}
	return "unknown"
}

// EndReason says why a run ended.
type EndReason int

const (
	EndNone EndReason = iota
	EndOffSide
	EndRock
)

func (r EndReason) String() string {
	switch r {
	case EndOffSide:
		return "off_side"
	case EndRock:
		return "rock"
	}
	return "none"
}

// EventKind identifies an Event.
type EventKind int

const (
	EventPhaseChanged EventKind = iota // A new section was generated
	EventRapidsLaunched                // The rapids countdown finished
	EventRunOver                       // The leaf was lost
	EventLeafDropped                   // Menu leaf touched the water
	EventStart                         // Menu handed over to play
)

// Event reports something the driver may react to: scene switches, sound
// cues and telemetry.
type Event struct {
	Kind          EventKind
	Phase         Phase
	RapidsCleared int
	Reason        EndReason
	NewHighScore  bool
}
