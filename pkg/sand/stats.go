package sand

import (
	"log/slog"
	"time"
)

// StepStats summarizes one committed step.
type StepStats struct {
	Step     uint64
	Visited  int
	Down     int
	Diagonal int
	Lateral  int
	// Stayed counts mobile particles that ended the step where they started.
	Stayed int
	// Contended counts proposals that lost their destination to another cell.
	Contended int
	// Swallowed counts particles removed by the overwrite policy.
	Swallowed int
	Duration  time.Duration
}

// Moved returns the number of particles that changed cell.
func (s StepStats) Moved() int { return s.Down + s.Diagonal + s.Lateral }

func (s *StepStats) add(o StepStats) {
	s.Visited += o.Visited
	s.Down += o.Down
	s.Diagonal += o.Diagonal
	s.Lateral += o.Lateral
	s.Stayed += o.Stayed
	s.Contended += o.Contended
	s.Swallowed += o.Swallowed
}

func (s *StepStats) count(m Move) {
	switch m {
	case MovedDown:
		s.Down++
	case MovedDiagonal:
		s.Diagonal++
	case MovedLateral:
		s.Lateral++
	default:
		s.Stayed++
	}
}

// LogValue implements slog.LogValuer.
func (s StepStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("step", s.Step),
		slog.Int("visited", s.Visited),
		slog.Int("down", s.Down),
		slog.Int("diagonal", s.Diagonal),
		slog.Int("lateral", s.Lateral),
		slog.Int("stayed", s.Stayed),
		slog.Int("contended", s.Contended),
		slog.Int("swallowed", s.Swallowed),
		slog.Duration("duration", s.Duration),
	)
}
