package game

import (
	"math"

	"github.com/pthm-cable/driftleaf/config"
)

// Autopilot plays the game for headless runs and parameter tuning. It
// dodges the nearest rock ahead of the leaf, damps lateral drift and
// otherwise drifts back toward the middle of the river.
type Autopilot struct {
	cfg   config.AutopilotConfig
	rocks []RockView
}

// NewAutopilot creates a pilot with the given heuristic settings.
func NewAutopilot(cfg config.AutopilotConfig) *Autopilot {
	return &Autopilot{cfg: cfg}
}

// Input chooses the controls for the next tick.
func (a *Autopilot) Input(g *Game) Input {
	switch g.Scene() {
	case SceneMenu:
		return Input{Next: !g.Menu().Falling()}
	case ScenePlay:
		return a.steer(g.Play(), g.Config().Derived.Width)
	}
	return Input{}
}

func (a *Autopilot) steer(p *Play, width float64) Input {
	if _, waiting := p.Countdown(); waiting {
		return Input{Next: true}
	}

	leaf := p.Leaf()
	r := p.LeafRadius()
	x, y := leaf.Pos.X, leaf.Pos.Y

	a.rocks = p.Rocks(a.rocks[:0])
	threat := -1
	for i, rock := range a.rocks {
		ahead := y - rock.Y
		if ahead < -rock.HalfH-r || ahead > a.cfg.Lookahead {
			continue
		}
		if math.Abs(rock.X-x) > rock.HalfW+r+a.cfg.Margin {
			continue
		}
		if threat < 0 || rock.Y > a.rocks[threat].Y {
			threat = i
		}
	}

	if threat >= 0 {
		rock := a.rocks[threat]
		goLeft := x < rock.X
		// Dodging toward a bank that is too close ends the run just the same.
		if goLeft && rock.X-rock.HalfW < 2*r {
			goLeft = false
		} else if !goLeft && rock.X+rock.HalfW > width-2*r {
			goLeft = true
		}
		return Input{Left: goLeft, Right: !goLeft}
	}

	switch {
	case leaf.Vel.X > a.cfg.MaxDrift:
		return Input{Left: true}
	case leaf.Vel.X < -a.cfg.MaxDrift:
		return Input{Right: true}
	}

	off := x - width/2
	band := a.cfg.CentreBand * width
	switch {
	case off > band:
		return Input{Left: true}
	case off < -band:
		return Input{Right: true}
	}
	return Input{}
}
