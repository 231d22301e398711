package playback

import (
	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/studio"
)

// PlayChain starts chainID from its first step, stopping timeline playback.
// Calling it for the paused active chain resumes it instead.
func (s *Scheduler) PlayChain(chainID string) bool {
	var ok bool
	s.do(func() {
		board := s.model.Snapshot(s.artboardID)
		if _, found := findChain(board.Chains, chainID); !found {
			return
		}
		ok = true

		if s.playback.IsPlaying || s.playback.IsPaused {
			s.playback.IsPlaying = false
			s.playback.IsPaused = false
			s.emitPlayback(domain.EventStop)
		}
		s.hasLastTick = false

		if s.chain.ActiveChainID == chainID && s.chain.IsPaused {
			s.chain.IsPaused = false
			s.startDriver()
			return
		}

		s.chain = domain.ChainPlaybackState{ActiveChainID: chainID}
		s.deriveChain(board)
		s.startDriver()
		s.emitChain(domain.EventChainStart)
		s.logger.Debug("chain started", "artboard", s.artboardID, "chain", chainID)
	})
	return ok
}

// PauseChain pauses the active chain.
func (s *Scheduler) PauseChain() {
	s.do(func() {
		if !s.chain.Active() || s.chain.IsPaused {
			return
		}
		s.chain.IsPaused = true
		s.stopDriver()
	})
}

// StopChain returns the chain machine to idle.
func (s *Scheduler) StopChain() {
	s.do(func() {
		if s.chain.Active() {
			s.endChain()
		}
	})
}

// advanceChain moves the active chain by delta ms. At most one step boundary
// is crossed per call; elapsed time restarts at 0 on every step change.
func (s *Scheduler) advanceChain(delta, wallMs float64) {
	board := s.model.Snapshot(s.artboardID)
	chain, ok := findChain(board.Chains, s.chain.ActiveChainID)
	if !ok {
		s.endChain()
		return
	}
	steps := resolveSteps(board, chain)
	if len(steps) == 0 {
		s.endChain()
		return
	}

	i := clampIndex(s.chain.CurrentStepIndex, len(steps))
	s.chain.CurrentStepIndex = i
	s.chain.ElapsedTime += delta
	plan := planStep(board.Transitions, steps, i, s.chain.IsReversing)

	if s.chain.ElapsedTime < plan.total {
		s.deriveChain(board)
		s.emitFrame(wallMs)
		return
	}

	if plan.hasNext {
		s.chain.CurrentStepIndex = plan.next
		s.chain.ElapsedTime = 0
		s.deriveChain(board)
		s.emitChain(domain.EventChainStep)
		s.emitFrame(wallMs)
		return
	}

	switch chain.EffectiveMode() {
	case domain.ModeLoop:
		s.chain.Iterations++
		s.chain.CurrentStepIndex = 0
		s.chain.IsReversing = false
		s.chain.ElapsedTime = 0
	case domain.ModePingPong:
		s.chain.Iterations++
		s.chain.IsReversing = !s.chain.IsReversing
		// Resume in the transition toward the neighbor; the hold was just played.
		s.chain.ElapsedTime = 0
		if len(steps) > 1 {
			s.chain.ElapsedTime = plan.hold
		}
	default:
		s.chain.ElapsedTime = plan.total
		s.deriveChain(board)
		s.emitFrame(wallMs)
		s.endChain()
		return
	}
	s.deriveChain(board)
	s.emitChain(domain.EventChainStep)
	s.emitFrame(wallMs)
}

func (s *Scheduler) deriveChain(board studio.Board) {
	s.frame = EvaluateChain(board, s.chain.ActiveChainID, s.chain)
}

// endChain returns the chain machine to idle. The last published values are kept.
func (s *Scheduler) endChain() {
	s.emitChain(domain.EventChainEnd)
	s.chain = domain.ChainPlaybackState{}
	s.stopDriver()
}
