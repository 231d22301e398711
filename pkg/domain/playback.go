package domain

// PlaybackState is the scheduler's cursor over the artboard timeline.
type PlaybackState struct {
	IsPlaying     bool    `json:"is_playing"`
	IsPaused      bool    `json:"is_paused"`
	CurrentTime   float64 `json:"current_time"`
	PlaybackSpeed float64 `json:"playback_speed"`
	Loop          bool    `json:"loop"`
}

// ChainPlaybackState is the scheduler's cursor over a chain.
type ChainPlaybackState struct {
	ActiveChainID    string  `json:"active_chain_id,omitempty"`
	CurrentStepIndex int     `json:"current_step_index"`
	IsReversing      bool    `json:"is_reversing"`
	ElapsedTime      float64 `json:"elapsed_time"`
	Iterations       int     `json:"iterations"`
	IsPaused         bool    `json:"is_paused"`
}

// Active reports whether a chain is playing or paused.
func (c ChainPlaybackState) Active() bool {
	return c.ActiveChainID != ""
}
