package domain

import "time"

// DocumentVersion is the current persisted document format.
const DocumentVersion = 1

// Document is the persisted, artboard-scoped slice of the animation model.
type Document struct {
	Version     int               `json:"version"`
	ArtboardID  string            `json:"artboard_id"`
	ExportedAt  time.Time         `json:"exported_at"`
	States      []AnimationState  `json:"states"`
	Transitions []StateTransition `json:"transitions"`
	Chains      []AnimationChain  `json:"chains"`
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	out.States = make([]AnimationState, len(d.States))
	for i, s := range d.States {
		out.States[i] = s.Clone()
	}
	out.Transitions = make([]StateTransition, len(d.Transitions))
	for i, t := range d.Transitions {
		out.Transitions[i] = t.Clone()
	}
	out.Chains = make([]AnimationChain, len(d.Chains))
	for i, c := range d.Chains {
		out.Chains[i] = c.Clone()
	}
	return out
}

// ImportMode selects how an imported document combines with existing data.
type ImportMode string

const (
	// ImportReplace purges the artboard before importing.
	ImportReplace ImportMode = "replace"
	// ImportMerge appends with fresh ids and orders after existing states.
	ImportMerge ImportMode = "merge"
)

// ImportResult counts the records actually imported. Records whose references
// could not be remapped are dropped and not counted.
type ImportResult struct {
	States      int `json:"states"`
	Transitions int `json:"transitions"`
	Chains      int `json:"chains"`
}
