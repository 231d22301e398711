package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/interpolate"
)

// ValidateDocument checks a document for broken references and values the
// engine would silently repair or ignore. All problems are reported at once.
func ValidateDocument(doc domain.Document) error {
	var errors []string
	report := func(format string, args ...any) {
		errors = append(errors, fmt.Sprintf(format, args...))
	}

	states := make(map[string]bool, len(doc.States))
	initial := 0
	for _, s := range doc.States {
		if states[s.ID] {
			report("Duplicate state id: '%s'", s.ID)
		}
		states[s.ID] = true
		if s.HoldTime < 0 {
			report("Negative hold time on state '%s'", s.Name)
		}
		if s.Trigger != nil && s.Trigger.Kind() == domain.TriggerInitial {
			initial++
		}
	}
	if initial > 1 {
		report("Multiple initial states: %d", initial)
	}

	pairs := make(map[string]string, len(doc.Transitions))
	for _, t := range doc.Transitions {
		if !states[t.FromStateID] {
			report("Missing state '%s' referenced by transition '%s'", t.FromStateID, t.ID)
		}
		if !states[t.ToStateID] {
			report("Missing state '%s' referenced by transition '%s'", t.ToStateID, t.ID)
		}
		if t.FromStateID == t.ToStateID {
			report("Self transition '%s' on state '%s'", t.ID, t.FromStateID)
		}
		key := t.FromStateID + "->" + t.ToStateID
		if prev, ok := pairs[key]; ok {
			report("Transitions '%s' and '%s' share the pair %s", prev, t.ID, key)
		} else {
			pairs[key] = t.ID
		}
		if t.Duration < 0 || t.Delay < 0 {
			report("Negative timing on transition '%s'", t.ID)
		}
		checkEasing(t.Easing, "transition '"+t.ID+"'", report)
		for elementID, o := range t.ElementOverrides {
			if o.Easing != "" {
				checkEasing(o.Easing, fmt.Sprintf("override '%s' of transition '%s'", elementID, t.ID), report)
			}
		}
	}

	defaults := 0
	for _, c := range doc.Chains {
		if c.IsDefault {
			defaults++
		}
		if c.StartStateID != "" && !states[c.StartStateID] {
			report("Missing start state '%s' in chain '%s'", c.StartStateID, c.Name)
		}
		for i, step := range c.Steps {
			if !states[step.StateID] {
				report("Missing state '%s' at step %d of chain '%s'", step.StateID, i, c.Name)
			}
		}
	}
	if defaults > 1 {
		report("Multiple default chains: %d", defaults)
	}

	if len(errors) > 0 {
		return fmt.Errorf("%w: found %d errors:\n- %s", domain.ErrInvalidDocument, len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}

func checkEasing(e domain.Easing, where string, report func(string, ...any)) {
	if _, ok := interpolate.ResolveEasing(e); !ok {
		report("Unknown easing '%s' on %s", e, where)
	}
}
