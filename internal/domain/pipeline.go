package domain

// TransitionPolicy decides which reviewer-driven status moves are allowed.
// DRAFT -> SUBMITTED is the candidate's submit action and never goes through it.
type TransitionPolicy struct {
	// Strict enables forward-only movement. The default is permissive: any
	// non-DRAFT status may be set on any non-DRAFT application, so reviewers
	// can bounce an application back (e.g. INTERVIEW -> UNDER_REVIEW).
	Strict bool
}

func (p TransitionPolicy) Check(from, to ApplicationStatus) error {
	if !to.IsPipelineStage() {
		return ErrInvalidStatus
	}
	if from == ApplicationStatusDraft {
		return ErrNotSubmitted
	}
	if !from.IsPipelineStage() {
		return ErrInvalidStatus
	}
	if !p.Strict || from == to {
		return nil
	}
	if from.IsTerminal() {
		return ErrInvalidStatus
	}
	if to.IsSideExit() {
		return nil
	}
	if to.Rank() <= from.Rank() {
		return ErrInvalidStatus
	}
	return nil
}
