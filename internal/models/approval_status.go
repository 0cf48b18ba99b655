package models

// ApprovalStatus is the state of a single approvable unit of a report card.
type ApprovalStatus string

const (
	ApprovalRejected       ApprovalStatus = "rejected"
	ApprovalDraft          ApprovalStatus = "draft"
	ApprovalEntry          ApprovalStatus = "entry"
	ApprovalSubmitted      ApprovalStatus = "submitted"
	ApprovalLevel1Approved ApprovalStatus = "level_1_approved"
	ApprovalLevel2Approved ApprovalStatus = "level_2_approved"
	ApprovalReviewed       ApprovalStatus = "reviewed"
	ApprovalPublished      ApprovalStatus = "published"
)

var approvalPriority = map[ApprovalStatus]int{
	ApprovalRejected:       -1,
	ApprovalDraft:          0,
	ApprovalEntry:          1,
	ApprovalSubmitted:      2,
	ApprovalLevel1Approved: 3,
	ApprovalLevel2Approved: 4,
	ApprovalReviewed:       5,
	ApprovalPublished:      6,
}

// Valid reports whether s is a known status.
func (s ApprovalStatus) Valid() bool {
	_, ok := approvalPriority[s]
	return ok
}

// Priority returns the aggregation weight of s. Unknown values weigh as draft.
func (s ApprovalStatus) Priority() int {
	return approvalPriority[s]
}

// AtLeast reports whether s has reached other in the lattice. Rejected never
// reaches anything but itself.
func (s ApprovalStatus) AtLeast(other ApprovalStatus) bool {
	return s.Priority() >= other.Priority()
}

// Terminal reports whether no further transition may leave s.
func (s ApprovalStatus) Terminal() bool {
	return s == ApprovalPublished
}

// ApprovalLevel identifies who performed an approval or rejection.
type ApprovalLevel int

const (
	LevelNone     ApprovalLevel = 0
	LevelHomeroom ApprovalLevel = 1
	LevelSubject  ApprovalLevel = 2
	LevelReview   ApprovalLevel = 3
	LevelPublish  ApprovalLevel = 4
)

// Valid reports whether l names one of the four approval levels.
func (l ApprovalLevel) Valid() bool {
	return l >= LevelHomeroom && l <= LevelPublish
}

// PendingLevel is the queue name used by list and batch endpoints.
type PendingLevel string

const (
	PendingLevel1  PendingLevel = "level_1"
	PendingLevel2  PendingLevel = "level_2"
	PendingReview  PendingLevel = "review"
	PendingPublish PendingLevel = "publish"
)

// Level maps the queue name onto its approval level.
func (p PendingLevel) Level() ApprovalLevel {
	switch p {
	case PendingLevel1:
		return LevelHomeroom
	case PendingLevel2:
		return LevelSubject
	case PendingReview:
		return LevelReview
	case PendingPublish:
		return LevelPublish
	default:
		return LevelNone
	}
}

// ApprovalAction names a lattice edge.
type ApprovalAction string

const (
	ActionEnter     ApprovalAction = "enter"
	ActionSubmit    ApprovalAction = "submit"
	ActionApproveL1 ApprovalAction = "approve_level_1"
	ActionApproveL2 ApprovalAction = "approve_level_2"
	ActionReview    ApprovalAction = "review"
	ActionPublish   ApprovalAction = "publish"
	ActionReject    ApprovalAction = "reject"
)

// Transition is one legal edge of the approval lattice.
type Transition struct {
	From   ApprovalStatus
	Action ApprovalAction
	To     ApprovalStatus
}

// ApprovalTransitions lists every forward edge. Rejection is handled
// separately because it is legal from any submitted, non-terminal state.
var ApprovalTransitions = []Transition{
	{From: ApprovalDraft, Action: ActionEnter, To: ApprovalEntry},
	{From: ApprovalDraft, Action: ActionSubmit, To: ApprovalSubmitted},
	{From: ApprovalEntry, Action: ActionSubmit, To: ApprovalSubmitted},
	{From: ApprovalRejected, Action: ActionSubmit, To: ApprovalSubmitted},
	{From: ApprovalSubmitted, Action: ActionApproveL1, To: ApprovalLevel1Approved},
	{From: ApprovalSubmitted, Action: ActionApproveL2, To: ApprovalLevel2Approved},
	{From: ApprovalLevel1Approved, Action: ActionApproveL2, To: ApprovalLevel2Approved},
	{From: ApprovalRejected, Action: ActionApproveL2, To: ApprovalLevel2Approved},
	{From: ApprovalLevel2Approved, Action: ActionReview, To: ApprovalReviewed},
	{From: ApprovalReviewed, Action: ActionPublish, To: ApprovalPublished},
}

// TransitionFor returns the edge leaving from on action.
func TransitionFor(from ApprovalStatus, action ApprovalAction) (Transition, bool) {
	for _, t := range ApprovalTransitions {
		if t.From == from && t.Action == action {
			return t, true
		}
	}
	return Transition{}, false
}

// CanTransition reports whether from may move directly to to.
func CanTransition(from, to ApprovalStatus) bool {
	if to == ApprovalRejected {
		return CanReject(from)
	}
	for _, t := range ApprovalTransitions {
		if t.From == from && t.To == to {
			return true
		}
	}
	return false
}

// CanReject reports whether a unit in status s may be rejected.
func CanReject(s ApprovalStatus) bool {
	return s.AtLeast(ApprovalSubmitted) && !s.Terminal()
}

// AggregateStatus folds unit statuses into the displayed section status:
// the lowest priority wins and any rejection overrides. No units means draft.
func AggregateStatus(statuses []ApprovalStatus) ApprovalStatus {
	if len(statuses) == 0 {
		return ApprovalDraft
	}
	lowest := statuses[0]
	for _, s := range statuses {
		if s == ApprovalRejected {
			return ApprovalRejected
		}
		if s.Priority() < lowest.Priority() {
			lowest = s
		}
	}
	return lowest
}

// EntryAction tells the data-entry role whether a rejection is waiting on it.
type EntryAction string

const (
	EntryActionNone     EntryAction = "none"
	EntryActionNeeded   EntryAction = "needed"
	EntryActionResolved EntryAction = "resolved"
)
