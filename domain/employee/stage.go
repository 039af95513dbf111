package employee

// VerificationStage represents an employee profile's position in the
// review pipeline.
type VerificationStage string

// VerificationStage values, in pipeline order.
const (
	StageNotStarted             VerificationStage = "NOT_STARTED"
	StagePendingDetailsReview   VerificationStage = "PENDING_DETAILS_REVIEW"
	StagePendingDocumentsReview VerificationStage = "PENDING_DOCUMENTS_REVIEW"
	StagePendingRoleAssignment  VerificationStage = "PENDING_ROLE_ASSIGNMENT"
	StagePendingFinalApproval   VerificationStage = "PENDING_FINAL_APPROVAL"
	StageVerified               VerificationStage = "VERIFIED"
	StageRejected               VerificationStage = "REJECTED"
)

// AllStages returns every valid verification stage in pipeline order.
func AllStages() []VerificationStage {
	return []VerificationStage{
		StageNotStarted,
		StagePendingDetailsReview,
		StagePendingDocumentsReview,
		StagePendingRoleAssignment,
		StagePendingFinalApproval,
		StageVerified,
		StageRejected,
	}
}

// ParseStage parses a verification stage token. Unknown tokens return false.
func ParseStage(s string) (VerificationStage, bool) {
	for _, v := range AllStages() {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}

// String returns the string representation of the stage.
func (s VerificationStage) String() string {
	return string(s)
}

// IsTerminal returns true for VERIFIED and REJECTED.
func (s VerificationStage) IsTerminal() bool {
	return s == StageVerified || s == StageRejected
}

// Next returns the stage that follows s in the pipeline. Terminal stages
// return themselves.
func (s VerificationStage) Next() VerificationStage {
	switch s {
	case StageNotStarted:
		return StagePendingDetailsReview
	case StagePendingDetailsReview:
		return StagePendingDocumentsReview
	case StagePendingDocumentsReview:
		return StagePendingRoleAssignment
	case StagePendingRoleAssignment:
		return StagePendingFinalApproval
	case StagePendingFinalApproval:
		return StageVerified
	default:
		return s
	}
}

// CanAdvance reports whether the stage has a next pipeline step.
func (s VerificationStage) CanAdvance() bool {
	return !s.IsTerminal()
}
