package models

// LookingFor is the browse filter chosen by the caller
type LookingFor string

const (
	LookingForMentors LookingFor = "mentors"
	LookingForMentees LookingFor = "mentees"
)

// TargetRole maps the filter to the role candidates must hold (besides "both")
func (l LookingFor) TargetRole() (Role, bool) {
	switch l {
	case LookingForMentors:
		return RoleMentor, true
	case LookingForMentees:
		return RoleMentee, true
	default:
		return "", false
	}
}

// CandidateSummary is a browsable profile joined with its owner's email
type CandidateSummary struct {
	ProfileID string   `json:"profileId"`
	UserID    string   `json:"userId"`
	Email     string   `json:"email"`
	Role      Role     `json:"role"`
	Bio       *string  `json:"bio,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	Interests []string `json:"interests,omitempty"`
	AvatarURL *string  `json:"avatarUrl,omitempty"`
}
