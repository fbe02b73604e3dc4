package artifacts

// Artifact kinds produced by the resume-authoring side of the product.
// The classifier consumes existence and counts, never content.
const (
	KindResume           = "resume"
	KindDraft            = "draft"
	KindWizardSession    = "wizard_session"
	KindInterviewSession = "interview_session"
	KindCoverLetter      = "cover_letter"
	KindSectionOutput    = "section_output"
)

// Counts is the per-account artifact tally the resolver reads.
type Counts struct {
	CompletedResumes  int `json:"completedResumes"`
	Drafts            int `json:"drafts"`
	WizardSessions    int `json:"wizardSessions"`
	InterviewSessions int `json:"interviewSessions"`
	CoverLetters      int `json:"coverLetters"`
	SectionOutputs    int `json:"sectionOutputs"`
}

// HasAnyResumeWork reports whether the account started authoring at all.
func (c Counts) HasAnyResumeWork() bool {
	return c.CompletedResumes > 0 || c.Drafts > 0 || c.WizardSessions > 0
}

// InProgressOnly reports a draft or wizard session without a completed resume.
func (c Counts) InProgressOnly() bool {
	return (c.Drafts > 0 || c.WizardSessions > 0) && c.CompletedResumes == 0
}

// AdvancedUsage reports engagement beyond a single completed resume:
// interviews, cover letters, section edits, or multiple resumes.
func (c Counts) AdvancedUsage() bool {
	return c.InterviewSessions >= 1 || c.CoverLetters >= 1 || c.SectionOutputs >= 1 || c.CompletedResumes > 1
}

// ValidKind reports whether kind is one of the known artifact kinds.
func ValidKind(kind string) bool {
	switch kind {
	case KindResume, KindDraft, KindWizardSession, KindInterviewSession, KindCoverLetter, KindSectionOutput:
		return true
	default:
		return false
	}
}
