package dtos

// SignupRequest creates a recruiter account. Field-presence errors are
// reported with the same message for all three required fields, so the
// handler validates by hand instead of relying on binding tags.
type SignupRequest struct {
	Nome     string `json:"nome"`
	Empresa  string `json:"empresa"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest distinguishes "absent" from "set to empty" with
// pointers; only present fields are patched.
type UpdateProfileRequest struct {
	Nome      *string `json:"nome"`
	Empresa   *string `json:"empresa"`
	AvatarURL *string `json:"avatar_url"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password"`
}

type CreateJobRequest struct {
	Titulo                 string `json:"titulo"`
	Descricao              string `json:"descricao"`
	Endereco               string `json:"endereco"`
	RequisitosObrigatorios string `json:"requisitos_obrigatorios"`
	RequisitosDesejaveis   string `json:"requisitos_desejaveis"`
	Usuario                []int  `json:"usuario"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AnalyzeCandidateRequest feeds the AI screening of a resume. JobID is
// optional; when present the job's requirements are scored against.
type AnalyzeCandidateRequest struct {
	ResumeText string `json:"resumeText" binding:"required"`
	JobID      int    `json:"jobId"`
}

// EventData is the interview slot picked in the UI. Start and End are
// RFC3339 timestamps passed through to Google untouched.
type EventData struct {
	Title   string `json:"title"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Details string `json:"details"`
}

// BookingCandidate and BookingJob are denormalized copies sent by the
// UI alongside the booking so the event description and the schedule
// row's links can be built without extra fetches.
type BookingCandidate struct {
	ID       int     `json:"id"`
	Nome     string  `json:"nome"`
	Telefone *string `json:"telefone"`
}

type BookingJob struct {
	ID     int    `json:"id"`
	Titulo string `json:"titulo"`
}

type CreateEventRequest struct {
	UserID    int              `json:"userId"`
	EventData EventData        `json:"eventData"`
	Candidate BookingCandidate `json:"candidate"`
	Job       BookingJob       `json:"job"`
}

// Complete reports whether all the pieces a booking needs are present.
func (r CreateEventRequest) Complete() bool {
	return r.UserID != 0 && r.EventData.Title != "" && r.EventData.Start != "" &&
		r.EventData.End != "" && r.Candidate.ID != 0 && r.Job.ID != 0
}

// UserProfile is the public projection of a user row. Nullable fields
// stay pointers so the JSON matches what the UI expects (null, not "").
type UserProfile struct {
	ID                 int     `json:"id"`
	Nome               string  `json:"nome"`
	Email              string  `json:"email"`
	Empresa            string  `json:"empresa"`
	Telefone           string  `json:"telefone"`
	AvatarURL          *string `json:"avatar_url"`
	GoogleRefreshToken *string `json:"google_refresh_token"`
}
