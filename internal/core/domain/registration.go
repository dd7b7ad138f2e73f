package domain

import "time"

// Status is the review state of a registration. New submissions always start
// as pending; staff may move a record between any two states.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Registration is one applicant's submission and its review state.
// The images are stored inline as base64-encoded strings.
type Registration struct {
	ID               string    `json:"id"`
	FullName         string    `json:"full_name"`
	FatherName       string    `json:"father_name"`
	MotherName       string    `json:"mother_name"`
	DOB              string    `json:"dob"`
	Gender           string    `json:"gender"`
	Phone            string    `json:"phone"`
	NationalID       string    `json:"national_id"`
	Email            string    `json:"email"`
	ProfileImage     string    `json:"profile_image"`
	IDDocumentImage  string    `json:"id_document_image"`
	Region           string    `json:"region"`
	State            string    `json:"state"`
	District         string    `json:"district"`
	Status           Status    `json:"status"`
	RegistrationDate time.Time `json:"registration_date"`
}

// Submission carries the applicant-supplied fields of a new registration.
// Status and registration date are deliberately absent: the server assigns
// both and ignores whatever the caller sends for them.
type Submission struct {
	FullName        string `json:"full_name"`
	FatherName      string `json:"father_name"`
	MotherName      string `json:"mother_name"`
	DOB             string `json:"dob"`
	Gender          string `json:"gender"`
	Phone           string `json:"phone"`
	NationalID      string `json:"national_id"`
	Email           string `json:"email"`
	ProfileImage    string `json:"profile_image"`
	IDDocumentImage string `json:"id_document_image"`
	Region          string `json:"region"`
	State           string `json:"state"`
	District        string `json:"district"`
}

// MissingFields returns the names of required fields that are empty.
func (s Submission) MissingFields() []string {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"full_name", s.FullName},
		{"father_name", s.FatherName},
		{"mother_name", s.MotherName},
		{"dob", s.DOB},
		{"gender", s.Gender},
		{"phone", s.Phone},
		{"national_id", s.NationalID},
		{"email", s.Email},
		{"profile_image", s.ProfileImage},
		{"id_document_image", s.IDDocumentImage},
		{"region", s.Region},
		{"state", s.State},
		{"district", s.District},
	}
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// RegistrationSummary is the minimal projection returned by list and stats
// endpoints. Sensitive fields (images, family names) never appear here.
type RegistrationSummary struct {
	ID               string    `json:"id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	Location         string    `json:"location,omitempty"`
	Status           Status    `json:"status"`
	RegistrationDate time.Time `json:"registration_date"`
}

// RegistrationPage is one page of summaries plus pagination facts.
type RegistrationPage struct {
	Players    []RegistrationSummary `json:"players"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"totalPages"`
}

// StatusCounts holds per-status registration counts.
type StatusCounts struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
}

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	TotalPlayers        int                   `json:"totalPlayers"`
	PendingPlayers      int                   `json:"pendingPlayers"`
	ApprovedPlayers     int                   `json:"approvedPlayers"`
	RejectedPlayers     int                   `json:"rejectedPlayers"`
	RecentRegistrations []RegistrationSummary `json:"recentRegistrations"`
}
