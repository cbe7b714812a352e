package models

import "time"

// Role is the access level assigned to a user account by the backend.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one the backend is allowed to issue.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// UserProfile is the authenticated user's identity as returned by the backend.
// It is immutable on the client side; a new profile only arrives via re-login.
type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Role      Role   `json:"role"`
}

// FullName returns the display name for the profile.
func (u UserProfile) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the profile carries the admin role.
func (u UserProfile) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Prediction is the result of the pest-detection endpoint for one image.
type Prediction struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// Pest is a reference-data entry describing a crop pest.
type Pest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Pesticide is a reference-data entry describing a pesticide product.
type Pesticide struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	TargetPest        string `json:"target_pest"`
	Dosage            string `json:"dosage"`
	SafetyPrecautions string `json:"safety_precautions"`
}

// PesticideInfo is the lightweight pesticide entry embedded in a pest lookup.
type PesticideInfo struct {
	Name              string `json:"name"`
	Dosage            string `json:"dosage"`
	SafetyPrecautions string `json:"safety_precautions"`
}

// PestInfo is the detail payload for a single pest by name, combining the
// description with the pesticides recommended against it.
type PestInfo struct {
	PestName    string          `json:"pest_name"`
	Description string          `json:"description"`
	Pesticides  []PesticideInfo `json:"pesticides"`
}

// Report is a saved pest-detection result.
type Report struct {
	ID          string    `json:"id,omitempty"`
	PestName    string    `json:"pest_name"`
	Confidence  float64   `json:"confidence"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id,omitempty"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}

// Feedback is a user-submitted feedback entry.
type Feedback struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}
