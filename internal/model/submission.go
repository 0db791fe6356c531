package model

import "time"

// Submission is the parent record of one document package (a regulatory
// resumption package or a PERT/CPM/PDM schedule package).
// This is a pure domain model with no database-specific dependencies or tags.
type Submission struct {
	ID             string `json:"id"`
	Kind           string `json:"upload_type"`
	ContractorName string `json:"contractor_name"`
	ProjectName    string `json:"project_name"`
	Notes          string `json:"notes"`

	// Certifier fields are filled only for resumption packages.
	CertifierName        string `json:"certifier_name,omitempty"`
	CertifierDesignation string `json:"certifier_designation,omitempty"`
	CertifierDate        string `json:"certifier_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// AttachmentCount is populated only by listings that request counts.
	AttachmentCount *int `json:"attachment_count,omitempty"`
}
