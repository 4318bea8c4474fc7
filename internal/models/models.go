// Package models defines the shapes the Portfolio API reads and returns.
//
// Documents in MongoDB have no enforced schema, so nothing here describes a profile or
// a project field by field. A document is an untyped key/value map that has already
// been converted to JSON-safe values (see package bsonjson).
package models

// Document is one converted MongoDB document.
type Document = map[string]any

// Collection names, as provisioned by the seeding process.
const (
	CollectionProfiles       = "profiles"
	CollectionProjects       = "projects"
	CollectionEducations     = "educations"
	CollectionSkills         = "skills"
	CollectionCertifications = "certifications"
	CollectionAchievements   = "achievements"
)

// Portfolio is the body of GET /api/data.
// Profile is nil (JSON null) when the profiles collection is empty. The slices are
// always non-nil so empty collections encode as [] rather than null.
type Portfolio struct {
	Profile        Document   `json:"profile"`
	Projects       []Document `json:"projects"`
	Education      []Document `json:"education"`
	Skills         []Document `json:"skills"`
	Certifications []Document `json:"certifications"`
	Achievements   []Document `json:"achievements"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}
