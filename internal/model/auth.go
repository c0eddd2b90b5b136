package model

import "github.com/golang-jwt/jwt/v5"

// HostClaims are JWT claims for host (compliance admin) authentication
type HostClaims struct {
	HostID string `json:"hostId"`
	jwt.RegisteredClaims
}

// AssessmentClaims are JWT claims for assessment-scoped subject tokens
type AssessmentClaims struct {
	AssessmentID string `json:"assessmentId"`
	SubjectID    string `json:"subjectId"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for host login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token  string `json:"token"`
	HostID string `json:"hostId"`
}
