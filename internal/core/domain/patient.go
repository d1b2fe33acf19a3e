package domain

import (
	"errors"
	"time"
)

var ErrPatientNotFound = errors.New("patient not found")

// Gender values accepted on patient profiles.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is a known gender value. Empty is allowed because
// the field is optional at registration time.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, "":
		return true
	}
	return false
}

// EmergencyContact is who to call when the patient cannot answer.
type EmergencyContact struct {
	Name         string `json:"name" bson:"name"`
	Relationship string `json:"relationship" bson:"relationship"`
	Phone        string `json:"phone" bson:"phone"`
}

// MedicalHistory holds free-form clinical background lists.
type MedicalHistory struct {
	Allergies   []string `json:"allergies" bson:"allergies"`
	Conditions  []string `json:"conditions" bson:"conditions"`
	Medications []string `json:"medications" bson:"medications"`
}

// Patient extends a User with role=patient. Lifecycle is tied to the owning user.
type Patient struct {
	UserID           string           `json:"user_id"`
	DateOfBirth      time.Time        `json:"date_of_birth"`
	Gender           Gender           `json:"gender"`
	Phone            string           `json:"phone"`
	Address          string           `json:"address"`
	EmergencyContact EmergencyContact `json:"emergency_contact"`
	History          MedicalHistory   `json:"medical_history"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
