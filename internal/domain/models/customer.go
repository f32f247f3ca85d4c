package models

import (
	"time"

	"opticrm/internal/domain"
)

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "aktiv"
	CustomerInactive CustomerStatus = "inaktiv"
	CustomerProspect CustomerStatus = "interessent"
	CustomerArchived CustomerStatus = "archiviert"
)

type InsuranceType string

const (
	InsurancePublic  InsuranceType = "gesetzlich"
	InsurancePrivate InsuranceType = "privat"
	InsuranceSelfPay InsuranceType = "selbstzahler"
)

const (
	DefaultCountry           = "Deutschland"
	DefaultContactPreference = "email"
)

type Customer struct {
	ID             int64        `json:"id"`
	OrganizationID int64        `json:"organization_id"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Email          *string      `json:"email"`
	Phone          *string      `json:"phone"`
	Mobile         *string      `json:"mobile"`
	DateOfBirth    *domain.Date `json:"date_of_birth"`

	AddressStreet     *string `json:"address_street"`
	AddressCity       *string `json:"address_city"`
	AddressPostalCode *string `json:"address_postal_code"`
	AddressCountry    *string `json:"address_country"`

	InsuranceProvider *string        `json:"insurance_provider"`
	InsuranceType     *InsuranceType `json:"insurance_type"`
	InsuranceNumber   *string        `json:"insurance_number"`

	LastExamDate              *domain.Date `json:"last_exam_date"`
	NextAppointment           *time.Time   `json:"next_appointment"`
	PrescriptionSphereRight   *float64     `json:"prescription_sphere_right"`
	PrescriptionSphereLeft    *float64     `json:"prescription_sphere_left"`
	PrescriptionCylinderRight *float64     `json:"prescription_cylinder_right"`
	PrescriptionCylinderLeft  *float64     `json:"prescription_cylinder_left"`
	PrescriptionAxisRight     *int         `json:"prescription_axis_right"`
	PrescriptionAxisLeft      *int         `json:"prescription_axis_left"`
	PrescriptionAddition      *float64     `json:"prescription_addition"`
	PrescriptionPD            *float64     `json:"prescription_pd"`

	Allergies         *string `json:"allergies"`
	MedicalNotes      *string `json:"medical_notes"`
	FramePreferences  *string `json:"frame_preferences"`
	ContactPreference *string `json:"contact_preference"`

	Status    CustomerStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type CustomerCreate struct {
	FirstName   string       `json:"first_name" binding:"required,min=1,max=100"`
	LastName    string       `json:"last_name" binding:"required,min=1,max=100"`
	Email       *string      `json:"email" binding:"omitempty,email,max=255"`
	Phone       *string      `json:"phone" binding:"omitempty,max=20"`
	Mobile      *string      `json:"mobile" binding:"omitempty,max=20"`
	DateOfBirth *domain.Date `json:"date_of_birth"`

	AddressStreet     *string `json:"address_street" binding:"omitempty,max=200"`
	AddressCity       *string `json:"address_city" binding:"omitempty,max=100"`
	AddressPostalCode *string `json:"address_postal_code" binding:"omitempty,max=10"`
	AddressCountry    *string `json:"address_country" binding:"omitempty,max=50"`

	InsuranceProvider *string        `json:"insurance_provider" binding:"omitempty,max=100"`
	InsuranceType     *InsuranceType `json:"insurance_type" binding:"omitempty,oneof=gesetzlich privat selbstzahler"`
	InsuranceNumber   *string        `json:"insurance_number" binding:"omitempty,max=50"`

	LastExamDate              *domain.Date `json:"last_exam_date"`
	NextAppointment           *time.Time   `json:"next_appointment"`
	PrescriptionSphereRight   *float64     `json:"prescription_sphere_right" binding:"omitempty,gte=-20,lte=20"`
	PrescriptionSphereLeft    *float64     `json:"prescription_sphere_left" binding:"omitempty,gte=-20,lte=20"`
	PrescriptionCylinderRight *float64     `json:"prescription_cylinder_right" binding:"omitempty,gte=-10,lte=10"`
	PrescriptionCylinderLeft  *float64     `json:"prescription_cylinder_left" binding:"omitempty,gte=-10,lte=10"`
	PrescriptionAxisRight     *int         `json:"prescription_axis_right" binding:"omitempty,gte=0,lte=180"`
	PrescriptionAxisLeft      *int         `json:"prescription_axis_left" binding:"omitempty,gte=0,lte=180"`
	PrescriptionAddition      *float64     `json:"prescription_addition" binding:"omitempty,gte=0,lte=5"`
	PrescriptionPD            *float64     `json:"prescription_pd" binding:"omitempty,gte=50,lte=80"`

	Allergies         *string `json:"allergies" binding:"omitempty,max=500"`
	MedicalNotes      *string `json:"medical_notes" binding:"omitempty,max=1000"`
	FramePreferences  *string `json:"frame_preferences" binding:"omitempty,max=500"`
	ContactPreference *string `json:"contact_preference" binding:"omitempty,max=50"`

	Status CustomerStatus `json:"status" binding:"omitempty,oneof=aktiv inaktiv interessent archiviert"`
}

// CustomerUpdate only changes fields present in the request body.
type CustomerUpdate struct {
	FirstName   domain.Optional[string]      `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName    domain.Optional[string]      `json:"last_name" binding:"omitempty,min=1,max=100"`
	Email       domain.Optional[string]      `json:"email" binding:"omitempty,email,max=255"`
	Phone       domain.Optional[string]      `json:"phone" binding:"omitempty,max=20"`
	Mobile      domain.Optional[string]      `json:"mobile" binding:"omitempty,max=20"`
	DateOfBirth domain.Optional[domain.Date] `json:"date_of_birth"`

	AddressStreet     domain.Optional[string] `json:"address_street" binding:"omitempty,max=200"`
	AddressCity       domain.Optional[string] `json:"address_city" binding:"omitempty,max=100"`
	AddressPostalCode domain.Optional[string] `json:"address_postal_code" binding:"omitempty,max=10"`
	AddressCountry    domain.Optional[string] `json:"address_country" binding:"omitempty,max=50"`

	InsuranceProvider domain.Optional[string]        `json:"insurance_provider" binding:"omitempty,max=100"`
	InsuranceType     domain.Optional[InsuranceType] `json:"insurance_type" binding:"omitempty,oneof=gesetzlich privat selbstzahler"`
	InsuranceNumber   domain.Optional[string]        `json:"insurance_number" binding:"omitempty,max=50"`

	LastExamDate              domain.Optional[domain.Date] `json:"last_exam_date"`
	NextAppointment           domain.Optional[time.Time]   `json:"next_appointment"`
	PrescriptionSphereRight   domain.Optional[float64]     `json:"prescription_sphere_right" binding:"omitempty,gte=-20,lte=20"`
	PrescriptionSphereLeft    domain.Optional[float64]     `json:"prescription_sphere_left" binding:"omitempty,gte=-20,lte=20"`
	PrescriptionCylinderRight domain.Optional[float64]     `json:"prescription_cylinder_right" binding:"omitempty,gte=-10,lte=10"`
	PrescriptionCylinderLeft  domain.Optional[float64]     `json:"prescription_cylinder_left" binding:"omitempty,gte=-10,lte=10"`
	PrescriptionAxisRight     domain.Optional[int]         `json:"prescription_axis_right" binding:"omitempty,gte=0,lte=180"`
	PrescriptionAxisLeft      domain.Optional[int]         `json:"prescription_axis_left" binding:"omitempty,gte=0,lte=180"`
	PrescriptionAddition      domain.Optional[float64]     `json:"prescription_addition" binding:"omitempty,gte=0,lte=5"`
	PrescriptionPD            domain.Optional[float64]     `json:"prescription_pd" binding:"omitempty,gte=50,lte=80"`

	Allergies         domain.Optional[string] `json:"allergies" binding:"omitempty,max=500"`
	MedicalNotes      domain.Optional[string] `json:"medical_notes" binding:"omitempty,max=1000"`
	FramePreferences  domain.Optional[string] `json:"frame_preferences" binding:"omitempty,max=500"`
	ContactPreference domain.Optional[string] `json:"contact_preference" binding:"omitempty,max=50"`

	Status domain.Optional[CustomerStatus] `json:"status" binding:"omitempty,oneof=aktiv inaktiv interessent archiviert"`
}

type CustomerFilter struct {
	Search        string
	Status        CustomerStatus
	InsuranceType InsuranceType
}
