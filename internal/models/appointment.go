package models

// Appointment represents a booking between a user and a doctor at a
// schedule slot.
type Appointment struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	DoctorID   int64  `json:"doctorId"`
	DoctorName string `json:"doctorName,omitempty"`
	Specialty  string `json:"especiality,omitempty"`
	Date       string `json:"date"`
	Hour       string `json:"hour"`
}
