package models

// Doctor represents a bookable practitioner in the remote directory.
// Immutable from the client's perspective; refreshed by re-fetch.
type Doctor struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CRM       string `json:"CRM"`
	Specialty string `json:"especiality"`
	Address   string `json:"address"`
}

// ScheduleSlot represents one bookable slot in a doctor's agenda
type ScheduleSlot struct {
	ID       int64  `json:"id"`
	DoctorID int64  `json:"doctorId"`
	Date     string `json:"date"`
	Hour     string `json:"hour"`
	Booked   bool   `json:"booked"`
}
