package servicedesk

import "time"

// Appointment is a booked service visit.
type Appointment struct {
	ID           string `json:"appointment_id"`
	ServiceType  string `json:"service_type"`
	Date         string `json:"date"` // YYYY-MM-DD as spoken/confirmed to the caller
	TimeSlot     string `json:"time"`
	VehicleInfo  string `json:"vehicle,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
	Phone        string `json:"phone,omitempty"`

	ConfirmationSent bool      `json:"confirmation_sent"`
	CreatedAt        time.Time `json:"created_at"`
}

// Availability is the answer to "can we take this date".
type Availability struct {
	Available bool   `json:"available"`
	NextSlot  string `json:"next_available_slot,omitempty"`
}

// BookingRequest mirrors the schedule_service tool parameters.
type BookingRequest struct {
	ServiceType   string `json:"service_type"`
	PreferredDate string `json:"preferred_date"`
	VehicleInfo   string `json:"vehicle_info,omitempty"`
	CustomerName  string `json:"customer_name,omitempty"`
	Phone         string `json:"phone,omitempty"`
}
