package model

import "time"

// Role is the kind of account a user registers as
type Role string

const (
	RoleWorker     Role = "WORKER"
	RoleContractor Role = "CONTRACTOR"
)

// Location is a latitude/longitude pair in decimal degrees
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether both coordinates are finite and within range.
func (l Location) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

// User represents a person talking to the bot, identified by phone number
type User struct {
	ID          int       `json:"id"`
	Phone       string    `json:"phone_number"`
	Role        Role      `json:"user_type"`
	DisplayName string    `json:"full_name"`
	Location    *Location `json:"location,omitempty"` // nil until the user shares it
	Stage       Stage     `json:"conversation_stage"`
	CreatedAt   time.Time `json:"created_at"`
}

// Coordinates splits the location into nullable columns.
func (u *User) Coordinates() (*float64, *float64) {
	if u.Location == nil {
		return nil, nil
	}
	lat, lon := u.Location.Latitude, u.Location.Longitude
	return &lat, &lon
}

// SetCoordinates sets the location only when both values are present.
func (u *User) SetCoordinates(lat, lon *float64) {
	if lat == nil || lon == nil {
		u.Location = nil
		return
	}
	u.Location = &Location{Latitude: *lat, Longitude: *lon}
}
