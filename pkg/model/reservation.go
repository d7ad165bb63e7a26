package model

import "time"

// Reservation is a booked slot for a meeting room. This service only lists
// reservations; booking them belongs to another service.
type Reservation struct {
	ID       int64     `db:"id" json:"id"`
	RoomID   int64     `db:"room_id" json:"room_id"`
	FromTime time.Time `db:"from_time" json:"from_time"`
	ToTime   time.Time `db:"to_time" json:"to_time"`
	Created  time.Time `db:"created" json:"created"`
}
