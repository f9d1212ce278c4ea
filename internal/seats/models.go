package seats

// SeatMap is the availability picture for one session on one calendar
// day. Seat numbers run from 1 to the room's seat count.
type SeatMap struct {
	SessionID  string `json:"session_id"`
	Date       string `json:"date"`
	SeatsCount int    `json:"seats_count"`
	Free       []int  `json:"free"`
	Taken      []int  `json:"taken"`
}
