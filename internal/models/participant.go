package models

// Participant is the device-local session record: who this browser claims to
// be and whether it already submitted for the room it joined. Nicknames are
// not identities; two people can share one. Stored in redis, not postgres.
type Participant struct {
	Nickname     string `json:"nickname"`
	RoomCode     string `json:"room_code"`
	HasSubmitted bool   `json:"has_submitted"`
}
