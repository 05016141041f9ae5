package room

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
)

// ConnectionState is whatever the conferencing transport reports. The values
// below are the common ones, transient transport states pass through as-is.
type ConnectionState string

const (
	ConnectionStateConnecting   ConnectionState = "connecting"
	ConnectionStateConnected    ConnectionState = "connected"
	ConnectionStateDisconnected ConnectionState = "disconnected"
)

// Participant is a snapshot of one connected user, owned by the transport.
// The projector only reads these, never mutates them.
type Participant struct {
	SessionID       string          `json:"sessionId"`
	DisplayName     string          `json:"displayName"`
	Role            Role            `json:"role"`
	AudioEnabled    bool            `json:"audioEnabled"`
	VideoEnabled    bool            `json:"videoEnabled"`
	IsLocal         bool            `json:"isLocal"`
	ConnectionState ConnectionState `json:"connectionState"`
}

type Summary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ParticipantCount int    `json:"participantCount"`
	IsAtCapacity     bool   `json:"isAtCapacity"`
}

type RoleBuckets struct {
	Instructors []Participant `json:"instructors"`
	Students    []Participant `json:"students"`
}

// Summarize projects a room and its live roster into the listing view.
// The displayed count is clamped to MaxCapacity, while the capacity flag is
// evaluated against the unclamped roster length. Both behaviors are
// deliberate: an over-full room still displays MaxCapacity but reports
// IsAtCapacity from the real length.
func Summarize(room Room, roster []Participant) Summary {
	count := len(roster)
	if count > room.MaxCapacity {
		count = room.MaxCapacity
	}

	return Summary{
		ID:               room.ID,
		Name:             room.DisplayName,
		ParticipantCount: count,
		IsAtCapacity:     len(roster) >= room.MaxCapacity,
	}
}

// PartitionByRole buckets a roster by role, preserving each participant's
// relative order. Unrecognized roles are dropped from both buckets.
func PartitionByRole(roster []Participant) RoleBuckets {
	buckets := RoleBuckets{
		Instructors: make([]Participant, 0),
		Students:    make([]Participant, 0),
	}

	for _, participant := range roster {
		switch participant.Role {
		case RoleInstructor:
			buckets.Instructors = append(buckets.Instructors, participant)
		case RoleStudent:
			buckets.Students = append(buckets.Students, participant)
		}
	}

	return buckets
}
