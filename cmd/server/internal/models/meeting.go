package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meeting is the persisted record for one video room in the meetings
// collection.
type Meeting struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoomName   string             `bson:"roomName" json:"roomName"`
	CustomerID string             `bson:"customerId" json:"customerId"`
	AgentID    string             `bson:"agentId" json:"agentId"`
	StartTime  time.Time          `bson:"startTime" json:"startTime"`
	// Duration is write-once zero; nothing updates it today.
	Duration     int           `bson:"duration" json:"duration"`
	Participants []Participant `bson:"participants" json:"participants"`
}

// Participant is one party in a Meeting, embedded in the participants
// array in join order.
type Participant struct {
	Email   string `bson:"email" json:"email"`
	Device  string `bson:"device" json:"device"`
	Browser string `bson:"browser" json:"browser"`
}

// DefaultDeviceLabel is recorded for a participant until an explicit room
// join reports real device metadata.
const DefaultDeviceLabel = "unknown"

// NewParticipant returns a participant with placeholder device metadata.
func NewParticipant(email string) Participant {
	return Participant{Email: email, Device: DefaultDeviceLabel, Browser: DefaultDeviceLabel}
}

// MeetingView is a Meeting annotated for the admin listing.
// CustomerWaiting is derived, never stored.
type MeetingView struct {
	Meeting         `bson:",inline"`
	CustomerWaiting bool `json:"customerWaiting"`
}

// WithWaiting annotates m with the derived customer-waiting flag, which is
// true exactly when one participant has joined so far.
func WithWaiting(m Meeting) MeetingView {
	return MeetingView{Meeting: m, CustomerWaiting: len(m.Participants) == 1}
}
