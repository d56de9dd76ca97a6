package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewParticipant(t *testing.T) {
	p := NewParticipant("a@x.com")
	assert.Equal(t, "a@x.com", p.Email)
	assert.Equal(t, "unknown", p.Device)
	assert.Equal(t, "unknown", p.Browser)
}

func TestWithWaiting(t *testing.T) {
	tests := []struct {
		name         string
		participants []Participant
		waiting      bool
	}{
		{"empty", nil, false},
		{"one participant", []Participant{NewParticipant("a@x.com")}, true},
		{"full room", []Participant{NewParticipant("a@x.com"), NewParticipant("b@x.com")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := WithWaiting(Meeting{RoomName: "room-abc123def", Participants: tt.participants})
			assert.Equal(t, tt.waiting, view.CustomerWaiting)
			assert.Equal(t, "room-abc123def", view.RoomName)
		})
	}
}
