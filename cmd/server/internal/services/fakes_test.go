package services

import (
	"context"
	"strings"

	"github.com/kycbridge/meeting-server/cmd/server/internal/models"
)

// fakeStore is an in-memory MeetingStore mirroring the capacity semantics
// of the real collection.
type fakeStore struct {
	meetings []models.Meeting

	joinErr   error
	insertErr error
	listErr   error
	updateErr error
	removeErr error
}

func (f *fakeStore) JoinAvailable(_ context.Context, p models.Participant) (*models.Meeting, error) {
	if f.joinErr != nil {
		return nil, f.joinErr
	}
	for i := range f.meetings {
		if len(f.meetings[i].Participants) < 2 {
			f.meetings[i].Participants = append(f.meetings[i].Participants, p)
			joined := f.meetings[i]
			return &joined, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Insert(_ context.Context, m models.Meeting) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.meetings = append(f.meetings, m)
	return nil
}

func (f *fakeStore) List(_ context.Context) ([]models.Meeting, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.meetings, nil
}

func (f *fakeStore) SetParticipantDevice(_ context.Context, roomName, email, device, browser string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.meetings {
		if f.meetings[i].RoomName != roomName {
			continue
		}
		for j := range f.meetings[i].Participants {
			if f.meetings[i].Participants[j].Email == email {
				f.meetings[i].Participants[j].Device = device
				f.meetings[i].Participants[j].Browser = browser
				return nil
			}
		}
	}
	return nil // zero-match updates are not errors
}

func (f *fakeStore) RemoveParticipant(_ context.Context, roomName, email string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	for i := range f.meetings {
		if f.meetings[i].RoomName != roomName {
			continue
		}
		kept := f.meetings[i].Participants[:0]
		for _, p := range f.meetings[i].Participants {
			if p.Email != email {
				kept = append(kept, p)
			}
		}
		f.meetings[i].Participants = kept
	}
	return nil
}

func (f *fakeStore) find(roomName string) *models.Meeting {
	for i := range f.meetings {
		if f.meetings[i].RoomName == roomName {
			return &f.meetings[i]
		}
	}
	return nil
}

// fakeProvider records provider calls instead of reaching the network.
type fakeProvider struct {
	created []string
	deleted []string
	actions []string // "room/participant/action"

	createErr error
	deleteErr error
	actionErr error
}

func (f *fakeProvider) CreateRoom(_ context.Context, name string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, name)
	return nil
}

func (f *fakeProvider) DeleteRoom(_ context.Context, name string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, name)
	return nil
}

func (f *fakeProvider) SendAction(_ context.Context, roomName, participantID, action string) error {
	if f.actionErr != nil {
		return f.actionErr
	}
	f.actions = append(f.actions, strings.Join([]string{roomName, participantID, action}, "/"))
	return nil
}
