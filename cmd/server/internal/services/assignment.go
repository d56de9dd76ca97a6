// Package services holds the decision logic between the HTTP handlers and
// the meeting store / room provider.
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kycbridge/meeting-server/cmd/server/internal/models"
	"github.com/kycbridge/meeting-server/cmd/server/internal/provider"
	"github.com/kycbridge/meeting-server/cmd/server/internal/store"
	"github.com/kycbridge/meeting-server/pkg/metrics"
)

// MeetingStore is the slice of the store the services depend on.
type MeetingStore interface {
	JoinAvailable(ctx context.Context, p models.Participant) (*models.Meeting, error)
	Insert(ctx context.Context, m models.Meeting) error
	List(ctx context.Context) ([]models.Meeting, error)
	SetParticipantDevice(ctx context.Context, roomName, email, device, browser string) error
	RemoveParticipant(ctx context.Context, roomName, email string) error
}

// ErrOrphanedRoom marks the partial failure where a provider room was
// created, the meeting record could not be persisted, and the compensating
// room deletion failed too. The room keeps existing at the provider.
var ErrOrphanedRoom = errors.New("provider room orphaned: meeting not persisted")

// ErrRolledBack marks the partial failure where the meeting record could
// not be persisted and the freshly created provider room was deleted again.
var ErrRolledBack = errors.New("meeting not persisted: provider room rolled back")

// AssignmentService places customers into two-party rooms: it joins the
// first room with spare capacity, or provisions a new one.
type AssignmentService struct {
	store   MeetingStore
	rooms   provider.RoomProvider
	agentID string
	baseURL string
	logger  *slog.Logger
}

// NewAssignmentService wires the assignment flow. agentID is the statically
// assigned support agent; baseURL prefixes the join link returned to the
// customer.
func NewAssignmentService(store MeetingStore, rooms provider.RoomProvider, agentID, baseURL string, logger *slog.Logger) *AssignmentService {
	return &AssignmentService{
		store:   store,
		rooms:   rooms,
		agentID: agentID,
		baseURL: baseURL,
		logger:  logger,
	}
}

// SubmitDetails assigns the caller to a room and returns the join link.
//
// The capacity check and the participant append run as one conditional
// store update, so two concurrent calls cannot both squeeze into the last
// free slot. When no room has capacity, a new provider room is created and
// a fresh meeting inserted; if that insert fails the provider room is
// deleted again (best effort).
func (s *AssignmentService) SubmitDetails(ctx context.Context, email string) (string, error) {
	joined, err := s.store.JoinAvailable(ctx, models.NewParticipant(email))
	if err != nil {
		metrics.RecordAssignment("error")
		return "", err
	}
	if joined != nil {
		metrics.RecordAssignment("joined")
		s.logger.Info("participant joined existing room",
			"room", joined.RoomName,
			"participants", len(joined.Participants),
		)
		return s.baseURL + joined.RoomName, nil
	}

	roomName := "room-" + newRoomID()
	if err := s.rooms.CreateRoom(ctx, roomName); err != nil {
		metrics.RecordAssignment("error")
		return "", err
	}

	meeting := store.NewMeeting(roomName, email, s.agentID)
	if err := s.store.Insert(ctx, meeting); err != nil {
		metrics.RecordAssignment("error")
		if delErr := s.rooms.DeleteRoom(ctx, roomName); delErr != nil {
			s.logger.Error("room compensation failed",
				"room", roomName,
				"insert_error", err,
				"delete_error", delErr,
			)
			return "", fmt.Errorf("%w: %s", ErrOrphanedRoom, roomName)
		}
		s.logger.Warn("meeting insert failed, provider room rolled back", "room", roomName, "error", err)
		return "", fmt.Errorf("%w: %v", ErrRolledBack, err)
	}

	metrics.RecordAssignment("created")
	s.logger.Info("created new meeting room", "room", roomName, "agent", s.agentID)
	return s.baseURL + roomName, nil
}

const roomIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newRoomID returns a 9-character base-36 room identifier.
func newRoomID() string {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("failed to generate room id: %v", err))
	}
	for i, b := range buf {
		buf[i] = roomIDAlphabet[int(b)%len(roomIDAlphabet)]
	}
	return string(buf)
}
