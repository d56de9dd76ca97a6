package services

import (
	"context"
	"log/slog"

	"github.com/kycbridge/meeting-server/cmd/server/internal/models"
	"github.com/kycbridge/meeting-server/cmd/server/internal/provider"
)

// SwitchCameraAction is the provider action identifier relayed to a
// participant when an admin requests a camera switch.
const SwitchCameraAction = "switch-camera"

// AdminService backs the admin surface: the annotated meeting listing and
// per-participant action relays.
type AdminService struct {
	store  MeetingStore
	rooms  provider.RoomProvider
	logger *slog.Logger
}

// NewAdminService wires the admin operations.
func NewAdminService(store MeetingStore, rooms provider.RoomProvider, logger *slog.Logger) *AdminService {
	return &AdminService{store: store, rooms: rooms, logger: logger}
}

// ListMeetings returns every meeting annotated with the derived
// customer-waiting flag. The stored records are not mutated.
func (s *AdminService) ListMeetings(ctx context.Context) ([]models.MeetingView, error) {
	meetings, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.MeetingView, 0, len(meetings))
	for _, m := range meetings {
		views = append(views, models.WithWaiting(m))
	}
	return views, nil
}

// SwitchCamera relays the camera-switch action to one participant. The
// provider response body is ignored; no check is made that the participant
// actually belongs to the room.
func (s *AdminService) SwitchCamera(ctx context.Context, roomName, participantID string) error {
	if err := s.rooms.SendAction(ctx, roomName, participantID, SwitchCameraAction); err != nil {
		return err
	}
	s.logger.Info("switch camera command relayed", "room", roomName, "participant", participantID)
	return nil
}
