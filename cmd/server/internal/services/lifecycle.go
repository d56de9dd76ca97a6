package services

import (
	"context"
	"log/slog"

	"github.com/kycbridge/meeting-server/cmd/server/internal/devices"
)

// LifecycleService handles explicit participant joins and leaves after
// assignment has placed them in a room.
type LifecycleService struct {
	store  MeetingStore
	logger *slog.Logger
}

// NewLifecycleService wires the participant lifecycle updates.
func NewLifecycleService(store MeetingStore, logger *slog.Logger) *LifecycleService {
	return &LifecycleService{store: store, logger: logger}
}

// JoinRoom classifies the caller's User-Agent and records the device and
// browser labels on the matching participant entry. The entry must already
// exist (assignment creates it); an update matching nothing is a silent
// no-op, by contract.
func (s *LifecycleService) JoinRoom(ctx context.Context, roomName, email, userAgent string) error {
	info := devices.Classify(userAgent)
	if err := s.store.SetParticipantDevice(ctx, roomName, email, info.Device, info.Browser); err != nil {
		return err
	}
	s.logger.Info("participant device updated",
		"room", roomName,
		"device", info.Device,
		"browser", info.Browser,
	)
	return nil
}

// LeaveRoom removes the participant from the room's participant list.
// Idempotent; the meeting record survives even when it empties out.
func (s *LifecycleService) LeaveRoom(ctx context.Context, roomName, email string) error {
	if err := s.store.RemoveParticipant(ctx, roomName, email); err != nil {
		return err
	}
	s.logger.Info("participant left room", "room", roomName)
	return nil
}
