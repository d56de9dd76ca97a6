// Package store persists meeting records in a MongoDB collection.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/kycbridge/meeting-server/cmd/server/internal/models"
)

const meetingsCollection = "meetings"

// MeetingStore wraps the meetings collection. One instance is created at
// process start and shared by every request handler; pooling is delegated
// to the driver.
type MeetingStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Connect establishes the MongoDB connection and verifies it with a ping,
// so a misconfigured deployment fails at startup rather than on the first
// request.
func Connect(ctx context.Context, uri, database string) (*MeetingStore, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	return &MeetingStore{
		client:     client,
		collection: client.Database(database).Collection(meetingsCollection),
	}, nil
}

// Disconnect releases the underlying connection pool.
func (s *MeetingStore) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping verifies the store is reachable; used by the readiness probe.
func (s *MeetingStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// JoinAvailable appends p to the first meeting holding fewer than two
// participants and returns the updated meeting. The capacity check and the
// append run as one FindOneAndUpdate, so concurrent assignment requests
// cannot jointly overfill a room. Returns (nil, nil) when every room is
// full.
func (s *MeetingStore) JoinAvailable(ctx context.Context, p models.Participant) (*models.Meeting, error) {
	filter := bson.M{
		"$expr": bson.M{"$lt": bson.A{bson.M{"$size": "$participants"}, 2}},
	}
	update := bson.M{"$push": bson.M{"participants": p}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var meeting models.Meeting
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&meeting)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to join available room: %w", err)
	}
	return &meeting, nil
}

// Insert stores a newly created meeting.
func (s *MeetingStore) Insert(ctx context.Context, m models.Meeting) error {
	if _, err := s.collection.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to insert meeting: %w", err)
	}
	return nil
}

// List returns every meeting in the store's natural order.
func (s *MeetingStore) List(ctx context.Context) ([]models.Meeting, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	defer cursor.Close(ctx)

	var meetings []models.Meeting
	if err := cursor.All(ctx, &meetings); err != nil {
		return nil, fmt.Errorf("failed to decode meetings: %w", err)
	}
	return meetings, nil
}

// SetParticipantDevice sets device metadata on the participant matched by
// room name and email via a positional update. A zero-match update is not
// an error: the participant entry is created by assignment, never here.
func (s *MeetingStore) SetParticipantDevice(ctx context.Context, roomName, email, device, browser string) error {
	filter := bson.M{"roomName": roomName, "participants.email": email}
	update := bson.M{"$set": bson.M{
		"participants.$.device":  device,
		"participants.$.browser": browser,
	}}
	if _, err := s.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to update participant device: %w", err)
	}
	return nil
}

// RemoveParticipant pulls the participant with the given email out of the
// room's participant list. Idempotent; the meeting itself is kept even
// when its participant list becomes empty.
func (s *MeetingStore) RemoveParticipant(ctx context.Context, roomName, email string) error {
	filter := bson.M{"roomName": roomName}
	update := bson.M{"$pull": bson.M{"participants": bson.M{"email": email}}}
	if _, err := s.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	return nil
}

// NewMeeting assembles a meeting document for a fresh room with the caller
// as its only participant.
func NewMeeting(roomName, customerEmail, agentID string) models.Meeting {
	return models.Meeting{
		RoomName:     roomName,
		CustomerID:   customerEmail,
		AgentID:      agentID,
		StartTime:    time.Now().UTC(),
		Duration:     0,
		Participants: []models.Participant{models.NewParticipant(customerEmail)},
	}
}
