// Package api holds the gin handlers for the meeting backend.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kycbridge/meeting-server/cmd/server/internal/audit"
	"github.com/kycbridge/meeting-server/cmd/server/internal/models"
	"github.com/kycbridge/meeting-server/pkg/logger"
)

// Assigner places a customer into a meeting room and returns the join link.
type Assigner interface {
	SubmitDetails(ctx context.Context, email string) (string, error)
}

// Lifecycle updates participant state after assignment.
type Lifecycle interface {
	JoinRoom(ctx context.Context, roomName, email, userAgent string) error
	LeaveRoom(ctx context.Context, roomName, email string) error
}

// Admin backs the unauthenticated admin surface.
type Admin interface {
	ListMeetings(ctx context.Context) ([]models.MeetingView, error)
	SwitchCamera(ctx context.Context, roomName, participantID string) error
}

// HandleSubmitDetails POST /submit-details
// Assigns the caller to a room with capacity or provisions a new one.
func HandleSubmitDetails(svc Assigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequestResponse(c, "invalid request body")
			return
		}
		if req.Email == "" {
			badRequestResponse(c, "email is required")
			return
		}

		link, err := svc.SubmitDetails(c.Request.Context(), req.Email)
		if err != nil {
			logger.L().Error("room assignment failed", "email", req.Email, "error", err)
			errorResponse(c, http.StatusInternalServerError, "failed to create or join meeting room")
			return
		}

		c.JSON(http.StatusOK, gin.H{"link": link})
	}
}

// HandleListMeetings GET /admin/meetings
// Lists every meeting with the derived customerWaiting flag.
func HandleListMeetings(svc Admin, auditLog *audit.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := svc.ListMeetings(c.Request.Context())
		auditLog.LogAdminAction("list_meetings", c.ClientIP(), map[string]interface{}{
			"count": len(views),
		}, err)
		if err != nil {
			logger.L().Error("meeting listing failed", "error", err)
			errorResponse(c, http.StatusInternalServerError, "failed to fetch meeting details")
			return
		}

		c.JSON(http.StatusOK, views)
	}
}

// HandleJoinRoom POST /join-room
// Records the joining participant's device and browser, classified from the
// User-Agent header. Updating a participant that does not exist is a no-op
// and still succeeds.
func HandleJoinRoom(svc Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RoomName string `json:"roomName"`
			Email    string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequestResponse(c, "invalid request body")
			return
		}
		if req.RoomName == "" || req.Email == "" {
			badRequestResponse(c, "roomName and email are required")
			return
		}

		if err := svc.JoinRoom(c.Request.Context(), req.RoomName, req.Email, c.GetHeader("User-Agent")); err != nil {
			logger.L().Error("room join failed", "room", req.RoomName, "error", err)
			errorResponse(c, http.StatusInternalServerError, "failed to join the room")
			return
		}

		c.String(http.StatusOK, "Device and browser information updated")
	}
}

// HandleLeaveRoom POST /leave-room
// Removes the participant from the room. Idempotent.
func HandleLeaveRoom(svc Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RoomName string `json:"roomName"`
			Email    string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequestResponse(c, "invalid request body")
			return
		}
		if req.RoomName == "" || req.Email == "" {
			badRequestResponse(c, "roomName and email are required")
			return
		}

		if err := svc.LeaveRoom(c.Request.Context(), req.RoomName, req.Email); err != nil {
			logger.L().Error("room leave failed", "room", req.RoomName, "error", err)
			errorResponse(c, http.StatusInternalServerError, "failed to leave the room")
			return
		}

		c.String(http.StatusOK, "Participant removed from the room")
	}
}

// HandleSwitchCamera POST /admin/switch-camera
// Relays the camera-switch action to one participant via the provider.
func HandleSwitchCamera(svc Admin, auditLog *audit.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RoomName      string `json:"roomName"`
			ParticipantID string `json:"participantId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequestResponse(c, "invalid request body")
			return
		}
		if req.RoomName == "" || req.ParticipantID == "" {
			badRequestResponse(c, "roomName and participantId are required")
			return
		}

		err := svc.SwitchCamera(c.Request.Context(), req.RoomName, req.ParticipantID)
		auditLog.LogAdminAction("switch_camera", c.ClientIP(), map[string]interface{}{
			"room_name":      req.RoomName,
			"participant_id": req.ParticipantID,
		}, err)
		if err != nil {
			logger.L().Error("switch camera relay failed", "room", req.RoomName, "error", err)
			errorResponse(c, http.StatusInternalServerError, "failed to send switch camera command")
			return
		}

		c.String(http.StatusOK, "Switch camera command sent")
	}
}
