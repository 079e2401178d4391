package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	MeetingStatusOngoing = "ongoing"
	MeetingStatusEnded   = "ended"
)

const (
	EventOccupantJoined = "occupant_joined"
	EventHostAssigned   = "host_assigned"
)

// Meeting is one session of a room, written by the meeting platform.
// This service only ever reads it.
type Meeting struct {
	BaseModel

	RoomName  string     `json:"room_name"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
	Status    string     `json:"status"`

	Events []MeetingEvent `json:"events,omitempty"`
}

// MeetingEvent is one row of the append-only event log for a meeting.
// The metadata shape depends on the event type; occupant_joined carries
// email, name, affiliation, role and occupant_jid fields, host_assigned
// carries email and optionally name.
type MeetingEvent struct {
	BaseModel

	Type      string            `json:"type"`
	Metadata  datatypes.JSONMap `json:"metadata"`
	Meeting   Meeting           `json:"meeting"`
	MeetingID uint              `json:"meeting_id"`
}

// MeetingSummary is the derived per-meeting record returned by the
// history endpoint. It is never persisted. The placeholder fields at the
// bottom stay empty until their features ship; the frontend already
// expects them in the payload.
type MeetingSummary struct {
	ID               uint       `json:"id"`
	Title            string     `json:"title"`
	Timestamp        time.Time  `json:"timestamp"`
	EndTimestamp     *time.Time `json:"endTimestamp"`
	Email            string     `json:"email"`
	HostName         string     `json:"hostName"`
	Hosts            []string   `json:"hosts"`
	HostNames        []string   `json:"hostNames"`
	Duration         int        `json:"duration"`
	Participants     []string   `json:"participants"`
	ParticipantNames []string   `json:"participantNames"`
	ParticipantCount int        `json:"participantCount"`
	Status           string     `json:"status"`

	Recordings    []string `json:"recordings"`
	Transcript    *string  `json:"transcript"`
	Whiteboard    *string  `json:"whiteboard"`
	SharedFiles   []string `json:"sharedFiles"`
	ChatLog       []string `json:"chatLog"`
	Polls         []string `json:"polls"`
	Attendance    []string `json:"attendance"`
	AiSummary     *string  `json:"aiSummary"`
	RoomName      string   `json:"roomName"`
	IsRecorded    bool     `json:"isRecorded"`
	HasTranscript bool     `json:"hasTranscript"`
}
