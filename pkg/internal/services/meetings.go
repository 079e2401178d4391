package services

import (
	"context"
	"fmt"
	"time"

	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/database"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	jsoniter "github.com/json-iterator/go"
	"github.com/livekit/protocol/auth"
	"github.com/livekit/protocol/livekit"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func ListMeetings(take, offset int) ([]models.Meeting, error) {
	if take > 100 {
		take = 100
	}

	var meetings []models.Meeting
	if err := database.C.
		Limit(take).Offset(offset).
		Order("started_at DESC").
		Find(&meetings).Error; err != nil {
		return meetings, err
	}
	return meetings, nil
}

func GetMeeting(id uint) (models.Meeting, error) {
	var meeting models.Meeting
	if err := database.C.Where(models.Meeting{
		BaseModel: models.BaseModel{ID: id},
	}).First(&meeting).Error; err != nil {
		return meeting, err
	}
	return meeting, nil
}

// GetMeetingParticipants lists who is in the room right now; it only
// makes sense for ongoing meetings.
func GetMeetingParticipants(meeting models.Meeting) ([]*livekit.ParticipantInfo, error) {
	if meeting.Status != models.MeetingStatusOngoing {
		return nil, fmt.Errorf("meeting has already ended")
	}

	res, err := Lk.ListParticipants(context.Background(), &livekit.ListParticipantsRequest{
		Room: meeting.RoomName,
	})
	if err != nil {
		return nil, err
	}
	return res.Participants, nil
}

// IsMeetingHost reports whether the user was discovered as a host of the
// meeting through either the role metadata or an explicit assignment.
func IsMeetingHost(user models.Account, meeting models.Meeting) bool {
	var events []models.MeetingEvent
	if err := database.C.Where(models.MeetingEvent{
		MeetingID: meeting.ID,
	}).Order("created_at ASC, id ASC").Find(&events).Error; err != nil {
		return false
	}

	for _, event := range events {
		if metaString(event.Metadata, "email") != user.Email {
			continue
		}
		if event.Type == models.EventHostAssigned {
			return true
		}
		if event.Type == models.EventOccupantJoined &&
			(metaString(event.Metadata, "affiliation") == "owner" || metaString(event.Metadata, "role") == "moderator") {
			return true
		}
	}
	return false
}

func EncodeMeetingToken(user models.Account, meeting models.Meeting) (string, error) {
	grant := &auth.VideoGrant{
		Room:      meeting.RoomName,
		RoomJoin:  true,
		RoomAdmin: IsMeetingHost(user, meeting),
	}

	metadata, _ := jsoniter.Marshal(user)

	duration := time.Second * time.Duration(viper.GetInt("meet.token_duration"))
	tk := auth.NewAccessToken(viper.GetString("meet.api_key"), viper.GetString("meet.api_secret"))
	tk.AddGrant(grant).
		SetIdentity(user.Email).
		SetName(lo.Ternary(len(user.Name) > 0, user.Name, NameFromEmail(user.Email))).
		SetMetadata(string(metadata)).
		SetValidFor(duration)

	return tk.ToJWT()
}
