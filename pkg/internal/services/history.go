package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HistoryStore is the read-only slice of the data store the history
// aggregator needs. Production uses the gorm-backed implementation;
// tests supply an in-memory one.
type HistoryStore interface {
	ListMeetingsStartedBetween(from, to *time.Time) ([]models.Meeting, error)
	ListMeetingEvents(meetingIDs []uint) ([]models.MeetingEvent, error)
}

type GormHistoryStore struct {
	db *gorm.DB
}

func NewGormHistoryStore(db *gorm.DB) *GormHistoryStore {
	return &GormHistoryStore{db: db}
}

func (v *GormHistoryStore) ListMeetingsStartedBetween(from, to *time.Time) ([]models.Meeting, error) {
	tx := v.db.Model(&models.Meeting{})
	if from != nil {
		tx = tx.Where("started_at >= ?", *from)
	}
	if to != nil {
		tx = tx.Where("started_at <= ?", *to)
	}

	var meetings []models.Meeting
	if err := tx.Order("started_at ASC").Find(&meetings).Error; err != nil {
		return meetings, err
	}
	return meetings, nil
}

func (v *GormHistoryStore) ListMeetingEvents(meetingIDs []uint) ([]models.MeetingEvent, error) {
	var events []models.MeetingEvent
	if err := v.db.
		Where("meeting_id IN ?", meetingIDs).
		Order("created_at ASC, id ASC").
		Find(&events).Error; err != nil {
		return events, err
	}
	return events, nil
}

// HistoryAggregator reconstructs per-meeting attendance from the raw
// event log. It never writes; repeated runs over an unchanged log give
// identical results for ended meetings.
type HistoryAggregator struct {
	store HistoryStore
	now   func() time.Time
}

func NewHistoryAggregator(store HistoryStore) *HistoryAggregator {
	return &HistoryAggregator{store: store, now: time.Now}
}

// Aggregate returns the summaries of every meeting started inside
// [from, to] in which userEmail shows up as host or participant,
// ordered by start time. Absent bounds leave that side open.
func (v *HistoryAggregator) Aggregate(userEmail string, from, to *time.Time) ([]models.MeetingSummary, error) {
	meetings, err := v.store.ListMeetingsStartedBetween(from, to)
	if err != nil {
		return nil, err
	}
	if len(meetings) == 0 {
		return []models.MeetingSummary{}, nil
	}

	ids := lo.Map(meetings, func(item models.Meeting, idx int) uint {
		return item.ID
	})
	events, err := v.store.ListMeetingEvents(ids)
	if err != nil {
		return nil, err
	}

	grouped := map[uint][]models.MeetingEvent{}
	for _, event := range events {
		grouped[event.MeetingID] = append(grouped[event.MeetingID], event)
	}

	summaries := make([]models.MeetingSummary, 0, len(meetings))
	for _, meeting := range meetings {
		summary := v.summarize(meeting, grouped[meeting.ID])
		if !lo.Contains(summary.Hosts, userEmail) && !lo.Contains(summary.Participants, userEmail) {
			continue
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

type occupantRecord struct {
	email string
	name  string
}

func (v *HistoryAggregator) summarize(meeting models.Meeting, events []models.MeetingEvent) models.MeetingSummary {
	hosts := make([]string, 0)
	hostNames := map[string]string{}
	participants := make([]string, 0)
	records := map[string]occupantRecord{}
	// Guest numbering is keyed by occupant_jid and scoped to one meeting.
	guestLabels := map[string]string{}

	addHost := func(email, name string) {
		if len(email) == 0 {
			return
		}
		if _, ok := hostNames[email]; !ok {
			hosts = append(hosts, email)
			hostNames[email] = name
		} else if len(hostNames[email]) == 0 && len(name) > 0 {
			hostNames[email] = name
		}
	}
	addParticipant := func(id string, record occupantRecord) {
		if prev, ok := records[id]; ok {
			if len(prev.name) == 0 && len(record.name) > 0 {
				prev.name = record.name
				records[id] = prev
			}
			return
		}
		participants = append(participants, id)
		records[id] = record
	}

	for _, event := range events {
		email := metaString(event.Metadata, "email")
		name := metaString(event.Metadata, "name")

		switch event.Type {
		case models.EventOccupantJoined:
			if metaString(event.Metadata, "affiliation") == "owner" || metaString(event.Metadata, "role") == "moderator" {
				addHost(email, name)
			}
			jid := metaString(event.Metadata, "occupant_jid")
			if len(email) > 0 {
				addParticipant(email, occupantRecord{email: email, name: name})
			} else if len(jid) > 0 {
				label, ok := guestLabels[jid]
				if !ok {
					label = fmt.Sprintf("Guest %d", len(guestLabels)+1)
					guestLabels[jid] = label
				}
				addParticipant(label, occupantRecord{name: name})
			} else if len(name) > 0 {
				addParticipant(name, occupantRecord{name: name})
			}
		case models.EventHostAssigned:
			// Explicit host assignments count even when the occupant
			// never produced a join event.
			addHost(email, name)
		}
	}

	endsAt := v.now()
	if meeting.EndedAt != nil {
		endsAt = *meeting.EndedAt
	}

	status := "completed"
	if meeting.Status == models.MeetingStatusOngoing {
		status = "in_progress"
	}

	summary := models.MeetingSummary{
		ID:           meeting.ID,
		Title:        meeting.RoomName,
		Timestamp:    meeting.StartedAt,
		EndTimestamp: meeting.EndedAt,
		Hosts:        hosts,
		HostNames: lo.Map(hosts, func(email string, idx int) string {
			if name := hostNames[email]; len(name) > 0 {
				return name
			}
			return NameFromEmail(email)
		}),
		Duration:     int(endsAt.Sub(meeting.StartedAt).Minutes()),
		Participants: participants,
		ParticipantNames: lo.Map(participants, func(id string, idx int) string {
			record := records[id]
			if len(record.name) > 0 {
				return record.name
			}
			if len(record.email) > 0 {
				return NameFromEmail(record.email)
			}
			return id
		}),
		ParticipantCount: len(participants),
		Status:           status,

		Recordings:  []string{},
		SharedFiles: []string{},
		ChatLog:     []string{},
		Polls:       []string{},
		Attendance:  []string{},
	}

	if len(summary.Hosts) > 0 {
		summary.Email = summary.Hosts[0]
		summary.HostName = summary.HostNames[0]
	}

	return summary
}

// NameFromEmail derives a display name from the local part of an email
// address: "jane.doe@x.com" becomes "Jane Doe".
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return strings.Join(lo.Map(strings.Split(local, "."), func(segment string, idx int) string {
		return lo.Capitalize(segment)
	}), " ")
}

func metaString(meta datatypes.JSONMap, key string) string {
	if raw, ok := meta[key]; ok {
		if str, ok := raw.(string); ok {
			return str
		}
	}
	return ""
}
