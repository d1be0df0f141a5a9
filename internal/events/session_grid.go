package events

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/barcamp-grid/internal/domain"
)

type sessionGridSchema struct {
	ConsumedTopicSubmissions []string                `json:"consumedTopicSubmissions" validate:"required"`
	Tracks                   []trackSchema           `json:"tracks" validate:"required,dive"`
	TimeSlots                []timeSlotSchema        `json:"timeSlots" validate:"required,dive"`
	Sessions                 []sessionSchema         `json:"sessions" validate:"required,dive"`
	ParkingLot               []parkingLotEntrySchema `json:"parkingLot" validate:"required,dive"`
	TopicStartEventID        string                  `json:"topicStartEventId,omitempty"`
}

type trackSchema struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	Icon string `json:"icon" validate:"required"`
}

type timeSlotSchema struct {
	ID        string `json:"id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=sessions common-event"`
	StartTime string `json:"startTime" validate:"required,timestamp"`
	EndTime   string `json:"endTime" validate:"required,timestamp"`
	Summary   string `json:"summary,omitempty" validate:"required_if=Type common-event"`
	Icon      string `json:"icon,omitempty" validate:"required_if=Type common-event"`
}

type sessionSchema struct {
	TopicID    string `json:"topicId" validate:"required"`
	TrackID    string `json:"trackId" validate:"required"`
	TimeSlotID string `json:"timeSlotId" validate:"required"`
}

type parkingLotEntrySchema struct {
	TopicID string `json:"topicId" validate:"required"`
}

// DecodeSessionGrid validates and decodes grid document content.
func DecodeSessionGrid(raw json.RawMessage) (domain.SessionGrid, error) {
	var schema sessionGridSchema
	if err := decodeAndValidate(raw, &schema); err != nil {
		return domain.SessionGrid{}, err
	}

	grid := domain.SessionGrid{
		Tracks:                   make([]domain.Track, 0, len(schema.Tracks)),
		TimeSlots:                make([]domain.TimeSlot, 0, len(schema.TimeSlots)),
		Sessions:                 make([]domain.Session, 0, len(schema.Sessions)),
		ParkingLot:               make([]domain.ParkingLotEntry, 0, len(schema.ParkingLot)),
		ConsumedTopicSubmissions: append([]string{}, schema.ConsumedTopicSubmissions...),
		TopicStartEventID:        schema.TopicStartEventID,
	}

	for _, track := range schema.Tracks {
		grid.Tracks = append(grid.Tracks, domain.Track{ID: domain.TrackID(track.ID), Name: track.Name, Icon: track.Icon})
	}
	for _, slot := range schema.TimeSlots {
		timeSlot, err := fromTimeSlotSchema(slot)
		if err != nil {
			return domain.SessionGrid{}, err
		}
		grid.TimeSlots = append(grid.TimeSlots, timeSlot)
	}
	for _, session := range schema.Sessions {
		grid.Sessions = append(grid.Sessions, domain.Session{
			TopicID:    domain.TopicID(session.TopicID),
			TrackID:    domain.TrackID(session.TrackID),
			TimeSlotID: domain.TimeSlotID(session.TimeSlotID),
		})
	}
	for _, entry := range schema.ParkingLot {
		grid.ParkingLot = append(grid.ParkingLot, domain.ParkingLotEntry{TopicID: domain.TopicID(entry.TopicID)})
	}

	return grid, nil
}

// EncodeSessionGrid renders grid document content.
func EncodeSessionGrid(grid domain.SessionGrid) (json.RawMessage, error) {
	schema := sessionGridSchema{
		ConsumedTopicSubmissions: append([]string{}, grid.ConsumedTopicSubmissions...),
		Tracks:                   make([]trackSchema, 0, len(grid.Tracks)),
		TimeSlots:                make([]timeSlotSchema, 0, len(grid.TimeSlots)),
		Sessions:                 make([]sessionSchema, 0, len(grid.Sessions)),
		ParkingLot:               make([]parkingLotEntrySchema, 0, len(grid.ParkingLot)),
		TopicStartEventID:        grid.TopicStartEventID,
	}

	for _, track := range grid.Tracks {
		schema.Tracks = append(schema.Tracks, trackSchema{ID: string(track.ID), Name: track.Name, Icon: track.Icon})
	}
	for _, slot := range grid.TimeSlots {
		schema.TimeSlots = append(schema.TimeSlots, toTimeSlotSchema(slot))
	}
	for _, session := range grid.Sessions {
		schema.Sessions = append(schema.Sessions, sessionSchema{
			TopicID:    string(session.TopicID),
			TrackID:    string(session.TrackID),
			TimeSlotID: string(session.TimeSlotID),
		})
	}
	for _, entry := range grid.ParkingLot {
		schema.ParkingLot = append(schema.ParkingLot, parkingLotEntrySchema{TopicID: string(entry.TopicID)})
	}

	return encodeValidated(&schema, "session grid")
}

func fromTimeSlotSchema(schema timeSlotSchema) (domain.TimeSlot, error) {
	start, err := parseTimestamp(schema.StartTime)
	if err != nil {
		return domain.TimeSlot{}, fmt.Errorf("%w: start time of %s: %w", ErrInvalidContent, schema.ID, err)
	}
	end, err := parseTimestamp(schema.EndTime)
	if err != nil {
		return domain.TimeSlot{}, fmt.Errorf("%w: end time of %s: %w", ErrInvalidContent, schema.ID, err)
	}

	slot := domain.TimeSlot{ID: domain.TimeSlotID(schema.ID), StartTime: start, EndTime: end}
	switch domain.TimeSlotKind(schema.Type) {
	case domain.TimeSlotKindSessions:
		slot.Variant = domain.SessionsSlot{}
	case domain.TimeSlotKindCommonEvent:
		slot.Variant = domain.CommonEventSlot{Summary: schema.Summary, Icon: schema.Icon}
	default:
		return domain.TimeSlot{}, fmt.Errorf("%w: unknown time slot type %q", ErrInvalidContent, schema.Type)
	}

	return slot, nil
}

func toTimeSlotSchema(slot domain.TimeSlot) timeSlotSchema {
	schema := timeSlotSchema{
		ID:        string(slot.ID),
		StartTime: formatTimestamp(slot.StartTime),
		EndTime:   formatTimestamp(slot.EndTime),
	}

	switch variant := slot.Variant.(type) {
	case domain.CommonEventSlot:
		schema.Type = string(domain.TimeSlotKindCommonEvent)
		schema.Summary = variant.Summary
		schema.Icon = variant.Icon
	case domain.SessionsSlot, nil:
		schema.Type = string(domain.TimeSlotKindSessions)
	}

	return schema
}
