package events

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/barcamp-grid/internal/domain"
)

type linkedRoomSchema struct {
	SessionGridID string `json:"sessionGridId" validate:"required"`
	TopicID       string `json:"topicId" validate:"required"`
}

// DecodeLinkedRoom decodes the linked room event whose state key is roomID.
func DecodeLinkedRoom(roomID string, raw json.RawMessage) (domain.LinkedRoom, error) {
	var schema linkedRoomSchema
	if err := decodeAndValidate(raw, &schema); err != nil {
		return domain.LinkedRoom{}, err
	}

	return domain.LinkedRoom{
		RoomID:        roomID,
		SessionGridID: schema.SessionGridID,
		TopicID:       domain.TopicID(schema.TopicID),
	}, nil
}

func EncodeLinkedRoom(room domain.LinkedRoom) (json.RawMessage, error) {
	return encodeValidated(&linkedRoomSchema{SessionGridID: room.SessionGridID, TopicID: string(room.TopicID)}, "linked room")
}

type spaceParentSchema struct {
	Via       []string `json:"via" validate:"required,min=1"`
	Canonical bool     `json:"canonical"`
}

// IsCanonicalSpaceParent reports whether the content of an m.space.parent
// event marks its state key as the canonical parent space.
func IsCanonicalSpaceParent(raw json.RawMessage) bool {
	var schema spaceParentSchema
	if err := decodeAndValidate(raw, &schema); err != nil {
		return false
	}
	return schema.Canonical
}

type spaceChildSchema struct {
	Via       []string `json:"via" validate:"required,min=1"`
	Suggested bool     `json:"suggested"`
	Order     string   `json:"order"`
}

// IsJoinableSpaceChild reports whether the content of an m.space.child event
// names at least one server to join the child through. Children without via
// servers were removed from the space.
func IsJoinableSpaceChild(raw json.RawMessage) bool {
	var schema spaceChildSchema
	return decodeAndValidate(raw, &schema) == nil
}

// SuggestSpaceChild marks a space child as suggested and sorts it first. It
// keeps unknown fields of the content and reports false when nothing changed.
func SuggestSpaceChild(raw json.RawMessage) (json.RawMessage, bool, error) {
	var schema spaceChildSchema
	if err := decodeAndValidate(raw, &schema); err != nil {
		return nil, false, err
	}
	if schema.Suggested && schema.Order == LobbyOrder {
		return raw, false, nil
	}

	var content map[string]any
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}
	content["suggested"] = true
	content["order"] = LobbyOrder

	data, err := json.Marshal(content)
	if err != nil {
		return nil, false, fmt.Errorf("encode space child: %w", err)
	}
	return data, true, nil
}

type roomCreateSchema struct {
	Type *string `json:"type,omitempty"`
}

// IsPlainRoom reports whether m.room.create content has no room type, which
// excludes spaces and other special rooms.
func IsPlainRoom(raw json.RawMessage) bool {
	var schema roomCreateSchema
	if err := decodeAndValidate(raw, &schema); err != nil {
		return false
	}
	return schema.Type == nil
}

type roomNameSchema struct {
	Name string `json:"name" validate:"required"`
}

func DecodeRoomName(raw json.RawMessage) (string, error) {
	var schema roomNameSchema
	if err := decodeAndValidate(raw, &schema); err != nil {
		return "", err
	}
	return schema.Name, nil
}

// EmptyContent is the content of marker events such as the grid start event.
func EmptyContent() json.RawMessage {
	return json.RawMessage(`{}`)
}
