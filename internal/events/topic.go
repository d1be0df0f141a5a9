package events

import (
	"encoding/json"

	"github.com/bnema/barcamp-grid/internal/domain"
)

type topicSchema struct {
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description" validate:"required"`
	Authors     []topicAuthorSchema `json:"authors" validate:"required,min=1,dive"`
	Pinned      *bool               `json:"pinned,omitempty"`
}

type topicAuthorSchema struct {
	ID string `json:"id" validate:"required"`
}

func DecodeTopic(raw json.RawMessage) (domain.Topic, error) {
	var schema topicSchema
	if err := decodeAndValidate(raw, &schema); err != nil {
		return domain.Topic{}, err
	}

	topic := domain.Topic{
		Title:       schema.Title,
		Description: schema.Description,
		Authors:     make([]domain.TopicAuthor, 0, len(schema.Authors)),
	}
	for _, author := range schema.Authors {
		topic.Authors = append(topic.Authors, domain.TopicAuthor{ID: author.ID})
	}
	if schema.Pinned != nil {
		topic.Pinned = *schema.Pinned
	}

	return topic, nil
}

func EncodeTopic(topic domain.Topic) (json.RawMessage, error) {
	schema := topicSchema{
		Title:       topic.Title,
		Description: topic.Description,
		Authors:     make([]topicAuthorSchema, 0, len(topic.Authors)),
	}
	for _, author := range topic.Authors {
		schema.Authors = append(schema.Authors, topicAuthorSchema{ID: author.ID})
	}
	if topic.Pinned {
		pinned := true
		schema.Pinned = &pinned
	}

	return encodeValidated(&schema, "topic")
}
