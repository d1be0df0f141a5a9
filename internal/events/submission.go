package events

import (
	"encoding/json"
)

type relatesToSchema struct {
	RelType string `json:"rel_type" validate:"required,eq=m.reference"`
	EventID string `json:"event_id" validate:"required"`
}

type topicSubmissionSchema struct {
	Title       string           `json:"title" validate:"required,min=1"`
	Description string           `json:"description" validate:"required,min=1"`
	RelatesTo   *relatesToSchema `json:"m.relates_to,omitempty" validate:"omitempty"`
}

// TopicSubmissionContent is the body of a submission event.
type TopicSubmissionContent struct {
	Title       string
	Description string
	// StartEventID references the grid start event the submission belongs to.
	StartEventID string
}

func DecodeTopicSubmission(raw json.RawMessage) (TopicSubmissionContent, error) {
	var schema topicSubmissionSchema
	if err := decodeAndValidate(raw, &schema); err != nil {
		return TopicSubmissionContent{}, err
	}

	content := TopicSubmissionContent{Title: schema.Title, Description: schema.Description}
	if schema.RelatesTo != nil {
		content.StartEventID = schema.RelatesTo.EventID
	}
	return content, nil
}

func EncodeTopicSubmission(content TopicSubmissionContent) (json.RawMessage, error) {
	schema := topicSubmissionSchema{Title: content.Title, Description: content.Description}
	if content.StartEventID != "" {
		schema.RelatesTo = &relatesToSchema{RelType: RelationReference, EventID: content.StartEventID}
	}
	return encodeValidated(&schema, "topic submission")
}
