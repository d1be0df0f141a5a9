package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidContent = errors.New("invalid event content")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
			_, err := parseTimestamp(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

func decodeAndValidate(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: empty content", ErrInvalidContent)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}
	if err := validatorInstance().Struct(target); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}
	return nil
}

// encodeValidated checks schema against the rules the decoders apply before
// marshalling it, so nothing is written that readers would drop.
func encodeValidated(schema any, what string) (json.RawMessage, error) {
	if err := validatorInstance().Struct(schema); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", what, err)
	}
	return data, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.Truncate(time.Second), nil
}

// formatTimestamp renders second precision ISO 8601 in the time's own offset.
func formatTimestamp(value time.Time) string {
	return value.Truncate(time.Second).Format(time.RFC3339)
}
