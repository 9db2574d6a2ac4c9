package feedback

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/valentinpelus/signal/pkg/analysis"
	"github.com/valentinpelus/signal/pkg/types"
)

var (
	// ErrEmptyMessage is returned when a feedback message is blank
	ErrEmptyMessage = errors.New("feedback message is empty")
	// ErrInvalidTimestamp is returned when a feedback timestamp is out of range
	ErrInvalidTimestamp = errors.New("feedback timestamp is out of range")
	// ErrNotFound is returned when a record id is unknown
	ErrNotFound = errors.New("feedback record not found")
)

// ValidationError reports which input field was rejected at the ingestion boundary
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid feedback %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Input carries the caller-supplied fields of a new feedback record
type Input struct {
	Source       string    `validate:"max=100"`
	Message      string    `validate:"notblank,max=10000"`
	CustomerType string    `validate:"max=100"`
	Timestamp    time.Time // zero means "now"
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// Validate checks the input without classifying it
func (in Input) Validate() error {
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Tag() == "notblank" {
				return &ValidationError{Field: "message", Err: ErrEmptyMessage}
			}
			return &ValidationError{Field: strings.ToLower(fe.Field()), Err: fmt.Errorf("failed %q rule", fe.Tag())}
		}
		return err
	}
	if !in.Timestamp.IsZero() && in.Timestamp.Before(time.Unix(0, 0)) {
		return &ValidationError{Field: "timestamp", Err: ErrInvalidTimestamp}
	}
	return nil
}

// Record is a classified feedback item. Its fields are fixed at construction.
type Record struct {
	id           string
	source       string
	message      string
	customerType string
	timestamp    time.Time
	analysis     analysis.Analysis
}

// New validates the input, classifies the message and returns the finished record
func New(classifier *analysis.Classifier, in Input) (Record, error) {
	if err := in.Validate(); err != nil {
		return Record{}, err
	}

	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	return Record{
		id:           uuid.New().String(),
		source:       in.Source,
		message:      in.Message,
		customerType: in.CustomerType,
		timestamp:    ts,
		analysis:     classifier.Classify(in.Message, in.CustomerType),
	}, nil
}

// Restore rebuilds a record from its persisted form without reclassifying it
func Restore(item types.FeedbackItem) (Record, error) {
	if item.ID == "" {
		return Record{}, &ValidationError{Field: "id", Err: errors.New("missing id")}
	}
	if strings.TrimSpace(item.Message) == "" {
		return Record{}, &ValidationError{Field: "message", Err: ErrEmptyMessage}
	}
	if err := item.Analysis.Validate(); err != nil {
		return Record{}, &ValidationError{Field: "analysis", Err: err}
	}

	return Record{
		id:           item.ID,
		source:       item.Source,
		message:      item.Message,
		customerType: item.CustomerType,
		timestamp:    item.Timestamp,
		analysis:     item.Analysis,
	}, nil
}

func (r Record) ID() string                  { return r.id }
func (r Record) Source() string              { return r.source }
func (r Record) Message() string             { return r.message }
func (r Record) CustomerType() string        { return r.customerType }
func (r Record) Timestamp() time.Time        { return r.timestamp }
func (r Record) Analysis() analysis.Analysis { return r.analysis }

// Item converts the record to its wire form
func (r Record) Item() types.FeedbackItem {
	return types.FeedbackItem{
		ID:           r.id,
		Source:       r.source,
		Message:      r.message,
		CustomerType: r.customerType,
		Timestamp:    r.timestamp,
		Analysis:     r.analysis,
	}
}

// Items converts a slice of records to wire form
func Items(records []Record) []types.FeedbackItem {
	items := make([]types.FeedbackItem, 0, len(records))
	for _, r := range records {
		items = append(items, r.Item())
	}
	return items
}
