package lead

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Creator delivers an envelope to the broker.
type Creator interface {
	CreateLead(ctx context.Context, env Envelope) (int, error)
}

// Recorder keeps the submission history.
type Recorder interface {
	Create(ctx context.Context, s *Submission) error
}

// Service is the validate-map-post pipeline for one form variant.
type Service struct {
	schema  *Schema
	client  Creator
	history Recorder
	log     *logrus.Logger
	now     func() time.Time
}

// NewService creates lead service. history may be nil.
func NewService(schema *Schema, client Creator, history Recorder, log *logrus.Logger) *Service {
	return &Service{
		schema:  schema,
		client:  client,
		history: history,
		log:     log,
		now:     time.Now,
	}
}

func (s *Service) Variant() Variant {
	return s.schema.Variant()
}

// Submit validates the draft and, when valid, posts it to the broker.
// It returns *ValidationError, *ServerError, *TransportError or nil. There is no retry.
func (s *Service) Submit(ctx context.Context, d Draft) error {
	variant := s.schema.Variant()

	if fields := s.schema.Validate(d); fields != nil {
		submissionsTotal.WithLabelValues(string(variant), "validation_error").Inc()
		return &ValidationError{Fields: fields}
	}

	env := BuildEnvelope(variant, d, s.now())

	start := time.Now()
	status, err := s.client.CreateLead(ctx, env)
	latency := time.Since(start)

	result := resultFor(err)
	submissionsTotal.WithLabelValues(string(variant), string(result)).Inc()
	brokerLatency.WithLabelValues(string(result)).Observe(latency.Seconds())

	entry := s.log.WithFields(logrus.Fields{
		"variant":    variant,
		"email":      d.Email,
		"result":     result,
		"status":     status,
		"latency_ms": latency.Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Warn("lead submission failed")
	} else {
		entry.Info("lead submitted")
	}

	s.record(ctx, &Submission{
		ID:         uuid.NewString(),
		Variant:    variant,
		Nombre:     d.Nombre,
		Email:      d.Email,
		Result:     result,
		StatusCode: status,
		Error:      errorText(err),
		LatencyMS:  latency.Milliseconds(),
		CreatedAt:  s.now(),
	})

	return err
}

func (s *Service) record(ctx context.Context, sub *Submission) {
	if s.history == nil {
		return
	}
	// The broker already answered; a cancelled request must not lose the record.
	if err := s.history.Create(context.WithoutCancel(ctx), sub); err != nil {
		s.log.WithError(err).WithField("submission_id", sub.ID).Error("failed to record lead submission")
	}
}

func resultFor(err error) SubmissionResult {
	if err == nil {
		return ResultSuccess
	}
	var se *ServerError
	if errors.As(err, &se) {
		return ResultServerError
	}
	return ResultTransportError
}

// maxErrorText bounds the stored error in bytes.
const maxErrorText = 1024

func errorText(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if len(msg) <= maxErrorText {
		return msg
	}
	cut := maxErrorText
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}
