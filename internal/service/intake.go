package service

import (
	"context"
	"fmt"
	"time"

	"github.com/orbitlabs/formgate/internal/logging"
	"github.com/orbitlabs/formgate/internal/lookup"
	"github.com/orbitlabs/formgate/internal/mapping"
	"github.com/orbitlabs/formgate/internal/metrics"
	"github.com/orbitlabs/formgate/internal/models"
	"github.com/orbitlabs/formgate/internal/notify"
	"github.com/orbitlabs/formgate/internal/signature"
)

const (
	tableFormEvents        = "form_events"
	tableInquiries         = "inquiries"
	tableNewsletterSignups = "newsletter_signups"
)

// Store is the slice of the data API client the intake pipeline writes
// through.
type Store interface {
	Insert(ctx context.Context, table string, record any) (map[string]any, error)
	Update(ctx context.Context, table, id string, patch map[string]any) error
}

// Outcome is the terminal state of one webhook request, ready to be
// rendered as an HTTP response.
type Outcome struct {
	Status int
	Kind   models.Kind
	Body   any
}

// Intake sequences the submission pipeline: verify, parse, classify,
// audit, persist, notify. Each request is handled independently; the only
// cross-request state is the injected service type cache.
type Intake struct {
	secret       string
	store        Store
	serviceTypes *lookup.ServiceTypes
	dispatcher   *notify.Dispatcher
	logger       *logging.Logger
}

func NewIntake(secret string, store Store, serviceTypes *lookup.ServiceTypes, dispatcher *notify.Dispatcher, logger *logging.Logger) *Intake {
	return &Intake{
		secret:       secret,
		store:        store,
		serviceTypes: serviceTypes,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

// Process runs one raw webhook body through the pipeline and returns the
// response to send. Persistence failures abort with a generic message to
// the caller; the upstream error detail goes to the audit row only.
func (s *Intake) Process(ctx context.Context, rawBody []byte, signatureHeader string) Outcome {
	if !signature.Verify(s.secret, rawBody, signatureHeader) {
		metrics.SubmissionsTotal.WithLabelValues("unclassified", "rejected").Inc()
		return Outcome{
			Status: 401,
			Kind:   models.KindUnknown,
			Body:   map[string]string{"error": "Invalid signature"},
		}
	}

	payload, err := models.ParseSubmission(rawBody)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("unclassified", "rejected").Inc()
		return Outcome{
			Status: 400,
			Kind:   models.KindUnknown,
			Body:   map[string]string{"error": err.Error()},
		}
	}

	result := mapping.Map(payload)
	kind := string(result.Kind)

	// Audit first so even failed or unmappable submissions stay
	// traceable. A failed audit write is logged and swallowed; it must
	// never take down the submission itself.
	eventID := s.recordAuditEvent(ctx, result, payload)

	if result.Kind == models.KindUnknown {
		s.markAuditEvent(ctx, eventID, true, nil)
		metrics.SubmissionsTotal.WithLabelValues(kind, "ignored").Inc()
		s.logger.InfoContext(ctx, "submission ignored",
			logging.Form(result.FormName),
			logging.Source(result.Source),
		)
		return Outcome{
			Status: 202,
			Kind:   result.Kind,
			Body: map[string]any{
				"success": false,
				"message": "Form submission ignored: unrecognized form mapping.",
			},
		}
	}

	var inserted map[string]any
	var insertErr error
	switch result.Kind {
	case models.KindInquiry:
		inserted, insertErr = s.insertInquiry(ctx, payload, result)
	case models.KindNewsletter:
		inserted, insertErr = s.insertNewsletter(ctx, payload, result)
	}

	if insertErr != nil {
		detail := insertErr.Error()
		s.markAuditEvent(ctx, eventID, false, &detail)
		metrics.SubmissionsTotal.WithLabelValues(kind, "failed").Inc()
		s.logger.ErrorContext(ctx, "failed to persist submission",
			logging.Kind(kind),
			logging.Form(result.FormName),
			logging.Error(insertErr),
		)
		return Outcome{
			Status: 500,
			Kind:   result.Kind,
			Body:   map[string]string{"error": "Failed to process submission."},
		}
	}

	s.markAuditEvent(ctx, eventID, true, nil)

	recordID := stringID(inserted["id"])
	s.dispatcher.Dispatch(ctx, notify.Envelope{
		Kind:       result.Kind,
		Inquiry:    result.Inquiry,
		Newsletter: result.Newsletter,
		ID:         recordID,
	})

	metrics.SubmissionsTotal.WithLabelValues(kind, "success").Inc()
	s.logger.InfoContext(ctx, "submission processed",
		logging.Kind(kind),
		logging.Form(result.FormName),
		logging.Source(result.Source),
		logging.RecordID(recordID),
	)

	return Outcome{
		Status: 200,
		Kind:   result.Kind,
		Body: map[string]any{
			"success": true,
			"type":    result.Kind,
			"id":      recordID,
		},
	}
}

// recordAuditEvent writes the form_events row. Best-effort: returns "" and
// logs when the write fails.
func (s *Intake) recordAuditEvent(ctx context.Context, result models.MappingResult, payload *models.SubmissionPayload) string {
	row, err := s.store.Insert(ctx, tableFormEvents, map[string]any{
		"form_name": result.FormName,
		"source":    result.Source,
		"payload":   payload.Raw,
	})
	if err != nil {
		metrics.PersistenceErrors.WithLabelValues(tableFormEvents).Inc()
		s.logger.ErrorContext(ctx, "failed to insert form event log", logging.Error(err))
		return ""
	}
	return stringID(row["id"])
}

// markAuditEvent records the final processed/error state on the audit row.
// Also best-effort; the primary outcome is already decided by now.
func (s *Intake) markAuditEvent(ctx context.Context, eventID string, processed bool, errDetail *string) {
	if eventID == "" {
		return
	}
	patch := map[string]any{"processed": processed}
	if processed {
		patch["error"] = nil
	} else {
		patch["error"] = errDetail
	}
	if err := s.store.Update(ctx, tableFormEvents, eventID, patch); err != nil {
		metrics.PersistenceErrors.WithLabelValues(tableFormEvents).Inc()
		s.logger.ErrorContext(ctx, "failed to update form event log",
			logging.EventID(eventID),
			logging.Error(err),
		)
	}
}

func (s *Intake) insertInquiry(ctx context.Context, payload *models.SubmissionPayload, result models.MappingResult) (map[string]any, error) {
	rec := result.Inquiry

	var serviceTypeID any
	if rec.ServiceTypeSlug != nil {
		id, found, err := s.serviceTypes.Resolve(ctx, *rec.ServiceTypeSlug)
		if err != nil {
			return nil, err
		}
		if found {
			serviceTypeID = id
		}
	}

	return s.store.Insert(ctx, tableInquiries, map[string]any{
		"full_name":          rec.FullName,
		"email":              rec.Email,
		"phone":              rec.Phone,
		"message":            rec.Message,
		"service_type_id":    serviceTypeID,
		"preferred_schedule": formatSchedule(rec.PreferredSchedule),
		"source":             result.Source,
		"form_id":            formID(payload, rec.Metadata),
		"utm":                rec.UTM,
		"metadata":           rec.Metadata,
	})
}

func (s *Intake) insertNewsletter(ctx context.Context, payload *models.SubmissionPayload, result models.MappingResult) (map[string]any, error) {
	rec := result.Newsletter

	return s.store.Insert(ctx, tableNewsletterSignups, map[string]any{
		"email":     rec.Email,
		"full_name": rec.FullName,
		"source":    result.Source,
		"form_id":   formID(payload, rec.Metadata),
		"tags":      rec.Tags,
		"utm":       rec.UTM,
		"metadata":  rec.Metadata,
	})
}

// formID resolves the upstream submission id from its historical homes:
// top-level formId, top-level id, then the form-id metadata residue.
func formID(payload *models.SubmissionPayload, metadata map[string]any) any {
	if payload.FormID != "" {
		return payload.FormID
	}
	if payload.ID != "" {
		return payload.ID
	}
	if v, ok := metadata["form-id"].(string); ok && v != "" {
		return v
	}
	return nil
}

func formatSchedule(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func stringID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return fmt.Sprintf("%.0f", id)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", id)
	}
}
