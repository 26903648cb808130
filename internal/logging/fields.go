package logging

import "log/slog"

// Common field names for consistent logging across the binaries.
const (
	FieldService  = "service"
	FieldForm     = "form"
	FieldKind     = "kind"
	FieldSource   = "source"
	FieldTable    = "table"
	FieldChannel  = "channel"
	FieldEventID  = "event_id"
	FieldRecordID = "record_id"
	FieldIP       = "ip"
	FieldMethod   = "method"
	FieldPath     = "path"
	FieldStatus   = "status"
	FieldError    = "error"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// Form returns a slog attribute for the submitted form name.
func Form(name string) slog.Attr {
	return slog.String(FieldForm, name)
}

// Kind returns a slog attribute for the classified submission kind.
func Kind(kind string) slog.Attr {
	return slog.String(FieldKind, kind)
}

// Source returns a slog attribute for the submission source tag.
func Source(source string) slog.Attr {
	return slog.String(FieldSource, source)
}

// Table returns a slog attribute for a data API table.
func Table(table string) slog.Attr {
	return slog.String(FieldTable, table)
}

// Channel returns a slog attribute for a notification channel.
func Channel(name string) slog.Attr {
	return slog.String(FieldChannel, name)
}

// EventID returns a slog attribute for an audit event row id.
func EventID(id string) slog.Attr {
	return slog.String(FieldEventID, id)
}

// RecordID returns a slog attribute for a persisted record id.
func RecordID(id string) slog.Attr {
	return slog.String(FieldRecordID, id)
}

// IP returns a slog attribute for a client IP address.
func IP(ip string) slog.Attr {
	return slog.String(FieldIP, ip)
}

// Status returns a slog attribute for an HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(FieldStatus, code)
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}
