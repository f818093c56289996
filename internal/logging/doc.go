// Package logging wraps log/slog with the handlers, attribute helpers, and
// standardized field names used across curator.
//
// Components take a *slog.Logger and scope it with
// logger.With(logging.String(logging.FieldComponent, ...)); batch operations
// thread the current container path through the context so WithContext can
// stamp it on every record.
package logging
