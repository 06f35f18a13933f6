package log

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrAttrKey is the field name used for errors in log records.
const ErrAttrKey = "error"

// marshalStack is installed as zerolog.ErrorStackMarshaler so that errors built
// with cockroachdb/errors carry their stack trace into the record.
func marshalStack(err error) interface{} {
	if st := extractStacktrace(err); st != "" {
		return st
	}
	return nil
}

func extractStacktrace(err error) string {
	if err == nil {
		return ""
	}
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 && safeDetails[0] != "" {
		return safeDetails[0]
	}
	if errors.GetReportableStackTrace(err) == nil {
		return ""
	}
	return fmt.Sprintf("%+v", err)
}
