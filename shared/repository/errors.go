package repository

import (
	"errors"

	"github.com/lib/pq"

	"bookit/shared/constant"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return constant.Empty
}

func IsUniqueViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeUniqueViolation
}

// IsExclusionViolation reports a clash with an exclusion constraint, such as two overlapping bookings.
func IsExclusionViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeExclusion
}

func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeFkViolation
}
