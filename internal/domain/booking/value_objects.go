package booking

import (
	"errors"
	"time"

	"rentalhub/internal/domain/product"
)

const MaxRentalDays = 90

var (
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrRangeTooLong     = errors.New("rental period exceeds the maximum length")
	ErrStartInPast      = errors.New("start date cannot be in the past")
)

type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	if !start.Before(end) {
		return DateRange{}, ErrInvalidDateRange
	}
	if end.Sub(start) > MaxRentalDays*24*time.Hour {
		return DateRange{}, ErrRangeTooLong
	}
	return DateRange{start: start, end: end}, nil
}

// ReconstructDateRange rebuilds a stored range without revalidating the
// length cap, which may tighten after rows were written.
func ReconstructDateRange(start, end time.Time) (DateRange, error) {
	if !start.Before(end) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{start: start, end: end}, nil
}

func (r DateRange) Start() time.Time {
	return r.start
}

func (r DateRange) End() time.Time {
	return r.end
}

// Days counts billable days, any started day billed in full.
func (r DateRange) Days() int {
	return product.RentalDays(r.start, r.end)
}

func (r DateRange) StartsAfter(t time.Time) bool {
	return r.start.After(t)
}

func (r DateRange) Overlaps(other DateRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}
