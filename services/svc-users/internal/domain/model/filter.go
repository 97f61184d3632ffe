package model

import "time"

type (
	// DateRange is an optional lower and upper bound on a timestamp.
	// No ordering between the bounds is enforced.
	DateRange struct {
		from *time.Time
		to   *time.Time
	}

	// FilterSpec holds the optional criteria a caller may search users by.
	FilterSpec struct {
		id        string
		groupName string
		createdAt *DateRange
	}

	FilterOption func(*FilterSpec)
)

func NewDateRange(from, to *time.Time) DateRange {
	return DateRange{from: copyTime(from), to: copyTime(to)}
}

func DateRangeFrom(from time.Time) DateRange { return NewDateRange(&from, nil) }
func DateRangeTo(to time.Time) DateRange     { return NewDateRange(nil, &to) }

func DateRangeBetween(from, to time.Time) DateRange {
	return NewDateRange(&from, &to)
}

func (r DateRange) From() (time.Time, bool) { return deref(r.from) }
func (r DateRange) To() (time.Time, bool)   { return deref(r.to) }
func (r DateRange) IsEmpty() bool           { return r.from == nil && r.to == nil }

func NewFilterSpec(opts ...FilterOption) FilterSpec {
	var spec FilterSpec

	for _, opt := range opts {
		opt(&spec)
	}

	return spec
}

func WithID(id string) FilterOption {
	return func(s *FilterSpec) { s.id = id }
}

func WithGroupName(name string) FilterOption {
	return func(s *FilterSpec) { s.groupName = name }
}

func WithCreatedAt(r DateRange) FilterOption {
	return func(s *FilterSpec) {
		createdAt := NewDateRange(r.from, r.to)
		s.createdAt = &createdAt
	}
}

func (s FilterSpec) ID() string        { return s.id }
func (s FilterSpec) GroupName() string { return s.groupName }

func (s FilterSpec) CreatedAt() (DateRange, bool) {
	if s.createdAt == nil {
		return DateRange{}, false
	}

	return *s.createdAt, true
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	c := *t

	return &c
}

func deref(t *time.Time) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}

	return *t, true
}
