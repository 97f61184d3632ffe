package model

import (
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// FilterArgs holds the unparsed filter values of a find request.
type FilterArgs struct {
	ID          string
	GroupName   string
	CreatedFrom string
	CreatedTo   string
}

// ParseFilterArgs validates the raw arguments and builds a FilterSpec.
// Blank values are treated as absent.
func ParseFilterArgs(args FilterArgs) (FilterSpec, error) {
	var (
		errs = NewValidationErrors()
		opts []FilterOption
	)

	if id := strings.TrimSpace(args.ID); id != "" {
		parsed, err := ParseUserID(id)
		if err != nil {
			errs.Add("id", "id must be a UUID", ValidationCodeInvalidUUID)
		} else {
			opts = append(opts, WithID(parsed.String()))
		}
	}

	if name := strings.TrimSpace(args.GroupName); name != "" {
		opts = append(opts, WithGroupName(name))
	}

	from, fromErr := parseBound(args.CreatedFrom)
	if fromErr != nil {
		errs.Add("createdAt.from", "createdAt.from must be RFC3339 or YYYY-MM-DD", ValidationCodeInvalidDate)
	}

	to, toErr := parseBound(args.CreatedTo)
	if toErr != nil {
		errs.Add("createdAt.to", "createdAt.to must be RFC3339 or YYYY-MM-DD", ValidationCodeInvalidDate)
	}

	if from != nil || to != nil {
		opts = append(opts, WithCreatedAt(NewDateRange(from, to)))
	}

	if err := errs.OrNil(); err != nil {
		return FilterSpec{}, err
	}

	return NewFilterSpec(opts...), nil
}

func parseBound(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse(dateOnlyLayout, raw)
		if err != nil {
			return nil, err
		}
	}

	t = t.UTC()

	return &t, nil
}
