package cats

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseListFilter lee los query params de GET /cats (también los usa el export XLSX).
func ParseListFilter(q url.Values) (ListFilter, error) {
	f := ListFilter{
		Text:   q.Get("q"),
		Gender: Gender(strings.TrimSpace(q.Get("gender"))),
		Status: Status(strings.TrimSpace(q.Get("status"))),
	}

	ids := []struct {
		key string
		dst *int64
	}{
		{"owner_id", &f.OwnerID},
		{"breeder_id", &f.BreederID},
		{"dam_id", &f.DamID},
		{"sire_id", &f.SireID},
	}
	for _, p := range ids {
		v := strings.TrimSpace(q.Get(p.key))
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return ListFilter{}, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidInput, p.key)
		}
		*p.dst = n
	}

	var err error
	if f.BornFrom, err = parseDateParam(q, "born_from"); err != nil {
		return ListFilter{}, err
	}
	if f.BornTo, err = parseDateParam(q, "born_to"); err != nil {
		return ListFilter{}, err
	}

	if v := q.Get("limit"); v != "" {
		if f.Limit, err = strconv.Atoi(v); err != nil {
			return ListFilter{}, fmt.Errorf("%w: limit must be an integer", ErrInvalidInput)
		}
	}
	if v := q.Get("offset"); v != "" {
		if f.Offset, err = strconv.Atoi(v); err != nil {
			return ListFilter{}, fmt.Errorf("%w: offset must be an integer", ErrInvalidInput)
		}
	}
	return f, nil
}

func parseDateParam(q url.Values, key string) (*time.Time, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrInvalidInput, key)
	}
	return &t, nil
}
