package http

import (
	"fmt"
	"net/url"
	"strings"

	api "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/api/v1"
)

// BindQuery copies query parameters into one of the request types of
// pkg/contracts/api/v1. Scalars are trimmed. A list takes every value of its
// key, each split on commas; a key that is present but empty yields an
// empty, non-nil list.
func BindQuery(values url.Values, dst interface{}) error {
	switch req := dst.(type) {
	case *api.TotalsRequest:
		req.Period = scalar(values, "period")
	case *api.AgeRequest:
		req.Period = scalar(values, "period")
		req.Levels = list(values, "levels")
	case *api.EthnicityRequest:
		req.Level = scalar(values, "level")
		req.Period = scalar(values, "period")
	case *api.TimeSeriesRequest:
		req.Level = scalar(values, "level")
		req.Feature = scalar(values, "feature")
		req.Periods = list(values, "periods")
	case *api.ComparisonRequest:
		req.Metric = scalar(values, "metric")
		req.QTS = scalar(values, "qts")
		req.Periods = list(values, "periods")
		req.From = scalar(values, "from")
		req.To = scalar(values, "to")
	case *api.PageRequest:
		req.Period = scalar(values, "period")
		req.Levels = list(values, "levels")
		req.Feature = scalar(values, "feature")
		req.Metric = scalar(values, "metric")
		req.QTS = scalar(values, "qts")
		req.From = scalar(values, "from")
		req.To = scalar(values, "to")
	default:
		return fmt.Errorf("bind query: unsupported request type %T", dst)
	}
	return nil
}

func scalar(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// list is nil when key is absent.
func list(values url.Values, key string) []string {
	raw, ok := values[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
