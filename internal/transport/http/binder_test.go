package http

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/api/v1"
)

func TestBindQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  api.ComparisonRequest
	}{
		{
			name:  "scalars",
			query: "metric=pct_total_sex_m&qts=Awarded+QTS&from=+201718+",
			want:  api.ComparisonRequest{Metric: "pct_total_sex_m", QTS: "Awarded QTS", From: "201718"},
		},
		{
			name:  "comma separated list",
			query: "periods=201718,%20201819",
			want:  api.ComparisonRequest{Periods: []string{"201718", "201819"}},
		},
		{
			name:  "repeated keys",
			query: "periods=201718&periods=201920",
			want:  api.ComparisonRequest{Periods: []string{"201718", "201920"}},
		},
		{
			name:  "present but empty list",
			query: "periods=",
			want:  api.ComparisonRequest{Periods: []string{}},
		},
		{
			name:  "unknown keys ignored",
			query: "colour=red",
			want:  api.ComparisonRequest{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			var got api.ComparisonRequest
			require.NoError(t, BindQuery(values, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBindQuery_PageRequest(t *testing.T) {
	values, err := url.ParseQuery("period=201819&levels=Undergraduate&levels=Postgraduate&feature=Total")
	require.NoError(t, err)

	var got api.PageRequest
	require.NoError(t, BindQuery(values, &got))
	assert.Equal(t, api.PageRequest{
		Period:  "201819",
		Levels:  []string{"Undergraduate", "Postgraduate"},
		Feature: "Total",
	}, got)
}

func TestBindQuery_Errors(t *testing.T) {
	values := url.Values{"n": {"3"}}

	var notPointer api.TotalsRequest
	assert.Error(t, BindQuery(values, notPointer))

	var unsupported struct {
		N int `query:"n"`
	}
	assert.Error(t, BindQuery(values, &unsupported))
}
