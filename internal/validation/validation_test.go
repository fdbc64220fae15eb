package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
		want    string
	}{
		{in: "2021-03-01", want: "2021-03-01T00:00:00Z"},
		{in: "2021-03-01T10:30:00Z", want: "2021-03-01T10:30:00Z"},
		{in: "2021-03-01T10:30:00+02:00", want: "2021-03-01T08:30:00Z"},
		{in: "2021-03-01T10:30", want: "2021-03-01T10:30:00Z"},
		{in: " 2021-03-01 ", want: "2021-03-01T00:00:00Z"},
		{in: "", wantErr: true},
		{in: "03/01/2021", wantErr: true},
		{in: "2021-13-01", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format("2006-01-02T15:04:05Z07:00"))
		})
	}
}

type flexPayload struct {
	Proficiency *FlexInt `json:"proficiency" validate:"required,min=0,max=100"`
}

func TestFlexIntDecoding(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{name: "number", body: `{"proficiency": 85}`, want: 85},
		{name: "numeric_string", body: `{"proficiency": "85"}`, want: 85},
		{name: "padded_string", body: `{"proficiency": " 42 "}`, want: 42},
		{name: "whole_float", body: `{"proficiency": 85.0}`, want: 85},
		{name: "fraction_above_max", body: `{"proficiency": 100.9}`, wantErr: true},
		{name: "fraction_string", body: `{"proficiency": "100.5"}`, wantErr: true},
		{name: "negative_fraction", body: `{"proficiency": -0.5}`, wantErr: true},
		{name: "string_out_of_range_still_decodes", body: `{"proficiency": "150"}`, want: 150},
		{name: "non_numeric", body: `{"proficiency": "expert"}`, wantErr: true},
		{name: "boolean", body: `{"proficiency": true}`, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var p flexPayload
			err := json.Unmarshal([]byte(tt.body), &p)
			if tt.wantErr {
				var typeErr *json.UnmarshalTypeError
				require.Error(t, err)
				assert.True(t, errors.As(err, &typeErr), "expected UnmarshalTypeError, got %T", err)
				assert.Equal(t, "proficiency", typeErr.Field)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, p.Proficiency)
			assert.Equal(t, tt.want, p.Proficiency.Int())
		})
	}
}

func TestFlexIntRangeTags(t *testing.T) {
	v := validator.New()

	in := FlexInt(150)
	err := v.Struct(flexPayload{Proficiency: &in})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "max", verrs[0].Tag())

	ok := FlexInt(100)
	assert.NoError(t, v.Struct(flexPayload{Proficiency: &ok}))

	assert.Error(t, v.Struct(flexPayload{}), "missing proficiency must fail required")
}

type datedPayload struct {
	Name      string `validate:"required,notblank"`
	StartDate string `validate:"required,isodate"`
	EndDate   string `validate:"required_unless=Current true,omitempty,isodate"`
	Current   bool
}

func TestCustomTags(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	tests := []struct {
		name      string
		in        datedPayload
		wantField string
		wantTag   string
	}{
		{
			name: "ended_position",
			in:   datedPayload{Name: "x", StartDate: "2020-01-01", EndDate: "2021-01-01"},
		},
		{
			name: "current_position_with_blank_end",
			in:   datedPayload{Name: "x", StartDate: "2020-01-01", EndDate: "", Current: true},
		},
		{
			name: "current_position_without_end",
			in:   datedPayload{Name: "x", StartDate: "2020-01-01", Current: true},
		},
		{
			name:      "missing_end_when_not_current",
			in:        datedPayload{Name: "x", StartDate: "2020-01-01"},
			wantField: "EndDate",
			wantTag:   "required_unless",
		},
		{
			name:      "empty_end_when_not_current",
			in:        datedPayload{Name: "x", StartDate: "2020-01-01", EndDate: ""},
			wantField: "EndDate",
			wantTag:   "required_unless",
		},
		{
			name:      "malformed_start",
			in:        datedPayload{Name: "x", StartDate: "yesterday", Current: true},
			wantField: "StartDate",
			wantTag:   "isodate",
		},
		{
			name:      "blank_name",
			in:        datedPayload{Name: "   ", StartDate: "2020-01-01", Current: true},
			wantField: "Name",
			wantTag:   "notblank",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
			assert.Equal(t, tt.wantField, verrs[0].Field())
			assert.Equal(t, tt.wantTag, verrs[0].Tag())
		})
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())
}
