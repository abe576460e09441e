package sanitize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *string
	}{
		{name: "empty", in: "", want: nil},
		{name: "whitespace only", in: "   \t ", want: nil},
		{name: "trims", in: "  Pearl 36  ", want: strPtr("Pearl 36")},
		{name: "plain", in: "hull-42", want: strPtr("hull-42")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *float64
	}{
		{name: "empty", in: "", want: nil},
		{name: "not a number", in: "abc", want: nil},
		{name: "infinite", in: "Inf", want: nil},
		{name: "nan", in: "NaN", want: nil},
		{name: "integer", in: "500", want: floatPtr(500)},
		{name: "decimal with spaces", in: " 12.5 ", want: floatPtr(12.5)},
		{name: "negative", in: "-3", want: floatPtr(-3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(tt.in))
		})
	}
}

func TestDate(t *testing.T) {
	assert.Nil(t, Date(""))
	assert.Nil(t, Date("yesterday"))
	assert.Nil(t, Date("2024-13-40"))

	got := Date("2024-05-12T14:30")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 5, 12, 14, 30, 0, 0, time.UTC), *got)

	got = Date("2024-05-12")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC), *got)

	got = Date("2024-05-12T14:30:00Z")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 5, 12, 14, 30, 0, 0, time.UTC), (*got).UTC())
}

func TestObjectID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{name: "empty", in: "", ok: false},
		{name: "too short", in: "abc123", ok: false},
		{name: "too long", in: "665f1e9c2ab79c0012d4e3a1ff", ok: false},
		{name: "non hex", in: "zzzf1e9c2ab79c0012d4e3a1", ok: false},
		{name: "valid lower", in: "665f1e9c2ab79c0012d4e3a1", ok: true},
		{name: "valid mixed case", in: "665F1E9C2AB79C0012D4E3A1", ok: true},
		{name: "valid padded", in: "  665f1e9c2ab79c0012d4e3a1 ", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ObjectID(tt.in)
			if !tt.ok {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Len(t, *got, 24)
		})
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
