package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning time", input: "09:30", want: TimeString("09:30")},
		{name: "midnight", input: "00:00", want: TimeString("00:00")},
		{name: "last minute of day", input: "23:59", want: TimeString("23:59")},
		{name: "missing leading zero", input: "9:30", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "with seconds", input: "10:00:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidTimeString))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Validate_RequiresCanonicalForm(t *testing.T) {
	// Без ведущего нуля значение лексикографически сортируется
	// после "10:00" и не совпадает со строкой слота в БД
	assert.NoError(t, TimeString("09:30").Validate())
	assert.Error(t, TimeString("9:30").Validate())
	assert.Error(t, TimeString("10:00:00").Validate())
}

func TestNewTimeString_DropsSeconds(t *testing.T) {
	moment := time.Date(2026, 7, 15, 10, 30, 45, 0, time.UTC)
	assert.Equal(t, TimeString("10:30"), NewTimeString(moment))
}

func TestTimeString_AddMinutes(t *testing.T) {
	shifted, err := TimeString("10:00").AddMinutes(90)
	assert.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), shifted)
}

func TestTimeString_AddMinutes_MidnightCrossing(t *testing.T) {
	// Переход через полночь не поддерживается
	_, err := TimeString("23:30").AddMinutes(45)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTimeString))
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.True(t, TimeString("14:00").IsAfter(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsBefore(TimeString("10:00")))
}

func TestTimeString_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want TimeString
	}{
		{name: "postgres time string", src: "10:00:00", want: TimeString("10:00")},
		{name: "short string", src: "10:00", want: TimeString("10:00")},
		{name: "byte slice", src: []byte("14:30:00"), want: TimeString("14:30")},
		{name: "time value", src: time.Date(2026, 7, 15, 8, 15, 0, 0, time.UTC), want: TimeString("08:15")},
		{name: "nil", src: nil, want: TimeString("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts TimeString
			err := ts.Scan(tt.src)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ts)
		})
	}
}

func TestTimeString_Scan_UnsupportedType(t *testing.T) {
	var ts TimeString
	err := ts.Scan(42)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTimeString))
}
