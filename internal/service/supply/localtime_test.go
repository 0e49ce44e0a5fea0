package supply

import (
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
)

func TestParseLocalTime(t *testing.T) {
	ref := time.Date(2020, 7, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		input      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{name: "single digit AM hour", input: "6:05AM", wantHour: 6, wantMinute: 5},
		{name: "two digit AM hour", input: "11:55AM", wantHour: 11, wantMinute: 55},
		{name: "noon stays 12", input: "12:00PM", wantHour: 12, wantMinute: 0},
		{name: "12 PM with minutes stays 12", input: "12:35PM", wantHour: 12, wantMinute: 35},
		{name: "afternoon adds 12", input: "1:10PM", wantHour: 13, wantMinute: 10},
		{name: "late afternoon adds 12", input: "05:55PM", wantHour: 17, wantMinute: 55},
		{name: "12 AM passes through unchanged", input: "12:05AM", wantHour: 12, wantMinute: 5},
		{name: "surrounding whitespace is trimmed", input: " 7:30AM ", wantHour: 7, wantMinute: 30},
		{name: "missing marker", input: "7:30", wantErr: true},
		{name: "lowercase marker", input: "7:30pm", wantErr: true},
		{name: "missing colon", input: "730AM", wantErr: true},
		{name: "hour zero", input: "0:30AM", wantErr: true},
		{name: "hour above 12", input: "13:00PM", wantErr: true},
		{name: "minute above 59", input: "7:60AM", wantErr: true},
		{name: "single digit minute", input: "7:5AM", wantErr: true},
		{name: "non numeric hour", input: "x:30AM", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocalTime(ref, tt.input)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidLocalTime) {
					t.Fatalf("expected ErrInvalidLocalTime, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := time.Date(2020, 7, 3, tt.wantHour, tt.wantMinute, 0, 0, time.UTC)
			if !got.Equal(want) {
				t.Errorf("ParseLocalTime(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

func TestNewGrid(t *testing.T) {
	date := time.Date(2020, 7, 3, 0, 0, 0, 0, time.UTC)

	grid, err := NewGrid(date, 6, 18, 5*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(grid) != 144 {
		t.Fatalf("expected 144 grid points, got %d", len(grid))
	}
	if !grid[0].Equal(time.Date(2020, 7, 3, 6, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected first point: %v", grid[0])
	}
	if !grid[len(grid)-1].Equal(time.Date(2020, 7, 3, 17, 55, 0, 0, time.UTC)) {
		t.Errorf("unexpected last point: %v", grid[len(grid)-1])
	}
}

func TestNewGrid_Invalid(t *testing.T) {
	date := time.Date(2020, 7, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		startHour int
		endHour   int
		interval  time.Duration
	}{
		{name: "zero interval", startHour: 6, endHour: 18, interval: 0},
		{name: "start after end", startHour: 18, endHour: 6, interval: time.Minute},
		{name: "start equals end", startHour: 6, endHour: 6, interval: time.Minute},
		{name: "end beyond day", startHour: 6, endHour: 25, interval: time.Minute},
		{name: "negative start", startHour: -1, endHour: 6, interval: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(date, tt.startHour, tt.endHour, tt.interval)
			if !errors.Is(err, ErrInvalidGrid) {
				t.Errorf("expected ErrInvalidGrid, got %v", err)
			}
		})
	}
}
