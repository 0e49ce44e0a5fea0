package pvoutput

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
)

const intradayPage = `<!DOCTYPE html>
<html>
<head>
<script src="/js/jquery.js"></script>
<script>var analytics = 1;</script>
</head>
<body>
<div id="chart"></div>
<script>
var systemName = 'Sydney Rooftop';
var timezone = 'Australia/Sydney';
var lng = 151.2093;
var lat = -33.8688;
var cats = ['6:00AM','6:05AM','12:00PM','1:05PM'];
var dataPowerOut = [0,120,4200,3900];
</script>
<script>trackPage();</script>
</body>
</html>`

func TestParsePage(t *testing.T) {
	plant, err := ParsePage(strings.NewReader(intradayPage), "https://pvoutput.example/intraday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plant.Name != "Sydney Rooftop" {
		t.Errorf("name = %q", plant.Name)
	}
	if plant.TimeZone != "Australia/Sydney" {
		t.Errorf("time zone = %q", plant.TimeZone)
	}
	if plant.Longitude != 151.2093 || plant.Latitude != -33.8688 {
		t.Errorf("coordinates = (%v, %v)", plant.Latitude, plant.Longitude)
	}
	if plant.SourceURL != "https://pvoutput.example/intraday" {
		t.Errorf("source url = %q", plant.SourceURL)
	}

	wantTimes := []string{"6:00AM", "6:05AM", "12:00PM", "1:05PM"}
	wantOutputs := []int64{0, 120, 4200, 3900}
	if len(plant.LocalTimes) != len(wantTimes) || len(plant.PowerOutputs) != len(wantOutputs) {
		t.Fatalf("got %v / %v", plant.LocalTimes, plant.PowerOutputs)
	}
	for i := range wantTimes {
		if plant.LocalTimes[i] != wantTimes[i] {
			t.Errorf("time[%d] = %q, want %q", i, plant.LocalTimes[i], wantTimes[i])
		}
		if plant.PowerOutputs[i] != wantOutputs[i] {
			t.Errorf("output[%d] = %d, want %d", i, plant.PowerOutputs[i], wantOutputs[i])
		}
	}
}

func TestParsePage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		wantErr error
	}{
		{
			name:    "too few scripts",
			page:    `<html><body><script>var cats = [];</script></body></html>`,
			wantErr: domain.ErrTelemetryNotFound,
		},
		{
			name:    "missing power series",
			page:    `<html><script>var cats = ['6:00AM'];</script><script>x();</script></html>`,
			wantErr: domain.ErrTelemetryNotFound,
		},
		{
			name:    "length mismatch",
			page:    `<html><script>var cats = ['6:00AM','6:05AM']; var dataPowerOut = [1];</script><script>x();</script></html>`,
			wantErr: domain.ErrSampleLengthMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const sourceURL = "https://plant.example/intraday.jsp"
			_, err := ParsePage(strings.NewReader(tt.page), sourceURL)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if err != nil && strings.Contains(err.Error(), sourceURL) {
				t.Errorf("parse errors leave the url to the caller, got %q", err)
			}
		})
	}
}

func TestParsePage_EmptySeries(t *testing.T) {
	page := `<html><script>var cats = []; var dataPowerOut = [];</script><script>x();</script></html>`

	plant, err := ParsePage(strings.NewReader(page), "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plant.LocalTimes) != 0 || len(plant.PowerOutputs) != 0 {
		t.Errorf("expected empty series, got %v / %v", plant.LocalTimes, plant.PowerOutputs)
	}
}

func TestParsePage_InvalidOutput(t *testing.T) {
	page := `<html><script>var cats = ['6:00AM']; var dataPowerOut = [abc];</script><script>x();</script></html>`

	if _, err := ParsePage(strings.NewReader(page), "u"); err == nil {
		t.Error("expected error for non-integer output")
	}
}

func TestClient_FetchPlant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(intradayPage))
	}))
	defer srv.Close()

	client := NewClient(5*time.Second, 1<<20)

	plant, err := client.FetchPlant(context.Background(), srv.URL+"/intraday.jsp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plant.SourceURL != srv.URL+"/intraday.jsp" {
		t.Errorf("source url = %q", plant.SourceURL)
	}
	if len(plant.PowerOutputs) != 4 {
		t.Errorf("expected 4 samples, got %d", len(plant.PowerOutputs))
	}

	if _, err := client.FetchPlant(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestClient_FetchPlant_PageTooLarge(t *testing.T) {
	tests := []struct {
		name     string
		maxBytes int64
		wantErr  error
	}{
		{name: "page at the limit", maxBytes: int64(len(intradayPage)), wantErr: nil},
		{name: "page over the limit", maxBytes: int64(len(intradayPage)) - 1, wantErr: ErrPageTooLarge},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(intradayPage))
	}))
	defer srv.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(5*time.Second, tt.maxBytes)

			_, err := client.FetchPlant(context.Background(), srv.URL)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
