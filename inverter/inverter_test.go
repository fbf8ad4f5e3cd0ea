package inverter

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const getjpBody = `{
	"776": {
		"0": [
			["00:15", [[1, 500], [2, 500]]],
			["00:45", [[1, 1200], [2, 800]]],
			["01:10", [[1, 2000], [2, 1500]]]
		]
	}
}`

func TestReduceIntervals(t *testing.T) {
	var parsed getjpResponse
	if err := json.Unmarshal([]byte(getjpBody), &parsed); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	hourly, total, err := reduceIntervals(parsed.Days["0"])
	if err != nil {
		t.Fatalf("reduceIntervals() failed: %v", err)
	}

	// Counters: 1000 -> 2000 -> 3500 Wh accumulated. First two intervals
	// fall in H1 (1.0 + 1.0 kWh), the third in H2 (1.5 kWh).
	if got := hourly[1]; math.Abs(got-2.0) > 1e-9 {
		t.Errorf("H1 expected 2.0 kWh, got %f", got)
	}
	if got := hourly[2]; math.Abs(got-1.5) > 1e-9 {
		t.Errorf("H2 expected 1.5 kWh, got %f", got)
	}
	if math.Abs(total-3.5) > 1e-9 {
		t.Errorf("total expected 3.5 kWh, got %f", total)
	}
}

func TestReduceIntervalsMalformedTimestamp(t *testing.T) {
	intervals := []logInterval{{Time: "garbage", Pairs: [][2]float64{{1, 100}}}}
	if _, _, err := reduceIntervals(intervals); err == nil {
		t.Errorf("expected an error for a malformed timestamp")
	}
}

func TestReduceIntervalsEmpty(t *testing.T) {
	hourly, total, err := reduceIntervals(nil)
	if err != nil {
		t.Fatalf("reduceIntervals() failed: %v", err)
	}
	if len(hourly) != 0 || total != 0 {
		t.Errorf("expected empty result, got %v / %f", hourly, total)
	}
}

func TestGetHourlyGeneration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.HasPrefix(string(body), "preval=none;") {
			t.Errorf("unexpected payload prefix: %q", string(body))
		}
		w.Write([]byte(getjpBody))
	}))
	defer srv.Close()

	inv := New(strings.TrimPrefix(srv.URL, "http://"))
	hourly, total, err := inv.GetHourlyGeneration(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetHourlyGeneration() failed: %v", err)
	}
	if len(hourly) != 2 {
		t.Errorf("expected 2 hour buckets, got %d", len(hourly))
	}
	if math.Abs(total-3.5) > 1e-9 {
		t.Errorf("total expected 3.5 kWh, got %f", total)
	}
}
