// Package inverter talks to the local solar inverter. The device
// exposes its logged production over an HTTP endpoint speaking a
// numeric-keyed vendor protocol, and pushes live telemetry over MQTT.
package inverter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type Inverter struct {
	url  string
	host string
}

func New(host string) *Inverter {
	return &Inverter{
		url:  fmt.Sprintf("http://%s/getjp", host),
		host: host,
	}
}

// Request key 776 selects the production log; its sub-key is the day
// offset. The remaining keys mirror what the vendor UI always sends.
const payloadTemplate = `{"141":{"32000":{"108":null,"118":null,"119":null,"145":null,"149":null,"158":null}},"152":null,"161":null,"162":null,"480":null,"776":{"%d":null},"777":{"1":null},"801":{"100":null}}`

type getjpResponse struct {
	Days map[string][]logInterval `json:"776"`
}

/// logInterval is one log entry: a "HH:MM" timestamp and a list of
// per-string pairs whose second element is the accumulated Wh counter.
type logInterval struct {
	Time  string
	Pairs [][2]float64
}

func (iv *logInterval) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &iv.Time); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &iv.Pairs)
}

// GetHourlyGeneration fetches one day's production log and reduces the
// accumulated counters into kWh per market hour (an interval stamped
/// 13:05 belongs to H14), plus the day's total.
func (inv *Inverter) GetHourlyGeneration(ctx context.Context, daysBack int) (map[uint8]float64, float64, error) {
	payload := fmt.Sprintf("preval=none;"+payloadTemplate, daysBack)

	req, err := http.NewRequestWithContext(ctx, "POST", inv.url, strings.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-SL-CSRF-PROTECTION", "1")
	req.Header.Set("Origin", "http://"+inv.host)
	req.Header.Set("Referer", "http://"+inv.host+"/")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch generation data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var parsed getjpResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, 0, fmt.Errorf("failed to decode response: %w", err)
	}

	intervals := parsed.Days[strconv.Itoa(daysBack)]
	return reduceIntervals(intervals)
}

func reduceIntervals(intervals []logInterval) (map[uint8]float64, float64, error) {
	hourly := make(map[uint8]float64)
	totalKWh := 0.0
	prevTotal := 0.0

	for _, iv := range intervals {
		hh, ok := intervalHour(iv.Time)
		if !ok {
			return nil, 0, fmt.Errorf("malformed interval timestamp: %q", iv.Time)
		}

		currTotal := 0.0
		for _, pair := range iv.Pairs {
			currTotal += pair[1]
		}

		kwh := (currTotal - prevTotal) / 1000.0
		hourly[hh+1] += kwh
		totalKWh += kwh
		prevTotal = currTotal
	}

	return hourly, totalKWh, nil
}

func intervalHour(timestamp string) (uint8, bool) {
	hh, _, found := strings.Cut(timestamp, ":")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(hh)
	if err != nil || n < 0 || n > 23 {
		return 0, false
	}
	return uint8(n), true
}
