package inverter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/angas/solarvalue-go/convert"
)

// LiveReading is the most recent telemetry sample from the inverter.
type LiveReading struct {
	PowerW         float64   `json:"power_w"`
	EnergyTodayKWh float64   `json:"energy_today_kwh"`
	TemperatureC   float64   `json:"temperature_c"`
	ReceivedAt     time.Time `json:"received_at"`
}

type telemetryMessage struct {
	PowerW        float64 `json:"power_w"`
	EnergyTodayWh float64 `json:"energy_today_wh"`
	TemperatureC  float64 `json:"temperature_c"`
}

// LiveFeed subscribes to the inverter's MQTT telemetry topic and keeps
// the latest reading in memory for the real time view.
type LiveFeed struct {
	client  mqtt.Client
	logger  *slog.Logger
	topic   string
	mu      sync.RWMutex
	reading LiveReading
}

func NewLiveFeed(host string, port int16, topic string) *LiveFeed {
	logger := slog.Default().With("module", "inverter-live")
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", host, port))
	opts.SetClientID("solarvalue")
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(client mqtt.Client) {
		logger.Info("inverter MQTT connected")
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		logger.Warn("inverter MQTT connection lost", slog.Any("error", err))
	}

	mqttLogger := slog.Default().With("module", "mqtt")
	mqtt.CRITICAL = newMqttLogger(mqttLogger, slog.LevelError)
	mqtt.ERROR = newMqttLogger(mqttLogger, slog.LevelError)
	mqtt.WARN = newMqttLogger(mqttLogger, slog.LevelWarn)

	return &LiveFeed{
		client: mqtt.NewClient(opts),
		logger: logger,
		topic:  topic,
	}
}

func (lf *LiveFeed) Connect() error {
	lf.logger.Debug("connecting inverter MQTT client")

	if token := lf.client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}

	token := lf.client.Subscribe(lf.topic, 0, func(client mqtt.Client, msg mqtt.Message) {
		var tm telemetryMessage
		if err := json.Unmarshal(msg.Payload(), &tm); err != nil {
			lf.logger.Error("error when reading telemetry message", slog.Any("error", err))
			return
		}

		lf.mu.Lock()
		lf.reading = LiveReading{
			PowerW:         tm.PowerW,
			EnergyTodayKWh: convert.WhToKWh(tm.EnergyTodayWh),
			TemperatureC:   tm.TemperatureC,
			ReceivedAt:     time.Now(),
		}
		lf.mu.Unlock()
	})

	if token.Wait() && token.Error() != nil {
		return token.Error()
	}

	return nil
}

func (lf *LiveFeed) Disconnect() {
	lf.logger.Info("disconnecting inverter MQTT client")

	token := lf.client.Unsubscribe(lf.topic)
	token.WaitTimeout(1 * time.Second)
	if token.Error() != nil {
		lf.logger.Error("error unsubscribing from telemetry topic", slog.Any("error", token.Error()))
	}

	lf.client.Disconnect(250)
}

// Snapshot returns the latest reading. The zero value means nothing
// has been received yet.
func (lf *LiveFeed) Snapshot() LiveReading {
	lf.mu.RLock()
	defer lf.mu.RUnlock()
	return lf.reading
}

// Healthy reports whether a reading arrived within the last minute.
func (lf *LiveFeed) Healthy() bool {
	lf.mu.RLock()
	defer lf.mu.RUnlock()
	return !lf.reading.ReceivedAt.IsZero() && time.Since(lf.reading.ReceivedAt) < time.Minute
}
