// Package telemetry samples the environment sensor and the supply rail
// after every wake and publishes the readings. It never blocks the sleep
// loop: sampling runs on its own goroutine, keyed off wake events.
package telemetry

import (
	"context"
	"time"

	"powercode-go/bus"
	"powercode-go/dbprint"
	"powercode-go/services/wakewatch"
	"powercode-go/types"
)

var (
	TopicTemperature = bus.T("telemetry", "temperature")
	TopicHumidity    = bus.T("telemetry", "humidity")
	TopicBattery     = bus.T("telemetry", "battery")
)

// EnvSensor is the slice of the Si7021 driver this service needs.
type EnvSensor interface {
	ReadHumidity() (int32, error)
	ReadPreviousTemperature() (int32, error)
}

// BatteryReader reads the supply rail in millivolts. Implemented by the
// platform ADC binding; nil means the board has no battery channel.
type BatteryReader interface {
	ReadBatteryMilliV() (uint32, error)
}

type Service struct {
	conn *bus.Connection
	env  EnvSensor
	batt BatteryReader
	diag *dbprint.Logger
}

func New(conn *bus.Connection, env EnvSensor, batt BatteryReader, diag *dbprint.Logger) *Service {
	return &Service{conn: conn, env: env, batt: batt, diag: diag}
}

// Start subscribes to wake events and samples after each one.
func (s *Service) Start(ctx context.Context) error {
	sub := s.conn.Subscribe(wakewatch.TopicWake)
	go func() {
		defer s.conn.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-sub.Channel():
				if !ok {
					return
				}
				s.sample()
			}
		}
	}()
	return nil
}

// Sample runs one sampling round immediately. Exposed for boot-time
// baseline readings.
func (s *Service) Sample() { s.sample() }

func (s *Service) sample() {
	now := time.Now().UnixMilli()

	if s.env != nil {
		// One conversion: humidity first, then the temperature the chip
		// measured alongside it.
		rh, err := s.env.ReadHumidity()
		if err != nil {
			s.diag.Warn("humidity read failed")
		} else {
			s.conn.Publish(&bus.Message{
				Topic:    TopicHumidity,
				Payload:  types.HumidityValue{CentiPct: rh, TsMs: now},
				Retained: true,
			})
			if tc, err := s.env.ReadPreviousTemperature(); err != nil {
				s.diag.Warn("temperature read failed")
			} else {
				s.conn.Publish(&bus.Message{
					Topic:    TopicTemperature,
					Payload:  types.TemperatureValue{CentiC: tc, TsMs: now},
					Retained: true,
				})
			}
		}
	}

	if s.batt != nil {
		mv, err := s.batt.ReadBatteryMilliV()
		if err != nil {
			s.diag.Warn("battery read failed")
			return
		}
		s.conn.Publish(&bus.Message{
			Topic:    TopicBattery,
			Payload:  types.BatteryValue{MilliV: mv, TsMs: now},
			Retained: true,
		})
		s.diag.InfoInt("battery ", mv, " mV")
	}
}
