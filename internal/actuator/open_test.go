package actuator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/logger"
)

// unreachableConfig asks for real hardware that no machine has.
func unreachableConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Display.Bus = "wifimon-missing-bus"
	cfg.LEDs.Green = "WIFIMON_NO_PIN_1"
	cfg.LEDs.Yellow = "WIFIMON_NO_PIN_2"
	cfg.LEDs.Red = "WIFIMON_NO_PIN_3"
	return cfg
}

func TestOpen_UnreachableHardwareFallsBack(t *testing.T) {
	log := logger.NewBufferLogger()

	layer := Open(unreachableConfig(), log)
	defer layer.Close()

	assert.Equal(t, "leds=none display=log", layer.Describe())
	assert.True(t, log.Contains("warn", "LEDs disabled"))
	assert.True(t, log.Contains("warn", "Display disabled"))

	cmd := Command{LED: LEDRed, Lines: []string{"Mar-09-24 02:05 PM", "IP: NA", "GW: NA", "SSID: Offline"}}
	assert.NotPanics(t, func() { layer.Apply(cmd) })
	last, applied := layer.Last()
	assert.True(t, applied)
	assert.Equal(t, LEDRed, last.LED)
}

func TestOpen_DisabledDriversNeverTouchHardware(t *testing.T) {
	cfg := unreachableConfig()
	cfg.Display.Driver = config.DisplayNone
	cfg.LEDs.Driver = config.LEDsNone
	log := logger.NewBufferLogger()

	layer := Open(cfg, log)

	assert.Equal(t, "leds=none display=log", layer.Describe())
	assert.False(t, log.HasLevel("warn"))
}

func TestOpen_MissingDisplayKeepsWorkingLEDs(t *testing.T) {
	log := logger.NewBufferLogger()
	leds := &recordingLEDs{}

	layer := NewLayer(leds, openDisplay(unreachableConfig().Display, log), log)

	assert.Equal(t, "leds=recording display=log", layer.Describe())
	layer.Apply(Command{LED: LEDGreen, Lines: []string{"t", "IP: 10.0.0.2", "GW: 10.0.0.1", "HomeNet -50dBm"}})
	layer.Apply(Command{LED: LEDYellowBlink, Lines: []string{"t", "IP: 10.0.0.2", "GW: NA", "HomeNet -50dBm"}})

	assert.Equal(t, []LEDMode{LEDGreen, LEDYellowBlink}, leds.modes)
}

func TestCheckLEDs_UnknownPin(t *testing.T) {
	err := CheckLEDs(unreachableConfig().LEDs)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrDevice))
}

func TestCheckDisplay_UnknownBus(t *testing.T) {
	err := CheckDisplay(unreachableConfig().Display)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrDevice))
}
