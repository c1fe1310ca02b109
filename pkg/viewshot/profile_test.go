package viewshot

import (
	"testing"

	"github.com/chromedp/chromedp/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesktopProfile(t *testing.T) {
	assert.Equal(t, 1400, DesktopProfile.Width)
	assert.Equal(t, 900, DesktopProfile.Height)
	assert.Equal(t, 1.0, DesktopProfile.DeviceScaleFactor)
	assert.Empty(t, DesktopProfile.UserAgent)
	assert.False(t, DesktopProfile.Mobile)
	assert.False(t, DesktopProfile.Touch)
}

func TestMobileProfileFromCatalog(t *testing.T) {
	info := device.IPhone12Pro.Device()

	assert.Equal(t, "iPhone 12 Pro", MobileProfile.Name)
	assert.Equal(t, int(info.Width), MobileProfile.Width)
	assert.Equal(t, int(info.Height), MobileProfile.Height)
	assert.Equal(t, info.UserAgent, MobileProfile.UserAgent)
	assert.Greater(t, MobileProfile.DeviceScaleFactor, 1.0)
	assert.True(t, MobileProfile.Mobile)
	assert.True(t, MobileProfile.Touch)
}

func TestDefaultShots(t *testing.T) {
	shots := DefaultShots()
	require.Len(t, shots, 2)

	assert.Equal(t, Shot{Label: "Desktop", Profile: DesktopProfile, Filename: "screenshot_desktop.png"}, shots[0])
	assert.Equal(t, Shot{Label: "Mobile", Profile: MobileProfile, Filename: "screenshot_mobile.png"}, shots[1])

	// callers may edit the returned slice freely
	shots[0].Filename = "changed.png"
	assert.Equal(t, "screenshot_desktop.png", DefaultShots()[0].Filename)
}

func TestProfileMetrics(t *testing.T) {
	m := MobileProfile.Metrics()
	assert.Equal(t, MobileProfile.Width, m.Width)
	assert.Equal(t, MobileProfile.Height, m.Height)
	assert.Equal(t, MobileProfile.DeviceScaleFactor, m.DeviceScaleFactor)
	assert.True(t, m.Mobile)

	// unset scale factors fall back to 1
	m = Profile{Width: 10, Height: 20}.Metrics()
	assert.Equal(t, 1.0, m.DeviceScaleFactor)
}

func TestProfileDevice(t *testing.T) {
	assert.Equal(t, device.Info{
		Name:   "Desktop",
		Width:  1400,
		Height: 900,
		Scale:  1,
	}, DesktopProfile.Device())

	assert.Equal(t, MobileProfile, ProfileFromDevice(MobileProfile.Device()))
}
