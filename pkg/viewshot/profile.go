package viewshot

import (
	"github.com/chromedp/chromedp/device"
	"github.com/go-rod/rod/lib/proto"
)

// Profile describes the viewport a page is rendered in.
type Profile struct {
	Name              string
	Width             int
	Height            int
	DeviceScaleFactor float64
	UserAgent         string // empty keeps the browser default
	Mobile            bool
	Touch             bool
}

// Shot is a single capture pass: one profile, one output file.
type Shot struct {
	Label    string
	Profile  Profile
	Filename string
}

// DesktopProfile is a plain 1400x900 desktop viewport.
var DesktopProfile = Profile{
	Name:              "Desktop",
	Width:             1400,
	Height:            900,
	DeviceScaleFactor: 1,
}

// MobileProfile emulates an iPhone 12 Pro, taken from the device catalog.
var MobileProfile = ProfileFromDevice(device.IPhone12Pro)

// ProfileFromDevice converts a catalog device into a Profile.
func ProfileFromDevice(d device.Device) Profile {
	info := d.Device()
	return Profile{
		Name:              info.Name,
		Width:             int(info.Width),
		Height:            int(info.Height),
		DeviceScaleFactor: info.Scale,
		UserAgent:         info.UserAgent,
		Mobile:            info.Mobile,
		Touch:             info.Touch,
	}
}

// DefaultShots returns the desktop and mobile passes, in capture order.
func DefaultShots() []Shot {
	return []Shot{
		{Label: "Desktop", Profile: DesktopProfile, Filename: "screenshot_desktop.png"},
		{Label: "Mobile", Profile: MobileProfile, Filename: "screenshot_mobile.png"},
	}
}

// Device adapts the profile for chromedp.Emulate.
func (p Profile) Device() device.Info {
	return device.Info{
		Name:      p.Name,
		UserAgent: p.UserAgent,
		Width:     int64(p.Width),
		Height:    int64(p.Height),
		Scale:     p.scale(),
		Mobile:    p.Mobile,
		Touch:     p.Touch,
	}
}

// Metrics adapts the profile for rod's device metrics override.
func (p Profile) Metrics() *proto.EmulationSetDeviceMetricsOverride {
	return &proto.EmulationSetDeviceMetricsOverride{
		Width:             p.Width,
		Height:            p.Height,
		DeviceScaleFactor: p.scale(),
		Mobile:            p.Mobile,
	}
}

func (p Profile) scale() float64 {
	if p.DeviceScaleFactor <= 0 {
		return 1
	}
	return p.DeviceScaleFactor
}
