// internal/status/constants.go
package status

// Drive status block layout.
// These values define the published layout and are not configurable.

// SlotsPerDevice is the fixed number of registers per drive.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the drive health state.
const SlotHealthCode = 0

// SlotLastErrorCode holds the result code of the last failed read.
const SlotLastErrorCode = 1

// SlotSecondsInError holds how long (in seconds) the drive has been unhealthy.
const SlotSecondsInError = 2

// SlotClass holds the command class in the high byte and the vendor family in the low byte.
const SlotClass = 3

// SlotFeatureStart is the first per-feature value slot; feature f lives at
// SlotFeatureStart+f.
const SlotFeatureStart = 4

// SlotUnsupportedMask has bit f set when feature f reported not supported.
const SlotUnsupportedMask = 9

// SlotFailedMask has bit f set when the last read of feature f failed.
const SlotFailedMask = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// SlotLive is the number of leading slots that change at runtime.
const SlotLive = SlotFailedMask + 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- HEALTH CODES ----

const (
	HealthUnknown  uint16 = 0
	HealthOK       uint16 = 1
	HealthError    uint16 = 2
	HealthStale    uint16 = 3
	HealthDisabled uint16 = 4
)

// ValueUnread marks a feature slot that has no reading.
const ValueUnread uint16 = 0xFFFF
