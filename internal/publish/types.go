// internal/publish/types.go
package publish

// StatusPlan locates one drive's status block in status memory.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16
	DeviceName string
}

// Plan is the fully-built publish plan for one drive.
// Status is nil when the drive did not opt in.
type Plan struct {
	DriveID string
	Status  *StatusPlan
}
