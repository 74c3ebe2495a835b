package checker

import "context"

// RootedDevice vetoes devices that report a rooted/jailbroken OS. Pure, no
// I/O.
type RootedDevice struct{}

// NewRootedDevice constructs the device integrity checker.
func NewRootedDevice() *RootedDevice {
	return &RootedDevice{}
}

func (r *RootedDevice) Evaluate(_ context.Context, in Input) (Outcome, error) {
	if in.RootedDevice {
		return Fail(ReasonRootedDevice), nil
	}
	return Pass(), nil
}
