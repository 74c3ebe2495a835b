package handler

import dErrors "devicegate/pkg/domain-errors"

// CheckStatusRequest is the inbound body for POST /v1/user/check_status.
// Caller IP and country arrive through edge headers, not the body.
type CheckStatusRequest struct {
	IDFA         string `json:"idfa"`
	RootedDevice bool   `json:"rooted_device"`
}

// Validate enforces the request invariants the service relies on.
func (r CheckStatusRequest) Validate() error {
	if r.IDFA == "" {
		return dErrors.New(dErrors.CodeBadRequest, "idfa is required")
	}
	return nil
}
