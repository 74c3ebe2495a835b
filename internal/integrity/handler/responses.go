package handler

import "devicegate/internal/integrity"

// CheckStatusResponse is the outbound body for POST /v1/user/check_status.
// Only the resulting status is exposed; failure reasons stay internal.
type CheckStatusResponse struct {
	BanStatus string `json:"ban_status"`
}

// FromStatus converts a domain status to the wire response.
func FromStatus(status integrity.BanStatus) CheckStatusResponse {
	return CheckStatusResponse{BanStatus: string(status)}
}
