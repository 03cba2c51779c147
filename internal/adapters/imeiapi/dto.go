package imeiapi

import "time"

// ServiceCheckStatus is the processing state reported for a check.
type ServiceCheckStatus string

// Check states reported by IMEI.info.
const (
	StatusDone       ServiceCheckStatus = "Done"
	StatusInProgress ServiceCheckStatus = "In_progress"
	StatusCompleted  ServiceCheckStatus = "Completed"
	StatusRejected   ServiceCheckStatus = "Rejected"
)

// PhoneInfo is the device payload nested in a standard response.
type PhoneInfo struct {
	IMEI      string `json:"imei"`
	BrandName string `json:"brand_name"`
	Model     string `json:"model"`
}

// StandardResponse is the 200 OK body of a service check.
type StandardResponse struct {
	ID                uint32             `json:"id"`
	ULID              *string            `json:"ulid"`
	Status            ServiceCheckStatus `json:"status"`
	Service           string             `json:"service"`
	ServiceID         uint32             `json:"service_id"`
	CreatedAt         time.Time          `json:"created_at"`
	IMEI              *string            `json:"imei"`
	IMEI2             *string            `json:"imei2"`
	SN                *string            `json:"sn"`
	PhoneNumber       *string            `json:"phone_number"`
	Text              *string            `json:"text"`
	TokenKey          string             `json:"token_key"`
	TokenRequestPrice string             `json:"token_request_price"`
	Result            PhoneInfo          `json:"result"`
	RequestedAt       time.Time          `json:"requested_at"`
}

// PendingResponse is the 202 Accepted body returned while a check is queued.
type PendingResponse struct {
	Message   string `json:"message"`
	HistoryID string `json:"history_id"`
	ULID      string `json:"ulid"`
}

// InvalidAPIKeyResponse is the 401 Unauthorized body.
type InvalidAPIKeyResponse struct {
	Detail string `json:"detail"`
}
