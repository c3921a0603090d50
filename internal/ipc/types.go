package ipc

// StartRequest triggers daemon watch startup.
type StartRequest struct{}

// StartResponse indicates whether the daemon was started.
type StartResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// StopRequest stops the daemon watch loop.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse represents combined daemon/watch status information.
type StatusResponse struct {
	Running          bool   `json:"running"`
	Ticks            uint64 `json:"ticks"`
	LastTick         string `json:"last_tick"`
	LastError        string `json:"last_error"`
	PollIntervalSecs int    `json:"poll_interval_secs"`
	StateDBPath      string `json:"state_db_path"`
	LockPath         string `json:"lock_path"`
	PID              int    `json:"pid"`
}

// ScanNowRequest triggers an immediate scan cycle.
type ScanNowRequest struct{}

// ScanNowResponse reports whether the scan was queued.
type ScanNowResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// StateRecord mirrors one persisted deduplication record.
type StateRecord struct {
	Kind          string `json:"kind"`
	LastID        string `json:"last_id"`
	LastStartTime string `json:"last_start_time"`
	UpdatedAt     string `json:"updated_at"`
}

// StateListRequest fetches every deduplication record.
type StateListRequest struct{}

// StateListResponse contains the deduplication records.
type StateListResponse struct {
	Records []StateRecord `json:"records"`
}

// StateResetRequest clears deduplication records. An empty kind list clears
// all of them.
type StateResetRequest struct {
	Kinds []string `json:"kinds"`
}

// StateResetResponse reports number of cleared records.
type StateResetResponse struct {
	Cleared int `json:"cleared"`
}

// TestNotificationRequest triggers a notification test.
type TestNotificationRequest struct{}

// TestNotificationResponse reports notification test outcome.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}
