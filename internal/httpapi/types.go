package httpapi

type ScreenStatus struct {
	LastRunAt  string `json:"last_run_at"`
	LastOkAt   string `json:"last_ok_at"`
	LastError  string `json:"last_error"`
	LastScored int    `json:"last_scored"`
	LastRunID  string `json:"last_run_id"`
	Running    bool   `json:"running"`
}
