package handler

import (
	"encoding/json"
	"net/http"
)

// HandleHealthz answers liveness probes. The body stays outside the API
// envelope so probes can match on {"status":"ok"} directly.
func HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
