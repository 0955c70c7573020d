package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func HandleError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// FormatTimestamp renders a start offset in seconds as MM:SS.
// Minutes are not capped at 59; long videos roll past 60 minutes.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
