package handlers

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// SetToast adds a showToast event to the HX-Trigger response header so an
// HTMX front end can announce the outcome of an action. An existing
// HX-Trigger JSON object is merged rather than replaced.
func SetToast(e *core.RequestEvent, log *zap.Logger, toastType string, message string) {
	triggers := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &triggers); err != nil {
			log.Debug("toast: existing HX-Trigger is not JSON, overwriting", zap.Error(err))
			triggers = map[string]any{}
		}
	}
	triggers["showToast"] = map[string]string{
		"message": message,
		"type":    toastType,
	}

	data, err := json.Marshal(triggers)
	if err != nil {
		log.Warn("toast: failed to marshal HX-Trigger JSON", zap.Error(err))
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))
}
