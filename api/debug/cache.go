package debug

import (
	"car_configurator_server/handling"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// ClearCache flushes the Redis database, catalog entries and revoked tokens included.
func (drm *DebugRoutesManager) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := drm.cacheService.ClearAll(r.Context()); err != nil {
		handling.HandleError(err, "Failed to clear cache", drm.logger, w)
		return
	}

	drm.logger.Info("Cache cleared through debug endpoint")
	gecho.Success(w,
		gecho.WithMessage("Cache cleared"),
		gecho.Send(),
	)
}
