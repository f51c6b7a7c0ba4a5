package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/catalog"
)

type DetailsController struct {
	volumes VolumeFetcher
	metrics CatalogRecorder
}

func NewDetailsController(volumes VolumeFetcher, metrics CatalogRecorder) *DetailsController {
	return &DetailsController{volumes: volumes, metrics: metrics}
}

func (d *DetailsController) record(outcome string) {
	if d.metrics != nil {
		d.metrics.RecordCatalogRequest(outcome)
	}
}

// GetVolume fetches one catalog volume by its external id.
func (d *DetailsController) GetVolume(c *gin.Context) {
	id := c.Param("id")

	volume, err := d.volumes.GetVolume(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			d.record("not_found")
			respondNotFound(c, "volume")
			return
		}
		d.record("error")
		respondBadGateway(c, err, "catalog volume")
		return
	}
	d.record("success")

	c.JSON(http.StatusOK, volume)
}
