package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mdwaseel/batsdatacollection/internal/apierror"
	"github.com/Mdwaseel/batsdatacollection/internal/export"
	"github.com/Mdwaseel/batsdatacollection/internal/model"
	"github.com/Mdwaseel/batsdatacollection/internal/repository"
)

// ExportHandler streams catalog exports as file downloads. It reads straight
// from the repository: exports always cover the full catalog.
type ExportHandler struct{ repo repository.ProductRepository }

func NewExportHandler(repo repository.ProductRepository) *ExportHandler {
	return &ExportHandler{repo: repo}
}

func (h *ExportHandler) load(c *gin.Context) ([]model.Product, bool) {
	products, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
		return nil, false
	}
	return products, true
}

func attach(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) JSON(c *gin.Context) {
	products, ok := h.load(c)
	if !ok {
		return
	}
	data, err := export.ToJSON(products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	attach(c, export.Filename("products", "json"), "application/json", data)
}

func (h *ExportHandler) CSV(c *gin.Context) {
	products, ok := h.load(c)
	if !ok {
		return
	}
	data, err := export.ToCSV(products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	attach(c, export.Filename("products", "csv"), "text/csv", data)
}

func (h *ExportHandler) XLSX(c *gin.Context) {
	products, ok := h.load(c)
	if !ok {
		return
	}
	data, err := export.ToXLSX(products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	attach(c, export.Filename("products", "xlsx"),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *ExportHandler) Backup(c *gin.Context) {
	products, ok := h.load(c)
	if !ok {
		return
	}
	data, err := export.ToFullBackup(products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	attach(c, export.Filename("full_backup", "json"), "application/json", data)
}
