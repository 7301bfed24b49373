package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jxdata/portal/internal/content"
	"github.com/jxdata/portal/internal/response"
	"github.com/jxdata/portal/internal/service"
)

type SettingHandler struct {
	settingService *service.SettingService
}

func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// GetPublicSettings godoc
// GET /api/v1/public/settings
func (h *SettingHandler) GetPublicSettings(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"stats": h.settingService.Stats(c.Request.Context())})
}

type CatalogHandler struct {
	catalog *content.Catalog
}

func NewCatalogHandler(catalog *content.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GetCatalog godoc
// GET /api/v1/public/catalog
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	response.Success(c, http.StatusOK, h.catalog)
}
