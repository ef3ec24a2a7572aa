package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "CHATIA-CAU-FAISS + Sistema de Ofertas Inteligente"
	serviceVersion = "2.0.0_integrated"

	integratedPlatform = "App Service Integrado (FAISS + Ofertas)"
	integrationActive  = "Active"
)

type SystemHandler struct {
	platform   string
	metricsURL string
	now        func() time.Time
}

// NewSystemHandler builds the root and health handlers. metricsURL is
// listed in the endpoint index when non-empty.
func NewSystemHandler(platform, metricsURL string) *SystemHandler {
	return &SystemHandler{platform: platform, metricsURL: metricsURL, now: time.Now}
}

type RootResponse struct {
	Message   string              `json:"message"`
	Version   string              `json:"version"`
	Platform  string              `json:"platform"`
	Status    string              `json:"status"`
	Services  map[string]string   `json:"services"`
	Endpoints map[string][]string `json:"endpoints"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Platform  string            `json:"platform"`
	Services  map[string]string `json:"services"`
}

// Root describes the service and lists its endpoints.
func (h *SystemHandler) Root(_ *gin.Context) (*RootResponse, error) {
	endpoints := map[string][]string{
		"faiss": {
			"/faiss/health",
			"/faiss/search",
		},
		"ofertas": {
			"/api/ofertas/ping",
			"/api/ofertas/procesarPliego",
			"/api/ofertas/generarOferta",
			"/api/ofertas/obtenerEstadoOferta",
			"/api/ofertas/listarOfertas",
			"/api/ofertas/recuperaFichero",
		},
	}
	if h.metricsURL != "" {
		endpoints["system"] = []string{"/health", h.metricsURL}
	}

	return &RootResponse{
		Message:  serviceName,
		Version:  serviceVersion,
		Platform: h.platform,
		Status:   "operational",
		Services: map[string]string{
			"faiss":   "Vector similarity search",
			"ofertas": "Intelligent offer generation",
		},
		Endpoints: endpoints,
	}, nil
}

func (h *SystemHandler) Health(_ *gin.Context) (*HealthResponse, error) {
	return &HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().Format(time.RFC3339),
		Platform:  "App Service Integrated",
		Services: map[string]string{
			"faiss":   "active",
			"ofertas": "active",
		},
	}, nil
}
