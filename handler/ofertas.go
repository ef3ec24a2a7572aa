package handler

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/chatia-cau/ofertas/config"
	"github.com/chatia-cau/ofertas/model"
	"github.com/chatia-cau/ofertas/pkg/logger"
	"github.com/chatia-cau/ofertas/pkg/metrics"
	"github.com/chatia-cau/ofertas/service"
	"github.com/gin-gonic/gin"
)

const (
	defaultRFPName = "pliego.pdf"
	confidence     = 0.9
	mainObjective  = "Transformación digital y modernización"
)

var productsAndServices = []string{"Consultoría", "Implementación", "Soporte"}

var nextSteps = []string{
	"Pliego dividido en chunks inteligentes",
	"Clasificación automática completada",
	"Listo para generación de oferta",
	"Compatible con búsqueda FAISS",
}

type OfertasHandler struct {
	chunking config.ChunkingConfig
	files    service.FileLocator
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewOfertasHandler wires the offer endpoints. chunking supplies the window
// parameters for requests that omit them; m may be nil.
func NewOfertasHandler(chunking config.ChunkingConfig, files service.FileLocator, m *metrics.Metrics) *OfertasHandler {
	return &OfertasHandler{
		chunking: chunking,
		files:    files,
		metrics:  m,
		now:      time.Now,
	}
}

type PliegoRequest struct {
	RFPContent    *string `json:"rfp_content" binding:"required"`
	RFPName       *string `json:"rfp_name"`
	AutoGenerate  *bool   `json:"auto_generate"`
	ChunkSize     *int    `json:"chunk_size"`
	ChunkOverlap  *int    `json:"chunk_overlap"`
	IncludeChunks bool    `json:"include_chunks"`
}

// OfferRequest and FileRequest require offer_id to be present; an empty
// string is accepted.
type OfferRequest struct {
	OfferID *string `json:"offer_id" binding:"required"`
}

type FileRequest struct {
	OfferID  *string `json:"offer_id" binding:"required"`
	FileType *string `json:"file_type"`
}

type ListQuery struct {
	Limit  int `form:"limit,default=20" binding:"gte=0"`
	Offset int `form:"offset,default=0" binding:"gte=0"`
}

type PingResponse struct {
	Status      string   `json:"status"`
	Message     string   `json:"message"`
	Version     string   `json:"version"`
	Platform    string   `json:"platform"`
	Integration string   `json:"integration"`
	Advantages  []string `json:"advantages"`
	Timestamp   string   `json:"timestamp"`
}

type ClassificationDetail struct {
	model.Classification
	Confidence          float64  `json:"confianza"`
	MainObjective       string   `json:"objetivo_principal"`
	ProductsAndServices []string `json:"productos_servicios"`
	Regulations         []string `json:"normativas"`
}

type ChunksInfo struct {
	TotalChunks     int `json:"total_chunks"`
	ChunkSize       int `json:"chunk_size"`
	ChunkOverlap    int `json:"chunk_overlap"`
	TotalCharacters int `json:"total_characters"`
}

type AutoGenerationResult struct {
	Status         string   `json:"status"`
	Message        string   `json:"message"`
	GenerationTime string   `json:"generation_time"`
	OfferSections  []string `json:"offer_sections"`
}

type PliegoResponse struct {
	OfferID              string                `json:"offer_id"`
	Status               string                `json:"status"`
	Message              string                `json:"message"`
	RFPName              string                `json:"rfp_name"`
	Classification       ClassificationDetail  `json:"classification"`
	ChunksCreated        int                   `json:"chunks_created"`
	ChunksInfo           ChunksInfo            `json:"chunks_info"`
	Chunks               []model.Window        `json:"chunks,omitempty"`
	ProcessingTime       string                `json:"processing_time"`
	Platform             string                `json:"platform"`
	IntegrationStatus    string                `json:"integration_status"`
	Timestamp            string                `json:"timestamp"`
	NextSteps            []string              `json:"next_steps"`
	AutoGenerationResult *AutoGenerationResult `json:"auto_generation_result,omitempty"`
}

type GenerateResponse struct {
	OfferID           string                  `json:"offer_id"`
	Status            string                  `json:"status"`
	Message           string                  `json:"message"`
	OfferContent      service.ProposalContent `json:"offer_content"`
	GenerationDetails []string                `json:"generation_details"`
	GenerationTime    string                  `json:"generation_time"`
	Platform          string                  `json:"platform"`
	IntegrationStatus string                  `json:"integration_status"`
	Timestamp         string                  `json:"timestamp"`
}

type StoredChunksInfo struct {
	TotalChunks int  `json:"total_chunks"`
	ChunksSaved bool `json:"chunks_saved"`
}

type StatusResponse struct {
	OfferID             string               `json:"offer_id"`
	Status              string               `json:"status"`
	Message             string               `json:"message"`
	Classification      model.Classification `json:"classification"`
	ProcessingDate      string               `json:"processing_date"`
	ChunksInfo          StoredChunksInfo     `json:"chunks_info"`
	FinalOfferAvailable bool                 `json:"final_offer_available"`
	Platform            string               `json:"platform"`
	IntegrationStatus   string               `json:"integration_status"`
}

type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

type ListResponse struct {
	Status            string               `json:"status"`
	Message           string               `json:"message"`
	Offers            []model.OfferSummary `json:"offers"`
	TotalOffers       int                  `json:"total_offers"`
	Pagination        Pagination           `json:"pagination"`
	Platform          string               `json:"platform"`
	IntegrationStatus string               `json:"integration_status"`
}

type FileResponse struct {
	OfferID           string          `json:"offer_id"`
	Status            string          `json:"status"`
	Message           string          `json:"message"`
	FileInfo          *model.FileInfo `json:"file_info"`
	Platform          string          `json:"platform"`
	IntegrationStatus string          `json:"integration_status"`
	Timestamp         string          `json:"timestamp"`
}

func (h *OfertasHandler) timestamp() string {
	return h.now().Format(time.RFC3339)
}

// Ping reports that the offer subsystem is up.
func (h *OfertasHandler) Ping(_ *gin.Context) (*PingResponse, error) {
	return &PingResponse{
		Status:      "ok",
		Message:     "Sistema de ofertas inteligente operativo",
		Version:     "v2.0_integrated",
		Platform:    "Azure App Service (chatia-cau-faiss)",
		Integration: "FAISS + Ofertas",
		Advantages: []string{
			"Sin cold starts",
			"Siempre activo",
			"Respuesta instantánea",
			"Integrado con FAISS",
		},
		Timestamp: h.timestamp(),
	}, nil
}

// ProcesarPliego classifies a pliego and splits it into windows.
func (h *OfertasHandler) ProcesarPliego(c *gin.Context) (*PliegoResponse, error) {
	var req PliegoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, bindFault("body", err)
	}

	now := h.now()
	offerID := service.NewOfferID(now)
	ctx := logger.WithOfferID(c.Request.Context(), offerID)
	c.Request = c.Request.WithContext(ctx)

	size := valueOr(req.ChunkSize, h.chunking.Size)
	overlap := valueOr(req.ChunkOverlap, h.chunking.Overlap)
	content := *req.RFPContent

	windows, err := service.Segment(content, size, overlap)
	if err != nil {
		if errors.Is(err, service.ErrInvalidWindow) {
			return nil, unprocessable(err, windowIssue(size, overlap))
		}
		return nil, fmt.Errorf("segmenting pliego: %w", err)
	}

	classification := service.Classify(content)
	h.metrics.ObservePliego(classification, len(windows))

	resp := &PliegoResponse{
		OfferID: offerID,
		Status:  model.StatusSuccess,
		Message: "Pliego procesado correctamente (FAISS + Ofertas Integrado)",
		RFPName: valueOr(req.RFPName, defaultRFPName),
		Classification: ClassificationDetail{
			Classification:      classification,
			Confidence:          confidence,
			MainObjective:       mainObjective,
			ProductsAndServices: productsAndServices,
			Regulations:         service.Regulations(classification.ClientType),
		},
		ChunksCreated: len(windows),
		ChunksInfo: ChunksInfo{
			TotalChunks:     len(windows),
			ChunkSize:       size,
			ChunkOverlap:    overlap,
			TotalCharacters: utf8.RuneCountInString(content),
		},
		ProcessingTime:    "< 1 segundo",
		Platform:          integratedPlatform,
		IntegrationStatus: integrationActive,
		Timestamp:         now.Format(time.RFC3339),
		NextSteps:         nextSteps,
	}
	if req.IncludeChunks {
		resp.Chunks = windows
	}
	if valueOr(req.AutoGenerate, true) {
		resp.AutoGenerationResult = &AutoGenerationResult{
			Status:         model.StatusSuccess,
			Message:        "Oferta generada automáticamente",
			GenerationTime: "< 3 segundos",
			OfferSections:  service.ProposalSections,
		}
	}

	logger.Info(ctx, "pliego processed",
		"rfp_name", resp.RFPName,
		"tipo_oferta", classification.OfferType,
		"tipo_cliente", classification.ClientType,
		"sector", classification.Sector,
		"chunks", len(windows),
	)
	return resp, nil
}

// GenerarOferta returns the proposal text for an offer id.
func (h *OfertasHandler) GenerarOferta(c *gin.Context) (*GenerateResponse, error) {
	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, bindFault("body", err)
	}
	offerID := *req.OfferID
	ctx := logger.WithOfferID(c.Request.Context(), offerID)

	resp := &GenerateResponse{
		OfferID:           offerID,
		Status:            model.StatusSuccess,
		Message:           "Oferta comercial generada correctamente (FAISS + Ofertas)",
		OfferContent:      service.Proposal(offerID),
		GenerationDetails: service.GenerationSteps,
		GenerationTime:    "< 5 segundos",
		Platform:          integratedPlatform,
		IntegrationStatus: integrationActive,
		Timestamp:         h.timestamp(),
	}

	logger.Info(ctx, "offer generated")
	return resp, nil
}

// ObtenerEstadoOferta reports the status of an offer. The record is not
// looked up anywhere; every id reports the same completed state.
func (h *OfertasHandler) ObtenerEstadoOferta(c *gin.Context) (*StatusResponse, error) {
	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, bindFault("body", err)
	}
	offerID := *req.OfferID
	logger.Debug(logger.WithOfferID(c.Request.Context(), offerID), "offer status requested")

	return &StatusResponse{
		OfferID: offerID,
		Status:  model.StatusCompleted,
		Message: "Estado de oferta obtenido correctamente (FAISS + Ofertas)",
		Classification: model.Classification{
			OfferType:  model.OfferDigitalTransformation,
			ClientType: model.ClientPublic,
			Sector:     model.SectorGeneral,
		},
		ProcessingDate:      h.timestamp(),
		ChunksInfo:          StoredChunksInfo{TotalChunks: 5, ChunksSaved: true},
		FinalOfferAvailable: true,
		Platform:            integratedPlatform,
		IntegrationStatus:   integrationActive,
	}, nil
}

// ListarOfertas pages through the example offers.
func (h *OfertasHandler) ListarOfertas(c *gin.Context) (*ListResponse, error) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, bindFault("query", err)
	}
	logger.Debug(c.Request.Context(), "listing offers", "limit", q.Limit, "offset", q.Offset)

	page := service.Paginate(service.ExampleOffers(h.now()), q.Limit, q.Offset)

	return &ListResponse{
		Status:      model.StatusSuccess,
		Message:     fmt.Sprintf("Se encontraron %d ofertas (FAISS + Ofertas)", page.Total),
		Offers:      page.Items,
		TotalOffers: page.Total,
		Pagination: Pagination{
			Limit:   page.Limit,
			Offset:  page.Offset,
			HasMore: page.HasMore,
		},
		Platform:          integratedPlatform,
		IntegrationStatus: integrationActive,
	}, nil
}

// RecuperaFichero returns the metadata of a file attached to an offer.
func (h *OfertasHandler) RecuperaFichero(c *gin.Context) (*FileResponse, error) {
	var req FileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, bindFault("body", err)
	}
	offerID := *req.OfferID
	fileType := valueOr(req.FileType, service.DefaultFileType)
	ctx := logger.WithOfferID(c.Request.Context(), offerID)

	info, err := h.files.Locate(ctx, offerID, fileType)
	if err != nil {
		return nil, fmt.Errorf("locating %s file for %s: %w", fileType, offerID, err)
	}

	logger.Info(ctx, "file info retrieved", "file_type", fileType, "exists", info.Exists)
	return &FileResponse{
		OfferID:           offerID,
		Status:            model.StatusSuccess,
		Message:           "Información del fichero obtenida (FAISS + Ofertas)",
		FileInfo:          info,
		Platform:          integratedPlatform,
		IntegrationStatus: integrationActive,
		Timestamp:         h.timestamp(),
	}, nil
}

func windowIssue(size, overlap int) ValidationIssue {
	if size <= 0 {
		return ValidationIssue{
			Loc:  []string{"body", "chunk_size"},
			Msg:  fmt.Sprintf("chunk_size (%d) must be positive", size),
			Type: "value_error.window",
		}
	}
	return ValidationIssue{
		Loc:  []string{"body", "chunk_overlap"},
		Msg:  fmt.Sprintf("chunk_overlap (%d) must be >= 0 and smaller than chunk_size (%d)", overlap, size),
		Type: "value_error.window",
	}
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
