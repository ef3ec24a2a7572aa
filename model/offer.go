package model

// OfferType is the kind of proposal a pliego asks for.
type OfferType string

const (
	OfferCloud                 OfferType = "Cloud"
	OfferSecurity              OfferType = "Seguridad"
	OfferTelco                 OfferType = "Telco"
	OfferDigitalTransformation OfferType = "DX"
)

// ClientType tells public administrations apart from private clients.
type ClientType string

const (
	ClientPublic  ClientType = "Público"
	ClientPrivate ClientType = "Privado"
)

// Sector is the market sector a pliego belongs to.
type Sector string

const (
	SectorHealth     Sector = "Salud"
	SectorEducation  Sector = "Educación"
	SectorFinancial  Sector = "Financiero"
	SectorIndustrial Sector = "Industrial"
	SectorGeneral    Sector = "General"
)

// Offer status constants
const (
	StatusSuccess   = "success"
	StatusCompleted = "completed"
	StatusProcessed = "processed"
)

// Classification holds one label per axis.
type Classification struct {
	OfferType  OfferType  `json:"tipo_oferta"`
	ClientType ClientType `json:"tipo_cliente"`
	Sector     Sector     `json:"sector"`
}

// Window is a contiguous slice of pliego text. Offsets are character
// (rune) positions; EndPos is exclusive.
type Window struct {
	ID       int    `json:"id"`
	Content  string `json:"content"`
	Size     int    `json:"size"`
	StartPos int    `json:"start_pos"`
	EndPos   int    `json:"end_pos"`
}

// OfferSummary is a row of the offer listing.
type OfferSummary struct {
	OfferID     string     `json:"offer_id"`
	RFPName     string     `json:"rfp_name"`
	Status      string     `json:"status"`
	OfferType   OfferType  `json:"tipo_oferta"`
	ClientType  ClientType `json:"tipo_cliente"`
	CreatedDate string     `json:"created_date"`
}

// FileInfo describes a file attached to an offer.
type FileInfo struct {
	Filename          string `json:"filename"`
	FileType          string `json:"file_type"`
	Exists            bool   `json:"exists"`
	SizeEstimate      int64  `json:"size_estimate"`
	DownloadAvailable bool   `json:"download_available"`
	DownloadURL       string `json:"download_url,omitempty"`
	LastModified      string `json:"last_modified"`
}
