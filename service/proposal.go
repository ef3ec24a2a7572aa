package service

import "fmt"

// ProposalSections are the section names of a generated offer, in order.
var ProposalSections = []string{
	"Resumen ejecutivo",
	"Análisis de requisitos",
	"Propuesta técnica",
	"Metodología",
	"Equipo y recursos",
	"Cronograma",
	"Presupuesto",
}

// GenerationSteps describes how an offer is put together from a pliego.
var GenerationSteps = []string{
	"Análisis de chunks del pliego original",
	"Aplicación de plantilla específica por categoría",
	"Generación de contenido con IA siguiendo las 3 partes",
	"Ensamblado de oferta final en formato profesional",
}

// ProposalContent is the body of a generated offer.
type ProposalContent struct {
	ExecutiveSummary     string `json:"resumen_ejecutivo"`
	RequirementsAnalysis string `json:"analisis_requisitos"`
	TechnicalProposal    string `json:"propuesta_tecnica"`
	Methodology          string `json:"metodologia"`
	Team                 string `json:"equipo"`
	Schedule             string `json:"cronograma"`
	Budget               string `json:"presupuesto"`
	AddedValue           string `json:"valor_añadido"`
}

// Proposal returns the canned proposal text for offerID.
func Proposal(offerID string) ProposalContent {
	return ProposalContent{
		ExecutiveSummary:     fmt.Sprintf("Propuesta integral para el proyecto %s", offerID),
		RequirementsAnalysis: "Análisis detallado de los requisitos del pliego con identificación de necesidades críticas",
		TechnicalProposal:    "Solución técnica robusta adaptada a las necesidades específicas del cliente",
		Methodology:          "Metodología ágil con entregas incrementales y validación continua",
		Team:                 "Equipo multidisciplinar con experiencia probada en proyectos similares",
		Schedule:             "Planificación detallada con hitos claros y entregables definidos",
		Budget:               "Presupuesto competitivo y ajustado con desglose detallado",
		AddedValue:           "Aceleradores propios, benchmarking y métricas de impacto",
	}
}
