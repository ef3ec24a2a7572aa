package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chatia-cau/ofertas/model"
	"golang.org/x/text/cases"
)

// ErrInvalidWindow is returned by Segment when the window size and overlap
// would produce a non-positive stride.
var ErrInvalidWindow = errors.New("invalid window configuration")

type keywordGroup[L any] struct {
	label    L
	keywords []string
}

// Group order is the tie-break: the first group with a hit wins.
var (
	offerTypeGroups = []keywordGroup[model.OfferType]{
		{model.OfferCloud, []string{"cloud", "azure", "aws", "nube", "saas", "paas", "iaas"}},
		{model.OfferSecurity, []string{"seguridad", "ciberseguridad", "firewall", "antivirus", "ens", "esquema"}},
		{model.OfferTelco, []string{"telco", "telecomunicaciones", "5g", "fibra", "red", "conectividad"}},
	}
	clientTypeGroups = []keywordGroup[model.ClientType]{
		{model.ClientPublic, []string{"administracion", "publico", "ayuntamiento", "ministerio", "junta", "diputacion"}},
	}
	sectorGroups = []keywordGroup[model.Sector]{
		{model.SectorHealth, []string{"salud", "sanitario", "hospital", "clinica"}},
		{model.SectorEducation, []string{"educacion", "universidad", "colegio", "formacion"}},
		{model.SectorFinancial, []string{"financiero", "banco", "fintech", "seguros"}},
		{model.SectorIndustrial, []string{"industria", "manufacturing", "produccion"}},
	}
)

func firstMatch[L any](folded string, groups []keywordGroup[L], fallback L) L {
	for _, g := range groups {
		for _, kw := range g.keywords {
			if strings.Contains(folded, kw) {
				return g.label
			}
		}
	}
	return fallback
}

// Classify assigns an offer type, client type and sector to a pliego by
// keyword membership on its case-folded text.
func Classify(text string) model.Classification {
	folded := cases.Fold().String(text)
	return model.Classification{
		OfferType:  firstMatch(folded, offerTypeGroups, model.OfferDigitalTransformation),
		ClientType: firstMatch(folded, clientTypeGroups, model.ClientPrivate),
		Sector:     firstMatch(folded, sectorGroups, model.SectorGeneral),
	}
}

// Regulations lists the norms an offer for the given client type must cover.
func Regulations(client model.ClientType) []string {
	if client == model.ClientPublic {
		return []string{"RGPD", "ENS"}
	}
	return []string{"RGPD"}
}

// Segment splits text into windows of up to size characters, each starting
// size-overlap characters after the previous one. Whitespace-only windows
// are dropped; ids are contiguous over the emitted windows.
func Segment(text string, size, overlap int) ([]model.Window, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: chunk_size=%d chunk_overlap=%d", ErrInvalidWindow, size, overlap)
	}

	runes := []rune(text)
	n := len(runes)
	step := size - overlap

	windows := make([]model.Window, 0, n/step+1)
	for start := 0; start < n; start += step {
		end := start + min(size, n-start)
		content := string(runes[start:end])
		if strings.TrimSpace(content) == "" {
			continue
		}
		windows = append(windows, model.Window{
			ID:       len(windows) + 1,
			Content:  content,
			Size:     end - start,
			StartPos: start,
			EndPos:   end,
		})
	}
	return windows, nil
}
