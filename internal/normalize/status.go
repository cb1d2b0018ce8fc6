package normalize

import "strings"

// Status categories shared by the spreadsheet side and the CRM side.
const (
	StatusOpen  = "open"
	StatusWon   = "won"
	StatusLost  = "lost"
	StatusOther = "other"
)

// Keyword sets are matched against the accent-folded, lowercased status
// text. Won wins over lost, lost over open, so "cliente perdido" is lost
// only when no won keyword appears first.
var (
	wonKeywords  = []string{"ganho", "won", "fechado", "concluido", "cliente", "converted", "vendido"}
	lostKeywords = []string{"perdido", "lost", "cancelado", "desistiu", "no show", "noshow", "falhou"}
	openKeywords = []string{"aberto", "andamento", "pendente", "novo", "analise", "agendado", "negociacao", "contato"}
)

// ClassifyStatus maps a free-text status label to one of the four status
// categories. Empty or unrecognized labels classify as StatusOther.
func ClassifyStatus(raw string) string {
	s := NameSlug(raw)
	if s == "" {
		return StatusOther
	}
	for _, kw := range wonKeywords {
		if strings.Contains(s, kw) {
			return StatusWon
		}
	}
	for _, kw := range lostKeywords {
		if strings.Contains(s, kw) {
			return StatusLost
		}
	}
	for _, kw := range openKeywords {
		if strings.Contains(s, kw) {
			return StatusOpen
		}
	}
	return StatusOther
}
