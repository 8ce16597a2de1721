package pedigree

import (
	"cat-registry/internal/platform/logger"
	"cat-registry/internal/platform/metrics"
)

// Report loguea las referencias rotas del árbol y alimenta métricas.
// Lo usan el handler del árbol y el export PDF.
func Report(log logger.Logger, m *metrics.Metrics, rootID int64, t Tree) {
	m.ObservePedigree(t.Lookups, t.IssueKinds())
	if log == nil {
		return
	}
	for _, is := range t.Issues {
		log.Warn("pedigree reference not followed", map[string]any{
			"root_cat_id": rootID,
			"kind":        string(is.Kind),
			"cat_id":      is.CatID,
			"role":        string(is.Role),
			"ref_id":      is.RefID,
		})
	}
}
