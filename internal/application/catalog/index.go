package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/partkeep-api/internal/domain/entity"
)

// FacetAll centinela que acepta cualquier valor de faceta.
const FacetAll = "all"

// Filter criterios combinados de búsqueda: texto AND facetas.
// Una faceta vacía o en "all" acepta todo.
type Filter struct {
	Query    string
	Supplier string
	Location string
	Category string
}

// Index es la proyección de lectura sobre el catálogo: conjuntos de facetas
// deduplicados para los filtros y el predicado de búsqueda textual. No guarda
// estado propio que reconciliar; se reconstruye entero con cada cambio del
// conjunto de repuestos (hook de cambios del motor de stock).
type Index struct {
	mu         sync.RWMutex
	parts      []*entity.Part
	suppliers  []string
	locations  []string
	categories []string
}

// NewIndex construye un índice vacío.
func NewIndex() *Index {
	return &Index{}
}

// Rebuild reemplaza el contenido del índice con el snapshot recibido.
// Pensado como ledger.ChangeHook.
func (ix *Index) Rebuild(parts []*entity.Part) {
	suppliers := facetValues(parts, func(p *entity.Part) string { return p.Supplier })
	locations := facetValues(parts, func(p *entity.Part) string { return p.Location })
	categories := facetValues(parts, func(p *entity.Part) string { return p.Category })

	ix.mu.Lock()
	ix.parts = parts
	ix.suppliers = suppliers
	ix.locations = locations
	ix.categories = categories
	ix.mu.Unlock()
}

// Suppliers valores de faceta de proveedor, con "all" al frente.
func (ix *Index) Suppliers() []string { return ix.facet(&ix.suppliers) }

// Locations valores de faceta de ubicación, con "all" al frente.
func (ix *Index) Locations() []string { return ix.facet(&ix.locations) }

// Categories valores de faceta de categoría, con "all" al frente.
func (ix *Index) Categories() []string { return ix.facet(&ix.categories) }

// Search devuelve los repuestos que cumplen el filtro, en el orden del snapshot.
func (ix *Index) Search(f Filter) []*entity.Part {
	ix.mu.RLock()
	parts := ix.parts
	ix.mu.RUnlock()

	out := make([]*entity.Part, 0, len(parts))
	for _, p := range parts {
		if Matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

// Matches evalúa el filtro combinado: la consulta (insensible a mayúsculas)
// debe ser subcadena de nombre, número de parte o descripción, Y cada faceta
// debe coincidir exactamente salvo que valga "all" o esté vacía.
func Matches(p *entity.Part, f Filter) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.PartNumber), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return facetMatches(f.Supplier, p.Supplier) &&
		facetMatches(f.Location, p.Location) &&
		facetMatches(f.Category, p.Category)
}

func facetMatches(want, have string) bool {
	return want == "" || want == FacetAll || want == have
}

func (ix *Index) facet(values *[]string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]string, 0, len(*values)+1)
	out = append(out, FacetAll)
	out = append(out, *values...)
	return out
}

// facetValues extrae valores únicos no vacíos, ordenados.
func facetValues(parts []*entity.Part, get func(*entity.Part) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range parts {
		v := get(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
