package dto

// FacetsResponse valores de filtro disponibles, con el centinela "all" al frente.
type FacetsResponse struct {
	Suppliers  []string `json:"suppliers"`
	Locations  []string `json:"locations"`
	Categories []string `json:"categories"`
}
