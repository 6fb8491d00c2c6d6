package dto

// CityResponse ciudad del catálogo.
type CityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ServiceResponse servicio del catálogo.
type ServiceResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	CategoryID  *string           `json:"categoryId"`
	Category    *CategoryResponse `json:"category,omitempty"`
}

// CategoryResponse categoría con sus servicios.
type CategoryResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	Icon        *string           `json:"icon"`
	Order       int               `json:"order"`
	Services    []ServiceResponse `json:"services,omitempty"`
}

// CityListResponse listado de ciudades.
type CityListResponse struct {
	Success bool           `json:"success"`
	Cities  []CityResponse `json:"cities"`
}

// ServiceListResponse listado de servicios.
type ServiceListResponse struct {
	Success  bool              `json:"success"`
	Services []ServiceResponse `json:"services"`
}

// CategoryListResponse listado de categorías.
type CategoryListResponse struct {
	Success    bool               `json:"success"`
	Categories []CategoryResponse `json:"categories"`
}
