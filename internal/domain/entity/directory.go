package entity

// City ciudad del catálogo. El nombre es único y sensible a mayúsculas y acentos.
type City struct {
	ID   string
	Name string
}

// ServiceCategory agrupa servicios; Order define el orden de presentación.
type ServiceCategory struct {
	ID          string
	Name        string
	Description *string
	Icon        *string
	Order       int
	Services    []Service
}

// Service servicio de limpieza que una empresa puede ofrecer.
type Service struct {
	ID          string
	Name        string
	Description *string
	CategoryID  *string
	Category    *ServiceCategory // solo se rellena si se pide explícitamente
}
