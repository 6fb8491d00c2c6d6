package ports

// Recorder métricas de negocio. La implementación por defecto no hace nada.
type Recorder interface {
	Onboarding(result string)
	StatusTransition(from, to string)
	Notification(result string)
}

// NopRecorder Recorder vacío.
type NopRecorder struct{}

func (NopRecorder) Onboarding(string)               {}
func (NopRecorder) StatusTransition(string, string) {}
func (NopRecorder) Notification(string)             {}
