package dto

// ErrorResponse formato uniforme de error para la capa HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Faltante solo viene en errores de stock insuficiente.
	Faltante string `json:"faltante,omitempty"`
}
