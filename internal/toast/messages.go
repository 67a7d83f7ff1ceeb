package toast

import (
	"errors"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

const fallbackMessage = "Ocurrió un error inesperado"

var friendlyMessages = map[string]string{
	domain.CodeNoRows:                "No se encontraron resultados",
	domain.CodeUniqueViolation:       "Este registro ya existe",
	domain.CodeForeignKeyViolation:   "No se puede eliminar porque está relacionado con otros registros",
	domain.CodeInsufficientPrivilege: "No tienes permisos para realizar esta acción",
	domain.CodeUndefinedTable:        "Error de configuración de base de datos",
	domain.CodeAuthInvalidEmail:      "Email inválido",
	domain.CodeAuthUserNotFound:      "Usuario no encontrado",
	domain.CodeAuthWrongPassword:     "Contraseña incorrecta",
	domain.CodeAuthWeakPassword:      "La contraseña debe tener al menos 6 caracteres",
	domain.CodeAuthEmailInUse:        "Este email ya está registrado",
	domain.CodeAuthTooManyRequests:   "Demasiados intentos. Intenta más tarde",
}

// FriendlyMessage maps a known backend code to its Spanish message, then
// falls back to the error's own message.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg, ok := friendlyMessages[domain.CodeOf(err)]; ok {
		return msg
	}
	var de *domain.Error
	if errors.As(err, &de) && de.Message == "" && de.Err == nil {
		return fallbackMessage
	}
	if msg := domain.MessageOf(err); msg != "" {
		return msg
	}
	return fallbackMessage
}
