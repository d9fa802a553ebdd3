package service

import "errors"

// Business-rule errors. Handlers map these onto HTTP status codes; the
// messages are the user-facing contract, so they stay in Spanish and must not
// leak anything beyond what the rule itself reveals. In particular, unknown
// email and wrong password share ErrCredenciales so responses cannot be used
// to enumerate accounts.
var (
	// Registro / verificación
	ErrUsuarioYaRegistrado = errors.New("El usuario ya está registrado")
	ErrEnvioEmail          = errors.New("Error al enviar el correo de verificación.")
	ErrYaVerificado        = errors.New("La cuenta ya está verificada")
	ErrCodigoInvalido      = errors.New("Código de verificación inválido")
	ErrCodigoExpirado      = errors.New("El código de verificación ha expirado")
	ErrCodigoVigente       = errors.New("Ya hay un código vigente. Espera a que expire para solicitar otro.")

	// Login
	ErrCaptcha      = errors.New("Error en la verificación del captcha")
	ErrCredenciales = errors.New("Credenciales inválidas")
	ErrNoVerificado = errors.New("Por favor verifica tu cuenta antes de iniciar sesión.")

	// Cuenta
	ErrUsuarioNoEncontrado = errors.New("Usuario no encontrado")
	ErrPasswordActual      = errors.New("La contraseña actual no es correcta")
	ErrPasswordIgual       = errors.New("La nueva contraseña no puede ser igual a la actual.")
	ErrEmailEnUso          = errors.New("El correo electrónico ya está en uso")

	// Reset de contraseña
	ErrResetReciente   = errors.New("Solo puedes solicitar un restablecimiento de contraseña una vez cada 7 días.")
	ErrTokenInvalido   = errors.New("Token inválido.")
	ErrTokenExpirado   = errors.New("Token expirado.")
	ErrEnvioEmailReset = errors.New("Error al enviar el correo de recuperación.")

	// CRUD
	ErrClienteNoEncontrado = errors.New("Cliente no encontrado o no autorizado")
	ErrFacturaNoEncontrada = errors.New("Factura no encontrada")
	ErrGastoNoEncontrado   = errors.New("Gasto no encontrado o no autorizado")
	ErrIngresoNoEncontrado = errors.New("Ingreso no encontrado o no autorizado")

	// Adjuntos
	ErrArchivoTipo   = errors.New("Solo se permiten archivos PDF, JPG o PNG")
	ErrArchivoTamano = errors.New("El archivo supera el tamaño máximo de 10 MB")
	ErrSinArchivo    = errors.New("La factura no tiene archivo adjunto")
)
