package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("...: %w", Err...) para dar contexto;
// la capa HTTP los resuelve con errors.Is.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrAlreadyExists      = errors.New("el recurso ya existe")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrWrongPassword      = errors.New("la contraseña actual es incorrecta")
	ErrInvalidState       = errors.New("operación no válida para el estado actual")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrInvalidReference   = errors.New("el ítem no pertenece a la solicitud")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrOutOfStock         = errors.New("producto agotado en la sucursal")
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrUnavailable        = errors.New("servicio externo no disponible")
)

// codes códigos estables expuestos al cliente, en el orden en que se evalúan.
var codes = []struct {
	err  error
	code string
}{
	{ErrUserNotFound, "USER_NOT_FOUND"},
	{ErrNotFound, "NOT_FOUND"},
	{ErrEmailAlreadyExists, "EMAIL_ALREADY_EXISTS"},
	{ErrAlreadyExists, "ALREADY_EXISTS"},
	{ErrInvalidCredentials, "INVALID_CREDENTIALS"},
	{ErrWrongPassword, "WRONG_PASSWORD"},
	{ErrUnauthorized, "UNAUTHORIZED"},
	{ErrForbidden, "FORBIDDEN"},
	{ErrInvalidState, "INVALID_STATE"},
	{ErrInvalidTransition, "INVALID_TRANSITION"},
	{ErrInvalidReference, "INVALID_REFERENCE"},
	{ErrInvalidQuantity, "INVALID_QUANTITY"},
	{ErrInsufficientStock, "INSUFFICIENT_STOCK"},
	{ErrOutOfStock, "OUT_OF_STOCK"},
	{ErrEmptyCart, "EMPTY_CART"},
	{ErrUnavailable, "UNAVAILABLE"},
	{ErrInvalidInput, "VALIDATION"},
}

// Code devuelve el código estable del error de dominio, o "INTERNAL" si no es uno conocido.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "INTERNAL"
}
