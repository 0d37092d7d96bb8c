package http

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/pkg/logger"
)

// HeaderIdempotencyKey cabecera con la llave que elige el cliente.
const HeaderIdempotencyKey = "Idempotency-Key"

// IdempotencyStore almacén de respuestas ya servidas (Redis en producción).
// Get devuelve "" cuando la llave no existe.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	IdempotencyKey(scope, id string) string
}

type idempotencyRecord struct {
	Status      int               `json:"status"`
	Body        string            `json:"body"`
	Headers     map[string]string `json:"headers,omitempty"`
	RequestHash string            `json:"request_hash"`
}

// Idempotency repite la respuesta guardada cuando llega otra vez la misma Idempotency-Key
// para el mismo usuario y ruta. Sin cabecera, o sin store, la petición pasa tal cual.
// Reusar la llave con otro cuerpo responde 422.
func Idempotency(store IdempotencyStore, ttl time.Duration, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
		if store == nil || key == "" {
			return c.Next()
		}

		ctx := c.UserContext()
		requestHash := hashBody(c.Body())
		storeKey := store.IdempotencyKey(buildScope(c), key)

		stored, err := store.Get(ctx, storeKey)
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("idempotency: lectura fallida")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "DEPENDENCY", Message: "no se pudo verificar la idempotencia"})
		}
		if stored != "" {
			var record idempotencyRecord
			if err := json.Unmarshal([]byte(stored), &record); err != nil {
				log.Error().Err(err).Str("key", key).Msg("idempotency: registro corrupto")
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "DEPENDENCY", Message: "registro de idempotencia inválido"})
			}
			if record.RequestHash != requestHash {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_KEY_REUSED", Message: "la llave ya se usó con otro cuerpo"})
			}
			return writeStoredResponse(c, &record)
		}

		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			return nil
		}
		record := idempotencyRecord{
			Status:      status,
			Body:        base64.StdEncoding.EncodeToString(c.Response().Body()),
			RequestHash: requestHash,
		}
		if ct := string(c.Response().Header.ContentType()); ct != "" {
			record.Headers = map[string]string{fiber.HeaderContentType: ct}
		}
		payload, err := json.Marshal(record)
		if err != nil {
			log.Error().Err(err).Msg("idempotency: serializar registro")
			return nil
		}
		if _, err := store.SetNX(ctx, storeKey, string(payload), ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("idempotency: no se pudo guardar la respuesta")
		}
		return nil
	}
}

func buildScope(c *fiber.Ctx) string {
	return strings.Join([]string{GetUserID(c), c.Method(), c.Path()}, "|")
}

func writeStoredResponse(c *fiber.Ctx, record *idempotencyRecord) error {
	if ct := record.Headers[fiber.HeaderContentType]; ct != "" {
		c.Set(fiber.HeaderContentType, ct)
	}
	c.Set("Idempotent-Replay", "true")
	body, err := base64.StdEncoding.DecodeString(record.Body)
	if err != nil {
		body = nil
	}
	return c.Status(record.Status).Send(body)
}

func hashBody(payload []byte) string {
	sum := sha256.Sum256(payload)
	return base64.StdEncoding.EncodeToString(sum[:])
}
