package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonbass/retail-api/internal/application/apptest"
	"github.com/masonbass/retail-api/internal/application/auth"
	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/inventory"
	"github.com/masonbass/retail-api/internal/application/orders"
	"github.com/masonbass/retail-api/internal/application/stockrequest"
	"github.com/masonbass/retail-api/internal/application/usecase"
	"github.com/masonbass/retail-api/internal/domain/entity"
	apphttp "github.com/masonbass/retail-api/internal/interfaces/http"
	"github.com/masonbass/retail-api/pkg/metrics"
	pkgjwt "github.com/masonbass/retail-api/pkg/jwt"
)

// memoryIdempotency IdempotencyStore en memoria.
type memoryIdempotency struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memoryIdempotency) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memoryIdempotency) SetNX(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = value
	return true, nil
}

func (m *memoryIdempotency) IdempotencyKey(scope, id string) string { return scope + ":" + id }

type apiFixture struct {
	app    *fiber.App
	store  *apptest.Store
	branch *entity.Branch
	prod   *entity.Product
	admin  string
	agent  string
	buyer  string
}

// newAPI arma el router completo sobre el Store en memoria: central 20, sucursal con 5.
// opts ajusta las dependencias antes de registrar las rutas.
func newAPI(t *testing.T, opts ...func(*apphttp.RouterDeps)) *apiFixture {
	t.Helper()
	s := apptest.NewStore()
	admin := s.SeedUser("admin", entity.RoleAdmin)
	agent := s.SeedUser("agente", entity.RoleAgent)
	buyer := s.SeedUser("cliente", entity.RoleUser)
	branch := s.SeedBranch("Centro", agent.ID)
	prod := s.SeedProduct("Pegante", decimal.NewFromInt(10), 20)
	s.SeedLine(branch.ID, prod.ID, 5)

	runner := apptest.NewTxRunner(s)
	ledger := inventory.NewLedger(nil)
	reg := prometheus.NewRegistry()

	deps := apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		UserUC:         usecase.NewUserUseCase(s.Users()),
		ProductUC:      usecase.NewProductUseCase(s.Products()),
		BranchUC:       usecase.NewBranchUseCase(s.Branches(), s.Users()),
		ReviewUC:       usecase.NewReviewUseCase(s.Reviews(), s.Orders()),
		CallEventUC:    usecase.NewCallEventUseCase(s.CallEvents()),
		VisitUC:        usecase.NewVisitUseCase(s.Visits(), s.Branches()),
		MasonBassUC:    usecase.NewMasonBassUseCase(s.MasonBass()),
		AddressUC:      usecase.NewAddressUseCase(s.Addresses()),
		LedgerUC:       inventory.NewLedgerUseCase(runner, ledger, s.Branches(), s.Products(), s.BranchProducts(), s.Movements()),
		StockRequestUC: stockrequest.NewWorkflowUseCase(runner, ledger, s.Branches(), s.StockRequests(), nil, nil, nil),
		CartUC:         orders.NewCartUseCase(s.Cart(), s.Products(), s.Branches()),
		CheckoutUC:     orders.NewCheckoutUseCase(runner, ledger, s.Branches(), s.Users(), s.Orders(), nil, nil, nil, nil),
		OrderUC:        orders.NewOrderUseCase(runner, ledger, s.Orders(), s.Branches(), nil, nil, nil),
		JWTSecret:      testJWTSecret,
		Idempotency:    &memoryIdempotency{data: map[string]string{}},
		IdempotencyTTL: time.Hour,
		HTTPMetrics:    metrics.NewHTTPMetrics(reg),
		Gatherer:       reg,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return &apiFixture{
		app:    app,
		store:  s,
		branch: branch,
		prod:   prod,
		admin:  bearer(t, admin.ID, entity.RoleAdmin),
		agent:  bearer(t, agent.ID, entity.RoleAgent),
		buyer:  bearer(t, buyer.ID, entity.RoleUser),
	}
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (f *apiFixture) call(t *testing.T, method, path, token string, body any, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestAPI_FlujoDeReposicion(t *testing.T) {
	f := newAPI(t)

	resp, raw := f.call(t, http.MethodPost, "/api/stock/create", f.agent, map[string]any{
		"branchId": f.branch.ID,
		"items":    []map[string]any{{"productId": f.prod.ID, "requestedQuantity": 8}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	req := decode[dto.StockRequestResponse](t, raw)
	assert.Equal(t, entity.StockRequestPending, req.Status)

	resp, raw = f.call(t, http.MethodPost, "/api/stock/"+req.ID+"/approve", f.admin, map[string]any{
		"items": []map[string]any{{"itemId": req.Items[0].ID, "approvedQuantity": 6}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	resp, raw = f.call(t, http.MethodPost, "/api/stock/"+req.ID+"/deliver", f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	resp, raw = f.call(t, http.MethodPost, "/api/stock/"+req.ID+"/receive", f.agent, map[string]any{
		"items": []map[string]any{{"itemId": req.Items[0].ID, "receivedQuantity": 6}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	got := decode[dto.StockRequestResponse](t, raw)
	assert.Equal(t, entity.StockRequestCompleted, got.Status)

	assert.Equal(t, 14, f.store.AdminStock(f.prod.ID))
	assert.Equal(t, 11, f.store.LineQuantity(f.branch.ID, f.prod.ID))

	// Recibir dos veces es un conflicto de estado.
	resp, raw = f.call(t, http.MethodPost, "/api/stock/"+req.ID+"/receive", f.agent, map[string]any{
		"items": []map[string]any{{"itemId": req.Items[0].ID, "receivedQuantity": 6}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", decode[dto.ErrorResponse](t, raw).Code)
}

func TestAPI_AprobarMasQueElCentral(t *testing.T) {
	f := newAPI(t)
	_, raw := f.call(t, http.MethodPost, "/api/stock/create", f.agent, map[string]any{
		"branchId": f.branch.ID,
		"items":    []map[string]any{{"productId": f.prod.ID, "requestedQuantity": 50}},
	})
	req := decode[dto.StockRequestResponse](t, raw)

	resp, raw := f.call(t, http.MethodPost, "/api/stock/"+req.ID+"/approve?action=approve", f.admin, map[string]any{
		"items": []map[string]any{{"itemId": req.Items[0].ID, "approvedQuantity": 30}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, raw).Code)

	resp, _ = f.call(t, http.MethodPost, "/api/stock/"+req.ID+"/approve?action=reject", f.admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = f.call(t, http.MethodPost, "/api/stock/"+req.ID+"/approve?action=maybe", f.admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_RolesYAutenticacion(t *testing.T) {
	f := newAPI(t)
	body := map[string]any{
		"branchId": f.branch.ID,
		"items":    []map[string]any{{"productId": f.prod.ID, "requestedQuantity": 1}},
	}

	resp, _ := f.call(t, http.MethodPost, "/api/stock/create", "", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = f.call(t, http.MethodPost, "/api/stock/create", f.admin, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = f.call(t, http.MethodGet, "/api/stock/all", f.agent, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = f.call(t, http.MethodGet, "/api/branch/", f.buyer, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// El catálogo es público.
	resp, _ = f.call(t, http.MethodGet, "/api/products/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_ValidacionDevuelveDetalles(t *testing.T) {
	f := newAPI(t)
	resp, raw := f.call(t, http.MethodPost, "/api/stock/create", f.agent, map[string]any{
		"branchId": f.branch.ID,
		"items":    []map[string]any{{"productId": f.prod.ID, "requestedQuantity": 0}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "VALIDATION", errResp.Code)
	assert.Contains(t, errResp.Details, "items[0].requestedQuantity")

	resp, raw = f.call(t, http.MethodPost, "/api/auth/register", "", map[string]any{"email": "no-es-email", "password": "x"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp = decode[dto.ErrorResponse](t, raw)
	assert.Contains(t, errResp.Details, "email")
	assert.Contains(t, errResp.Details, "password")
}

func TestAPI_CheckoutIdempotente(t *testing.T) {
	f := newAPI(t)
	resp, raw := f.call(t, http.MethodPost, "/api/cart/", f.buyer, map[string]any{
		"productId": f.prod.ID, "branchId": f.branch.ID, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	checkout := map[string]any{"branchId": f.branch.ID, "address": "Calle 1"}
	resp, first := f.call(t, http.MethodPost, "/api/orders/", f.buyer, checkout, apphttp.HeaderIdempotencyKey, "k-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(first))

	resp, second := f.call(t, http.MethodPost, "/api/orders/", f.buyer, checkout, apphttp.HeaderIdempotencyKey, "k-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("Idempotent-Replay"))
	assert.JSONEq(t, string(first), string(second))
	assert.Equal(t, 3, f.store.LineQuantity(f.branch.ID, f.prod.ID), "el reintento no descuenta otra vez")

	// Misma llave, otro cuerpo.
	resp, _ = f.call(t, http.MethodPost, "/api/orders/", f.buyer, map[string]any{"branchId": f.branch.ID, "address": "Otra"},
		apphttp.HeaderIdempotencyKey, "k-1")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Sin llave: carrito vacío.
	resp, raw = f.call(t, http.MethodPost, "/api/orders/", f.buyer, checkout)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EMPTY_CART", decode[dto.ErrorResponse](t, raw).Code)
}

func TestAPI_RegistroYLogin(t *testing.T) {
	f := newAPI(t)
	resp, raw := f.call(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Ana", "email": "ana@example.com", "password": "secreto123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, _ = f.call(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Ana", "email": "ANA@example.com", "password": "secreto123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, raw = f.call(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ana@example.com", "password": "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, raw)
	assert.NotEmpty(t, login.Token)

	resp, raw = f.call(t, http.MethodGet, "/api/users/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.RoleUser, decode[dto.UserResponse](t, raw).Role)

	resp, _ = f.call(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ana@example.com", "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_Metrics(t *testing.T) {
	f := newAPI(t)
	f.call(t, http.MethodGet, "/api/products/", "", nil)

	resp, raw := f.call(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "http_request_duration_seconds")
}

func TestAPI_IDsMalformados(t *testing.T) {
	f := newAPI(t)

	resp, raw := f.call(t, http.MethodGet, "/api/stock/abc", f.admin, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
	assert.Equal(t, "INVALID_ID", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = f.call(t, http.MethodPost, "/api/stock/abc/deliver", f.admin, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", decode[dto.ErrorResponse](t, raw).Code)

	resp, _ = f.call(t, http.MethodGet, "/api/stock/all?branchId=abc", f.admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = f.call(t, http.MethodGet, "/api/branch/movements?productId=abc", f.admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw = f.call(t, http.MethodPost, "/api/stock/create", f.agent, map[string]any{
		"branchId": "abc",
		"items":    []map[string]any{{"productId": "xyz", "requestedQuantity": 1}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "VALIDATION", errResp.Code)
	assert.Equal(t, "uuid", errResp.Details["branchId"])
	assert.Equal(t, "uuid", errResp.Details["items[0].productId"])

	// UUID bien formado pero inexistente: 404.
	resp, raw = f.call(t, http.MethodGet, "/api/stock/"+uuid.NewString(), f.admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(raw))
}

func TestAPI_CambioDeContrasena(t *testing.T) {
	f := newAPI(t)
	resp, raw := f.call(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Ana", "email": "ana@example.com", "password": "secreto123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	_, raw = f.call(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ana@example.com", "password": "secreto123"})
	token := "Bearer " + decode[dto.LoginResponse](t, raw).Token

	resp, _ = f.call(t, http.MethodPost, "/api/auth/change-password", "", map[string]any{
		"currentPassword": "secreto123", "newPassword": "nuevaclave1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, raw = f.call(t, http.MethodPost, "/api/auth/change-password", token, map[string]any{
		"currentPassword": "incorrecta", "newPassword": "nuevaclave1",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "WRONG_PASSWORD", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = f.call(t, http.MethodPost, "/api/auth/change-password", token, map[string]any{
		"currentPassword": "secreto123", "newPassword": "secreto123",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "nefield", decode[dto.ErrorResponse](t, raw).Details["newPassword"])

	resp, _ = f.call(t, http.MethodPost, "/api/auth/change-password", token, map[string]any{
		"currentPassword": "secreto123", "newPassword": "nuevaclave1",
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = f.call(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ana@example.com", "password": "nuevaclave1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_PersonalYCuentas(t *testing.T) {
	f := newAPI(t)

	resp, raw := f.call(t, http.MethodPost, "/api/users/reps", f.admin, map[string]any{
		"name": "Marta", "email": "marta@example.com", "password": "repclave1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	rep := decode[dto.UserResponse](t, raw)
	assert.Equal(t, entity.RoleRep, rep.Role)

	resp, _ = f.call(t, http.MethodPost, "/api/users/agents", f.agent, map[string]any{
		"name": "X", "email": "x@example.com", "password": "clave1234",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Un representante no se edita por la ruta de agentes.
	resp, _ = f.call(t, http.MethodPut, "/api/users/agents/"+rep.ID, f.admin, map[string]any{"name": "Otra"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = f.call(t, http.MethodPut, "/api/users/reps/"+rep.ID, f.admin, map[string]any{"phoneNumber": "311"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "311", decode[dto.UserResponse](t, raw).PhoneNumber)

	resp, _ = f.call(t, http.MethodDelete, "/api/users/reps/"+rep.ID, f.admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = f.call(t, http.MethodGet, "/api/users/"+rep.ID, f.admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Con historial de solicitudes la cuenta no se puede borrar.
	_, raw = f.call(t, http.MethodPost, "/api/stock/create", f.agent, map[string]any{
		"branchId": f.branch.ID,
		"items":    []map[string]any{{"productId": f.prod.ID, "requestedQuantity": 1}},
	})
	req := decode[dto.StockRequestResponse](t, raw)
	resp, raw = f.call(t, http.MethodDelete, "/api/users/"+req.CreatedByID, f.admin, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode, string(raw))

	resp, _ = f.call(t, http.MethodDelete, "/api/users/abc", f.admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_Direcciones(t *testing.T) {
	f := newAPI(t)

	resp, raw := f.call(t, http.MethodPost, "/api/users/me/addresses", f.buyer, map[string]any{
		"lineOne": "Cra 5 # 10-20", "pinCode": "110111", "city": "Bogotá", "country": "CO",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	addr := decode[dto.AddressResponse](t, raw)

	resp, raw = f.call(t, http.MethodPost, "/api/users/me/addresses", f.buyer, map[string]any{"lineOne": "Cll 1"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "required", decode[dto.ErrorResponse](t, raw).Details["pinCode"])

	resp, raw = f.call(t, http.MethodGet, "/api/users/me/addresses", f.buyer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.AddressResponse](t, raw), 1)

	resp, _ = f.call(t, http.MethodDelete, "/api/users/me/addresses/"+addr.ID, f.agent, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = f.call(t, http.MethodDelete, "/api/users/me/addresses/"+addr.ID, f.buyer, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAPI_EstadoDeLlamada(t *testing.T) {
	f := newAPI(t)
	resp, raw := f.call(t, http.MethodPost, "/api/calls/", f.agent, map[string]any{
		"agentName": "Luis", "callerName": "Ana", "callerNumber": "300",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	ev := decode[dto.CallEventResponse](t, raw)

	resp, raw = f.call(t, http.MethodPut, "/api/calls/"+ev.ID+"/status", f.agent, map[string]any{"callStatus": "CERRADA"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "CERRADA", decode[dto.CallEventResponse](t, raw).CallStatus)

	resp, _ = f.call(t, http.MethodPut, "/api/calls/"+ev.ID+"/status", f.agent, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type stubPosts struct {
	posts []dto.SocialPost
	err   error
}

func (s stubPosts) Posts(context.Context) ([]dto.SocialPost, error) { return s.posts, s.err }

func TestAPI_PublicacionesDeFacebook(t *testing.T) {
	f := newAPI(t)
	resp, raw := f.call(t, http.MethodGet, "/api/facebook/posts", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "UNAVAILABLE", decode[dto.ErrorResponse](t, raw).Code)

	f = newAPI(t, func(d *apphttp.RouterDeps) {
		d.PostsUC = usecase.NewPostsUseCase(stubPosts{posts: []dto.SocialPost{{ID: "1_2", Message: "Nuevo pegante"}}})
	})
	resp, raw = f.call(t, http.MethodGet, "/api/facebook/posts", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	posts := decode[[]dto.SocialPost](t, raw)
	require.Len(t, posts, 1)
	assert.Equal(t, "Nuevo pegante", posts[0].Message)

	f = newAPI(t, func(d *apphttp.RouterDeps) {
		d.PostsUC = usecase.NewPostsUseCase(stubPosts{err: errors.New("facebook: HTTP 400")})
	})
	resp, _ = f.call(t, http.MethodGet, "/api/facebook/posts", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
