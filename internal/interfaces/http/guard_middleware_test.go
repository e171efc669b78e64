package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Conecta-api/internal/application/dto"
	"github.com/jhoicas/Conecta-api/internal/application/navigation"
	"github.com/jhoicas/Conecta-api/internal/application/session"
	apphttp "github.com/jhoicas/Conecta-api/internal/interfaces/http"
	"github.com/jhoicas/Conecta-api/pkg/config"
	"github.com/jhoicas/Conecta-api/pkg/logger"
	pkgtoken "github.com/jhoicas/Conecta-api/pkg/token"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "conecta-test"
	testExpMin = 60
)

type testEnv struct {
	app   *fiber.App
	store *session.Store
}

// buildTestApp construye la aplicación Fiber completa con el router real:
// guard, sesión, perfil y dashboard.
func buildTestApp(t *testing.T) testEnv {
	t.Helper()
	store := session.NewStore(logger.Nop())
	viewRouter := navigation.NewRouter(store)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Store:      store,
		ViewRouter: viewRouter,
		SessionCfg: config.SessionConfig{Secret: testSecret, Expiration: testExpMin, Issuer: testIssuer},
		AvatarCfg:  config.AvatarConfig{MaxBytes: 1024 * 1024},
		Log:        logger.Nop(),
	})
	return testEnv{app: app, store: store}
}

// loginAs inicia sesión vía HTTP y devuelve el token de sesión.
func loginAs(t *testing.T, env testEnv, role string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"role": role})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "login como %s debe funcionar", role)

	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

// doGet lanza un GET con (opcionalmente) el token de sesión como Bearer.
func doGet(t *testing.T, env testEnv, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// doUpload lanza un PUT multipart con un único archivo bajo el nombre de
// campo indicado.
func doUpload(t *testing.T, env testEnv, path, token, field string, content []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, "avatar.png")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPut, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// currentAvatar consulta /api/me y devuelve el avatar de la cuenta.
func currentAvatar(t *testing.T, env testEnv, token string) string {
	t.Helper()
	resp := doGet(t, env, "/api/me", token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var acc dto.AccountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&acc))
	return acc.Avatar
}

func doJSON(t *testing.T, env testEnv, method, path, token string, payload interface{}) *http.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Guard — redirecciones
// ──────────────────────────────────────────────────────────────────────────────

// Sin sesión: 302 a sign-in llevando la ruta original como parámetro de
// retorno.
func TestGuard_SinSesion_RedirigeASignIn(t *testing.T) {
	env := buildTestApp(t)

	resp := doGet(t, env, "/api/manufacturer/panel", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth", loc.Path)
	assert.Equal(t, "signin", loc.Query().Get("type"))
	assert.Equal(t, "/api/manufacturer/panel", loc.Query().Get("redirect"),
		"la ruta original debe viajar en el parámetro de retorno")
}

// Rol ajeno: brand pidiendo el panel de manufacturer vuelve a su dashboard,
// sin página de error.
func TestGuard_RolAjeno_RedirigeADashboard(t *testing.T) {
	env := buildTestApp(t)
	tok := loginAs(t, env, "brand")

	resp := doGet(t, env, "/api/manufacturer/panel", tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

// Rol permitido: 200 y el rol disponible en el contexto.
func TestGuard_RolPermitido_Accede(t *testing.T) {
	env := buildTestApp(t)
	tok := loginAs(t, env, "manufacturer")

	resp := doGet(t, env, "/api/manufacturer/panel", tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "manufacturer", body["role"])
}

// Un token de una sesión anterior no abre la sesión actual: tras un nuevo
// login el token viejo se trata como no autenticado.
func TestGuard_TokenDeSesionAnterior_Invalido(t *testing.T) {
	env := buildTestApp(t)
	oldTok := loginAs(t, env, "retailer")
	_ = loginAs(t, env, "retailer") // nueva sesión, nueva cuenta

	resp := doGet(t, env, "/api/retailer/panel", oldTok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/auth?type=signin")
}

// Token firmado con otro secret → no autenticado.
func TestGuard_TokenFirmaIncorrecta_Invalido(t *testing.T) {
	env := buildTestApp(t)
	_ = loginAs(t, env, "brand")

	forged, err := pkgtoken.Generate("otro-secret", env.store.Snapshot().AccountID, "brand", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doGet(t, env, "/api/brand/panel", forged)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

// Escenario completo de retorno: petición protegida sin sesión → sign-in
// con redirect → login → la ruta original responde y la vista se puede
// seleccionar.
func TestGuard_EscenarioRetornoCompleto(t *testing.T) {
	env := buildTestApp(t)

	resp := doGet(t, env, "/api/manufacturer/panel", "")
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	returnPath := loc.Query().Get("redirect")
	require.Equal(t, "/api/manufacturer/panel", returnPath)

	tok := loginAs(t, env, "manufacturer")

	resp = doGet(t, env, returnPath, tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "tras sign-in la navegación retoma la ruta original")

	// El dashboard arranca en overview y acepta la selección de inventory.
	vr := doJSON(t, env, http.MethodPut, "/api/dashboard/view", tok, dto.SetViewRequest{View: "inventory"})
	defer vr.Body.Close()
	require.Equal(t, http.StatusOK, vr.StatusCode)
	var view dto.ViewResponse
	require.NoError(t, json.NewDecoder(vr.Body).Decode(&view))
	assert.Equal(t, "inventory", view.ActiveView)
}

// Logout vía HTTP es idempotente y cierra el acceso.
func TestLogout_IdempotenteYCierraAcceso(t *testing.T) {
	env := buildTestApp(t)
	tok := loginAs(t, env, "brand")

	for i := 0; i < 2; i++ {
		resp := doJSON(t, env, http.MethodPost, "/api/auth/logout", tok, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}

	resp := doGet(t, env, "/api/me", tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfil vía HTTP
// ──────────────────────────────────────────────────────────────────────────────

// Capacidad negativa en el formulario: 422 con error por campo y sesión
// intacta.
func TestSubmitForm_CapacidadNegativa_422(t *testing.T) {
	env := buildTestApp(t)
	tok := loginAs(t, env, "manufacturer")

	resp := doJSON(t, env, http.MethodPost, "/api/profile/form", tok,
		map[string]string{"production_capacity": "-5"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var out dto.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out.Fields, "production_capacity")

	// La sesión no cambió.
	me := doGet(t, env, "/api/me", tok)
	defer me.Body.Close()
	var acc dto.AccountResponse
	require.NoError(t, json.NewDecoder(me.Body).Decode(&acc))
	raw, _ := json.Marshal(acc.Settings)
	assert.True(t, strings.Contains(string(raw), `"production_capacity":0`),
		"las settings deben conservar el valor por defecto")
}

// Settings con variante de otro rol declarada: 409 SETTINGS_MISMATCH.
func TestUpdateSettings_VarianteAjena_409(t *testing.T) {
	env := buildTestApp(t)
	tok := loginAs(t, env, "brand")

	resp := doJSON(t, env, http.MethodPut, "/api/profile/settings", tok,
		map[string]interface{}{"role": "retailer", "store_locations": 3})
	defer resp.Body.Close()

	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "SETTINGS_MISMATCH", out.Code)
}

// Formulario válido: el cambio se refleja en la cuenta.
func TestSubmitForm_Valido_ActualizaCuenta(t *testing.T) {
	env := buildTestApp(t)
	tok := loginAs(t, env, "brand")

	resp := doJSON(t, env, http.MethodPost, "/api/profile/form", tok, map[string]string{
		"name":            "Laura Díaz",
		"market_segments": "Premium,  Eco ,,Masivo",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var acc dto.AccountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&acc))
	assert.Equal(t, "Laura Díaz", acc.Name)
	raw, _ := json.Marshal(acc.Settings)
	assert.Contains(t, string(raw), `"market_segments":["Premium","Eco","Masivo"]`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Avatar vía HTTP
// ──────────────────────────────────────────────────────────────────────────────

// Subida correcta: la referencia queda almacenada como data URI.
func TestUpdateAvatar_Subida_GuardaDataURI(t *testing.T) {
	env := buildTestApp(t)
	tok := loginAs(t, env, "retailer")

	resp := doUpload(t, env, "/api/profile/avatar", tok, "file",
		[]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var acc dto.AccountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&acc))
	assert.True(t, strings.HasPrefix(acc.Avatar, "data:"),
		"el avatar debe almacenarse como data URI")
	assert.Contains(t, acc.Avatar, ";base64,")
}

// Petición sin el campo 'file': 400 y el avatar anterior queda intacto.
func TestUpdateAvatar_SinCampoFile_AvatarIntacto(t *testing.T) {
	env := buildTestApp(t)
	tok := loginAs(t, env, "brand")

	ok := doUpload(t, env, "/api/profile/avatar", tok, "file", []byte("primera imagen"))
	ok.Body.Close()
	require.Equal(t, http.StatusOK, ok.StatusCode)
	prev := currentAvatar(t, env, tok)
	require.NotEmpty(t, prev)

	resp := doUpload(t, env, "/api/profile/avatar", tok, "imagen", []byte("otra"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "INVALID_FILE", out.Code)
	assert.Equal(t, prev, currentAvatar(t, env, tok),
		"una subida fallida no debe dejar estado parcial")
}

// Archivo por encima del máximo configurado: 400 y sin cambio de avatar.
func TestUpdateAvatar_ArchivoDemasiadoGrande_AvatarIntacto(t *testing.T) {
	env := buildTestApp(t)
	tok := loginAs(t, env, "manufacturer")
	prev := currentAvatar(t, env, tok)

	// MaxBytes del entorno de test es 1 MiB.
	big := bytes.Repeat([]byte{0xab}, 1024*1024+1)
	resp := doUpload(t, env, "/api/profile/avatar", tok, "file", big)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "FILE_TOO_LARGE", out.Code)
	assert.Equal(t, prev, currentAvatar(t, env, tok))
}

// ──────────────────────────────────────────────────────────────────────────────
// Token pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestToken_GenerateAndParse(t *testing.T) {
	tok, err := pkgtoken.Generate(testSecret, "acc-9", "retailer", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	accountID, role, err := pkgtoken.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "acc-9", accountID)
	assert.Equal(t, "retailer", role)
}

func TestToken_Expirado_RetornaError(t *testing.T) {
	// Expiración -1 minuto (ya expirado)
	tok, err := pkgtoken.Generate(testSecret, "acc-9", "brand", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgtoken.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestToken_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgtoken.Generate(testSecret, "acc-9", "brand", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgtoken.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
