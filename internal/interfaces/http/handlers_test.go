package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/partkeep-api/internal/application/catalog"
	"github.com/jhoicas/partkeep-api/internal/application/dto"
	"github.com/jhoicas/partkeep-api/internal/application/ledger"
	"github.com/jhoicas/partkeep-api/internal/domain/entity"
	"github.com/jhoicas/partkeep-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/partkeep-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app    *fiber.App
	ledger *ledger.Ledger
}

// buildTestApp construye la aplicación Fiber completa sobre un almacén en memoria.
func buildTestApp(t *testing.T) *testEnv {
	t.Helper()
	repo := memory.NewPartRepository()
	index := catalog.NewIndex()
	l := ledger.NewLedger(repo)
	l.SetChangeHook(index.Rebuild)
	require.NoError(t, l.Hydrate(context.Background()))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Ledger: l, Catalog: index})
	return &testEnv{app: app, ledger: l}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createTestPart(t *testing.T, e *testEnv) dto.PartResponse {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/parts", dto.CreatePartRequest{
		Name: "Rodamiento 6204", PartNumber: "BRG-6204", Category: "Rodamientos",
		Supplier: "SKF", Location: "A1-03", Quantity: 10, MinStock: 5, MaxStock: 20,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.PartResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Parts
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePart_Responde201(t *testing.T) {
	e := buildTestApp(t)
	part := createTestPart(t, e)
	assert.NotEmpty(t, part.ID)
	assert.Equal(t, 10, part.Quantity)
	assert.Equal(t, entity.StatusOK, part.Status)
}

func TestCreatePart_ValidacionResponde400(t *testing.T) {
	e := buildTestApp(t)
	resp := e.do(t, http.MethodPost, "/api/parts", dto.CreatePartRequest{Name: "Sin número"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
}

func TestListParts_BusquedaYFacetas(t *testing.T) {
	e := buildTestApp(t)
	createTestPart(t, e)
	resp := e.do(t, http.MethodPost, "/api/parts", dto.CreatePartRequest{
		Name: "Correa B-52", PartNumber: "BLT-B52", Category: "Transmisión",
		Supplier: "Gates", Location: "B2-01",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	list := decode[dto.PartListResponse](t, e.do(t, http.MethodGet, "/api/parts?q=rodamiento", nil))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "BRG-6204", list.Items[0].PartNumber)

	list = decode[dto.PartListResponse](t, e.do(t, http.MethodGet, "/api/parts?supplier=Gates&category=all", nil))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Correa B-52", list.Items[0].Name)
}

func TestUpdatePart_DesconocidoResponde404(t *testing.T) {
	e := buildTestApp(t)
	name := "Nuevo nombre"
	resp := e.do(t, http.MethodPut, "/api/parts/no-existe", dto.UpdatePartRequest{Name: &name})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_SalidaSinStockResponde409(t *testing.T) {
	e := buildTestApp(t)
	part := createTestPart(t, e)

	resp := e.do(t, http.MethodPost, "/api/parts/"+part.ID+"/movements", dto.RegisterMovementRequest{
		QuantityChange: -11, Type: entity.MovementTypeOut,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)

	// sin efecto alguno
	after := decode[dto.PartResponse](t, e.do(t, http.MethodGet, "/api/parts/"+part.ID, nil))
	assert.Equal(t, 10, after.Quantity)
	assert.Empty(t, after.History)
}

func TestRegisterMovement_EntradaActualizaCantidad(t *testing.T) {
	e := buildTestApp(t)
	part := createTestPart(t, e)

	resp := e.do(t, http.MethodPost, "/api/parts/"+part.ID+"/movements", dto.RegisterMovementRequest{
		QuantityChange: 15, Type: entity.MovementTypeIn,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decode[dto.PartResponse](t, resp)
	assert.Equal(t, 25, got.Quantity)
	assert.Equal(t, entity.StatusOverstock, got.Status)
}

func TestStockOpname_SinDiferenciaRespondeNoAplicado(t *testing.T) {
	e := buildTestApp(t)
	part := createTestPart(t, e)

	resp := e.do(t, http.MethodPost, "/api/parts/"+part.ID+"/opname", dto.StockOpnameRequest{CountedQuantity: 10})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decode[dto.StockOpnameResponse](t, resp)
	assert.False(t, got.Applied)
	assert.Equal(t, 10, got.Part.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes, importación y exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestReportMovements_VentanaDeFechas(t *testing.T) {
	e := buildTestApp(t)
	part := createTestPart(t, e)

	when := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	resp := e.do(t, http.MethodPost, "/api/parts/"+part.ID+"/movements", dto.RegisterMovementRequest{
		QuantityChange: 5, Type: entity.MovementTypeIn, Date: &when,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = e.do(t, http.MethodGet, "/api/reports/movements?start=2026-03-01&end=2026-03-31", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	rows := decode[[]map[string]any](t, resp)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(5), rows[0]["stockIn"])

	// ventana sin actividad: reporte vacío
	resp = e.do(t, http.MethodGet, "/api/reports/movements?start=2026-04-01&end=2026-04-30", nil)
	rows = decode[[]map[string]any](t, resp)
	assert.Empty(t, rows)
}

func TestReportMovements_ParametrosInvalidos(t *testing.T) {
	e := buildTestApp(t)
	resp := e.do(t, http.MethodGet, "/api/reports/movements?start=2026-03-01", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = e.do(t, http.MethodGet, "/api/reports/movements?start=2026-03-31&end=2026-03-01", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFacets_IncluyeCentinela(t *testing.T) {
	e := buildTestApp(t)
	createTestPart(t, e)

	got := decode[dto.FacetsResponse](t, e.do(t, http.MethodGet, "/api/catalog/facets", nil))
	assert.Equal(t, []string{"all", "SKF"}, got.Suppliers)
	assert.Equal(t, []string{"all", "Rodamientos"}, got.Categories)
}

func TestImportParts_ReportaImportadasYSaltadas(t *testing.T) {
	e := buildTestApp(t)
	records := []dto.ImportRecord{
		{Name: "Filtro", PartNumber: "FLT-01", Category: "Filtros", Supplier: "Mann", Location: "C1", Quantity: "7"},
		{Name: "", PartNumber: "FLT-02"},
	}
	resp := e.do(t, http.MethodPost, "/api/imports/parts", records)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decode[dto.ImportResultResponse](t, resp)
	assert.Equal(t, 1, got.Imported)
	assert.Equal(t, 1, got.Skipped)
}

func TestExportStatus_DevuelveCSV(t *testing.T) {
	e := buildTestApp(t)
	createTestPart(t, e)

	resp := e.do(t, http.MethodGet, "/api/exports/status", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), fmt.Sprintf("part-status-export-%s.csv", time.Now().Format("2006-01-02")))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Quantity to Order")
	assert.Contains(t, lines[1], "BRG-6204")
}

func TestExportReport_VentanaDevuelveCSV(t *testing.T) {
	e := buildTestApp(t)
	part := createTestPart(t, e)

	when := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	resp := e.do(t, http.MethodPost, "/api/parts/"+part.ID+"/movements", dto.RegisterMovementRequest{
		QuantityChange: -3, Type: entity.MovementTypeOut, Date: &when,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = e.do(t, http.MethodGet, "/api/exports/report?start=2026-03-01&end=2026-03-31", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), fmt.Sprintf("stock-report-%s.csv", time.Now().Format("2006-01-02")))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Stock Out")
	assert.Contains(t, lines[1], "BRG-6204,0,3,0,7")

	// ventana sin actividad: solo el encabezado
	resp = e.do(t, http.MethodGet, "/api/exports/report?start=2026-04-01&end=2026-04-30", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(raw)), "\n"), 1)

	resp = e.do(t, http.MethodGet, "/api/exports/report?start=2026-03-01", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
