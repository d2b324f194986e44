package routers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"healthtrack/config"
	"healthtrack/database/dbtest"
	"healthtrack/middleware"
	"healthtrack/routers"
	"healthtrack/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, mutate ...func(*config.Config)) *fiber.App {
	t.Helper()
	cfg := &config.Config{APIPrefix: "/api", BulkConcurrency: 4, JWTKey: "test-secret"}
	for _, m := range mutate {
		m(cfg)
	}

	store := dbtest.NewStore(t)
	return routers.NewApp(cfg, zap.NewNop(), routers.Services{
		Programs:    services.NewProgramService(store),
		Clients:     services.NewClientService(store),
		Enrollments: services.NewEnrollmentService(store, cfg.BulkConcurrency),
		Stats:       services.NewStatsService(store),
	})
}

type response struct {
	status int
	body   []byte
}

func (r response) decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, v), string(r.body))
}

func (r response) object(t *testing.T) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	r.decode(t, &m)
	return m
}

func (r response) array(t *testing.T) []map[string]interface{} {
	t.Helper()
	var a []map[string]interface{}
	r.decode(t, &a)
	return a
}

func call(t *testing.T, app *fiber.App, method, path string, body interface{}, headers ...string) response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, body: raw}
}

func id(t *testing.T, obj map[string]interface{}) int {
	t.Helper()
	v, ok := obj["id"].(float64)
	require.True(t, ok, "id missing in %v", obj)
	return int(v)
}

func TestEnrollmentLifecycleScenario(t *testing.T) {
	app := newTestApp(t)

	res := call(t, app, http.MethodPost, "/api/clients", map[string]interface{}{
		"name": "Jane", "age": 30, "gender": "Female", "phone": "555", "address": "1 Main St",
	})
	require.Equal(t, http.StatusCreated, res.status, string(res.body))
	client := res.object(t)
	assert.Equal(t, "jane", client["name"])
	clientID := id(t, client)

	res = call(t, app, http.MethodGet, "/api/clients/search?name=jan", nil)
	require.Equal(t, http.StatusOK, res.status)
	found := res.array(t)
	require.Len(t, found, 1)
	assert.Equal(t, clientID, id(t, found[0]))

	res = call(t, app, http.MethodPost, "/api/programs", map[string]interface{}{"name": "TB Control"})
	require.Equal(t, http.StatusCreated, res.status, string(res.body))
	programID := id(t, res.object(t))

	res = call(t, app, http.MethodPost, "/api/enrollments", map[string]interface{}{"clientId": clientID, "programId": programID})
	require.Equal(t, http.StatusCreated, res.status, string(res.body))
	enrollment := res.object(t)
	enrollmentID := id(t, enrollment)
	assert.Equal(t, "jane", enrollment["client"].(map[string]interface{})["name"])
	assert.Equal(t, "TB Control", enrollment["program"].(map[string]interface{})["name"])

	res = call(t, app, http.MethodDelete, fmt.Sprintf("/api/programs/%d", programID), nil)
	require.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, map[string]interface{}{
		"error": "Cannot delete program with active enrollments",
		"count": float64(1),
	}, res.object(t))

	res = call(t, app, http.MethodDelete, fmt.Sprintf("/api/enrollments/%d", enrollmentID), nil)
	require.Equal(t, http.StatusNoContent, res.status)
	assert.Empty(t, res.body)

	res = call(t, app, http.MethodDelete, fmt.Sprintf("/api/programs/%d", programID), nil)
	require.Equal(t, http.StatusNoContent, res.status)
}

func TestProgramRoutes(t *testing.T) {
	app := newTestApp(t)

	res := call(t, app, http.MethodPost, "/api/programs", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Program name is required", res.object(t)["error"])

	res = call(t, app, http.MethodPost, "/api/programs", map[string]interface{}{"name": "Malaria", "description": "nets"})
	require.Equal(t, http.StatusCreated, res.status)
	program := res.object(t)
	assert.Equal(t, "nets", program["description"])
	assert.Contains(t, program, "createdAt")
	assert.NotContains(t, program, "enrollments")
	pid := id(t, program)

	res = call(t, app, http.MethodPost, "/api/programs", map[string]interface{}{"name": "Malaria"})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "A program with this name already exists", res.object(t)["error"])

	res = call(t, app, http.MethodPut, fmt.Sprintf("/api/programs/%d", pid), map[string]interface{}{"name": "Malaria Care"})
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "Malaria Care", res.object(t)["name"])

	res = call(t, app, http.MethodPut, "/api/programs/999", map[string]interface{}{"name": "X"})
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "Program not found", res.object(t)["error"])

	res = call(t, app, http.MethodGet, fmt.Sprintf("/api/programs/%d", pid), nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, []interface{}{}, res.object(t)["enrollments"])

	res = call(t, app, http.MethodGet, "/api/programs/abc", nil)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Invalid Program ID", res.object(t)["error"])

	res = call(t, app, http.MethodGet, "/api/programs", nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Len(t, res.array(t), 1)

	res = call(t, app, http.MethodDelete, "/api/programs/999", nil)
	assert.Equal(t, http.StatusNotFound, res.status)
}

func TestClientRoutes(t *testing.T) {
	app := newTestApp(t)

	res := call(t, app, http.MethodGet, "/api/clients", nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "[]", string(res.body))

	res = call(t, app, http.MethodPost, "/api/clients", map[string]interface{}{
		"name": "John Doe", "age": "41", "gender": "Male", "phone": "0712", "address": "Nairobi",
	})
	require.Equal(t, http.StatusCreated, res.status, string(res.body))
	client := res.object(t)
	assert.Equal(t, "john doe", client["name"])
	assert.Equal(t, float64(41), client["age"])
	cid := id(t, client)

	res = call(t, app, http.MethodPost, "/api/clients", map[string]interface{}{"name": "No Age", "gender": "F", "phone": "1", "address": "x"})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Age is required", res.object(t)["error"])

	res = call(t, app, http.MethodPost, "/api/clients", `{"name": `)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Invalid request body", res.object(t)["error"])

	res = call(t, app, http.MethodGet, "/api/clients/search", nil)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Search term is required", res.object(t)["error"])

	res = call(t, app, http.MethodGet, "/api/clients/search?name=DOE", nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Len(t, res.array(t), 1)

	res = call(t, app, http.MethodPut, fmt.Sprintf("/api/clients/%d", cid), map[string]interface{}{
		"name": "John Kamau", "age": 42, "gender": "Male", "phone": "0712", "address": "Nakuru",
	})
	require.Equal(t, http.StatusOK, res.status, string(res.body))
	assert.Equal(t, "john kamau", res.object(t)["name"])

	res = call(t, app, http.MethodPut, "/api/clients/404", map[string]interface{}{
		"name": "Ghost", "age": 1, "gender": "x", "phone": "x", "address": "x",
	})
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "Client not found", res.object(t)["error"])

	res = call(t, app, http.MethodGet, fmt.Sprintf("/api/clients/%d", cid), nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, []interface{}{}, res.object(t)["enrollments"])

	res = call(t, app, http.MethodDelete, fmt.Sprintf("/api/clients/%d", cid), nil)
	assert.Equal(t, http.StatusNoContent, res.status)

	res = call(t, app, http.MethodGet, fmt.Sprintf("/api/clients/%d", cid), nil)
	assert.Equal(t, http.StatusNotFound, res.status)

	res = call(t, app, http.MethodDelete, fmt.Sprintf("/api/clients/%d", cid), nil)
	assert.Equal(t, http.StatusNotFound, res.status)
}

func TestClientDeleteCascades(t *testing.T) {
	app := newTestApp(t)

	res := call(t, app, http.MethodPost, "/api/clients", map[string]interface{}{
		"name": "Jane", "age": 30, "gender": "Female", "phone": "555", "address": "1 Main St",
	})
	cid := id(t, res.object(t))

	var programIDs []int
	for _, name := range []string{"A", "B", "C"} {
		res = call(t, app, http.MethodPost, "/api/programs", map[string]interface{}{"name": name})
		programIDs = append(programIDs, id(t, res.object(t)))
	}
	res = call(t, app, http.MethodPost, "/api/enrollments/bulk", map[string]interface{}{"clientId": cid, "programIds": programIDs})
	require.Equal(t, http.StatusCreated, res.status)
	assert.Len(t, res.array(t), 3)

	res = call(t, app, http.MethodDelete, fmt.Sprintf("/api/clients/%d", cid), nil)
	require.Equal(t, http.StatusNoContent, res.status)

	res = call(t, app, http.MethodGet, "/api/enrollments", nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Empty(t, res.array(t))
}

func TestEnrollmentRoutes(t *testing.T) {
	app := newTestApp(t)

	res := call(t, app, http.MethodPost, "/api/clients", map[string]interface{}{
		"name": "Jane", "age": 30, "gender": "Female", "phone": "555", "address": "1 Main St",
	})
	cid := id(t, res.object(t))
	res = call(t, app, http.MethodPost, "/api/programs", map[string]interface{}{"name": "P1"})
	p1 := id(t, res.object(t))
	res = call(t, app, http.MethodPost, "/api/programs", map[string]interface{}{"name": "P2"})
	p2 := id(t, res.object(t))

	res = call(t, app, http.MethodPost, "/api/enrollments", map[string]interface{}{"programId": p1})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Client ID is required", res.object(t)["error"])

	res = call(t, app, http.MethodPost, "/api/enrollments", map[string]interface{}{"clientId": 999, "programId": p1})
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "Client not found", res.object(t)["error"])

	res = call(t, app, http.MethodPost, "/api/enrollments", map[string]interface{}{"clientId": cid, "programId": 999})
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "Program not found", res.object(t)["error"])

	res = call(t, app, http.MethodPost, "/api/enrollments", map[string]interface{}{"clientId": fmt.Sprint(cid), "programId": p1})
	require.Equal(t, http.StatusCreated, res.status, string(res.body))

	res = call(t, app, http.MethodPost, "/api/enrollments", map[string]interface{}{"clientId": cid, "programId": p1})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Client is already enrolled in this program", res.object(t)["error"])

	// bulk: p1 is already taken, p2 is new, 999 does not exist
	res = call(t, app, http.MethodPost, "/api/enrollments/bulk", map[string]interface{}{"clientId": cid, "programIds": []interface{}{p1, p2, 999}})
	require.Equal(t, http.StatusCreated, res.status, string(res.body))
	created := res.array(t)
	require.Len(t, created, 1)
	assert.Equal(t, float64(p2), created[0]["programId"])
	assert.Equal(t, "P2", created[0]["program"].(map[string]interface{})["name"])
	assert.NotContains(t, created[0], "client")

	res = call(t, app, http.MethodPost, "/api/enrollments/bulk", map[string]interface{}{"clientId": cid, "programIds": []int{p1}})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Client is already enrolled in all specified programs", res.object(t)["error"])

	res = call(t, app, http.MethodPost, "/api/enrollments/bulk", map[string]interface{}{"clientId": cid, "programIds": "nope"})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Program IDs array is required", res.object(t)["error"])

	res = call(t, app, http.MethodPost, "/api/enrollments/bulk", map[string]interface{}{"clientId": 999, "programIds": []int{p1}})
	assert.Equal(t, http.StatusNotFound, res.status)

	res = call(t, app, http.MethodGet, "/api/enrollments", nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Len(t, res.array(t), 2)

	res = call(t, app, http.MethodDelete, fmt.Sprintf("/api/enrollments/client/%d/program/%d", cid, p2), nil)
	assert.Equal(t, http.StatusNoContent, res.status)

	res = call(t, app, http.MethodDelete, fmt.Sprintf("/api/enrollments/client/%d/program/%d", cid, p2), nil)
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "Enrollment not found", res.object(t)["error"])

	res = call(t, app, http.MethodDelete, "/api/enrollments/999", nil)
	assert.Equal(t, http.StatusNotFound, res.status)
}

func TestStatsAndHealth(t *testing.T) {
	app := newTestApp(t)

	res := call(t, app, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "HealthTrack API is running", res.object(t)["message"])

	call(t, app, http.MethodPost, "/api/programs", map[string]interface{}{"name": "P1"})
	res = call(t, app, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, res.status)
	stats := res.object(t)
	assert.Equal(t, float64(1), stats["programs"])
	assert.Equal(t, float64(0), stats["clients"])
}

func TestAuthGuard(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) { cfg.AuthEnabled = true })

	res := call(t, app, http.MethodGet, "/api/programs", nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "Missing or invalid Authorization header", res.object(t)["error"])

	res = call(t, app, http.MethodGet, "/api/programs", nil, "Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, res.status)

	token, err := middleware.GenerateJWT("test-secret", "admin", time.Hour)
	require.NoError(t, err)
	res = call(t, app, http.MethodGet, "/api/programs", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, res.status)

	expired, err := middleware.GenerateJWT("test-secret", "admin", -time.Hour)
	require.NoError(t, err)
	res = call(t, app, http.MethodGet, "/api/programs", nil, "Authorization", "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, res.status)

	// health check stays public
	res = call(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, res.status)
}
