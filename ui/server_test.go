package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootstrapstats/app"
	"bootstrapstats/internal"
	"bootstrapstats/internal/estimator"
	"bootstrapstats/internal/testkit"
)

func newTestService() *app.AnalysisService {
	engine := estimator.NewEngine(testkit.NewTestKit().RNGAdapter(), estimator.WithReplicates(200))
	return app.NewAnalysisService(engine, 2, time.Second, internal.NewLogger(internal.LogLevelError))
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s, err := NewServer(newTestService(), Files(), internal.NewLogger(internal.LogLevelError))
	require.NoError(t, err)
	return s.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// apiContract runs the same checks against either router
func apiContract(t *testing.T, h http.Handler) {
	t.Run("list exercises", func(t *testing.T) {
		rec, out := doJSON(t, h, http.MethodGet, "/api/exercises", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, out["exercises"], 10)
	})

	t.Run("mean difference", func(t *testing.T) {
		rec, out := doJSON(t, h, http.MethodPost, "/api/analyses/2",
			`{"primary":[1,1,1],"secondary":[5,5,5],"seed":42}`)
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, float64(2), out["analysis"])
		assert.Equal(t, -4.0, out["estimate"])
		assert.Equal(t, true, out["significant"])
		assert.Equal(t, float64(42), out["seed"])
		assert.NotEmpty(t, out["run_id"])

		fields := out["fields"].([]interface{})
		first := fields[0].(map[string]interface{})
		assert.Equal(t, "original_diff", first["name"])
		assert.Len(t, out["preview"], 50)
	})

	t.Run("length mismatch", func(t *testing.T) {
		rec, out := doJSON(t, h, http.MethodPost, "/api/analyses/4",
			`{"primary":[1,2,3],"secondary":[1,2]}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "LENGTH_MISMATCH", out["error"].(map[string]interface{})["code"])
	})

	t.Run("overflowing sample", func(t *testing.T) {
		rec, out := doJSON(t, h, http.MethodPost, "/api/analyses/1", `{"primary":[1e308,1e308,1e308],"seed":1}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "INVALID_INPUT", out["error"].(map[string]interface{})["code"])
	})

	t.Run("unimplemented", func(t *testing.T) {
		rec, out := doJSON(t, h, http.MethodPost, "/api/analyses/8", `{"primary":[1],"secondary":[0]}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "UNSUPPORTED_ANALYSIS", out["error"].(map[string]interface{})["code"])
	})

	t.Run("bad body", func(t *testing.T) {
		rec, out := doJSON(t, h, http.MethodPost, "/api/analyses/1", `{"primary":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_INPUT", out["error"].(map[string]interface{})["code"])
	})
}

// pageContract checks the HTML pages against either router
func pageContract(t *testing.T, h http.Handler) {
	t.Run("index", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Mean Estimation")
		assert.Contains(t, rec.Body.String(), "</html>")
	})

	t.Run("exercise form renders markdown", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/exercises/1", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<strong>mean</strong>")
		assert.NotContains(t, rec.Body.String(), `name="data2"`)
	})

	t.Run("unknown exercise", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/exercises/99", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "UNSUPPORTED_ANALYSIS")
	})

	t.Run("submit", func(t *testing.T) {
		rec := postForm(h, "/exercises/1", url.Values{"data1": {"1, 2, x, 3, 4, 5"}, "seed": {"7"}})
		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "original_mean")
		assert.Contains(t, body, "ci95")
		assert.Contains(t, body, `value="1, 2, x, 3, 4, 5"`)
	})

	t.Run("submit missing second sample", func(t *testing.T) {
		rec := postForm(h, "/exercises/2", url.Values{"data1": {"1,2,3"}})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "MISSING_INPUT")
	})

	t.Run("static", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestServer_API(t *testing.T) {
	apiContract(t, newTestServer(t))
}

func TestServer_Pages(t *testing.T) {
	pageContract(t, newTestServer(t))
}

func TestRenderMarkdown(t *testing.T) {
	out := string(renderMarkdown("Uses `mean(A)` and **bold**"))
	assert.Contains(t, out, "<code>mean(A)</code>")
	assert.Contains(t, out, "<strong>bold</strong>")
}
