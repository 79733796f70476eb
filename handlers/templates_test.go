package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tngo0508/simple-crud-api/internal/templates"
)

func newTemplateRouter(defaults []templates.Template) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	svc := templates.NewService(templates.NewMemoryRepository(defaults))
	RegisterTemplateRoutes(g.Group("/api"), svc)
	return g
}

func TestGetAllTemplatesSeedsDefaults(t *testing.T) {
	g := newTemplateRouter([]templates.Template{
		{"templateName": "standard", "material": "steel"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/12/getAllTemplates", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var set map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &set))
	assert.Equal(t, float64(12), set["userId"])
	tpls, ok := set["templates"].([]interface{})
	require.True(t, ok)
	require.Len(t, tpls, 1)

	// second call returns the same set, not a second seed
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/api/12/getAllTemplates", nil)
	g.ServeHTTP(w2, req2)
	require.Equal(t, http.StatusOK, w2.Code)
	var set2 map[string]interface{}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &set2))
	assert.Equal(t, set["id"], set2["id"])
}

func TestGetAllTemplatesRejectsBadUserID(t *testing.T) {
	g := newTemplateRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/abc/getAllTemplates", nil)
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveTemplateAppends(t *testing.T) {
	g := newTemplateRouter(nil)

	w := postJSON(g, http.MethodPost, "/api/saveTemplate", `{"userId":3,"saveTemplate":{"templateName":"custom","rate":4.5}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "save template successfully")

	// the template is retrievable afterwards
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/3/getTemplate?templateName=custom", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp["templates"], 1)
	assert.Equal(t, "custom", resp["templates"][0]["templateName"])
	assert.Equal(t, 4.5, resp["templates"][0]["rate"])
}

func TestSaveTemplateValidation(t *testing.T) {
	g := newTemplateRouter(nil)

	// missing userId
	w := postJSON(g, http.MethodPost, "/api/saveTemplate", `{"saveTemplate":{"templateName":"x"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// template without a templateName
	w = postJSON(g, http.MethodPost, "/api/saveTemplate", `{"userId":1,"saveTemplate":{"material":"steel"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTemplateByName(t *testing.T) {
	g := newTemplateRouter([]templates.Template{
		{"templateName": "Foo", "k": "v"},
	})

	// seed via first access
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/9/getAllTemplates", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// exact match found
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/9/getTemplate?templateName=Foo", nil)
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// case-sensitive: "foo" != "Foo"
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/9/getTemplate?templateName=foo", nil)
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// unknown user gets the same uniform not-found
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/777/getTemplate?templateName=Foo", nil)
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// missing query parameter
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/9/getTemplate", nil)
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
