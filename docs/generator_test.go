package docs

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/api-scaffold/config"
	"github.com/upb/api-scaffold/reply"
	"github.com/upb/api-scaffold/server"
	"github.com/upb/api-scaffold/templates"
	"github.com/upb/api-scaffold/utils"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"
)

type fakeHost struct {
	routes   []server.RouteInfo
	renderer *templates.Renderer
}

func (h *fakeHost) Routes() []server.RouteInfo { return h.routes }

func (h *fakeHost) View(name string, data interface{}) reply.Result {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, name, data); err != nil {
		return reply.Fail(err)
	}
	return reply.HTML(buf.Bytes())
}

func sampleRoutes() []server.RouteInfo {
	return []server.RouteInfo{
		{Method: "GET", Path: "/login", Description: "test route", Notes: "test route", Tags: []string{"api"}},
		{Method: "GET", Path: "/", Description: "test route", Notes: "test route", Tags: []string{"api"}},
		{
			Method:      "GET",
			Path:        "/test/{guid}",
			Strategy:    "jwt",
			Description: "test route",
			Notes:       "test route 1337",
			Tags:        []string{"api"},
			Params: []utils.ParamRule{
				{Name: "guid", Type: "number", Rules: "required,number", Description: "test guid"},
			},
		},
		{Method: "GET", Path: "/internal"},
	}
}

func newGenerator(t *testing.T) *Generator {
	t.Helper()
	return NewGenerator(DefaultOptions(config.Default().Docs), zaptest.NewLogger(t))
}

func TestGenerator_Build(t *testing.T) {
	doc := newGenerator(t).Build(sampleRoutes())

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "Test API Documentation", doc.Info.Title)
	assert.Equal(t, "This is a sample example of API documentation.", doc.Info.Description)
	assert.Equal(t, SecurityScheme{Type: "apiKey", Name: "Authorization", In: "header"}, doc.SecurityDefinitions["jwt"])

	require.Len(t, doc.Paths, 3)
	assert.NotContains(t, doc.Paths, "/internal")

	login := doc.Paths["/login"]["get"]
	require.NotNil(t, login)
	assert.Equal(t, "test route", login.Summary)
	assert.Empty(t, login.Security)
	assert.Equal(t, "getLogin", login.OperationID)

	test := doc.Paths["/test/{guid}"]["get"]
	require.NotNil(t, test)
	assert.Equal(t, "test route 1337", test.Description)
	assert.Equal(t, "getTestGuid", test.OperationID)
	assert.Equal(t, []string{"test"}, test.Tags)
	assert.Equal(t, []map[string][]string{{"jwt": {}}}, test.Security)
	require.Len(t, test.Parameters, 1)
	assert.Equal(t, Parameter{Name: "guid", In: "path", Type: "number", Required: true, Description: "test guid"}, test.Parameters[0])

	assert.Equal(t, []Tag{{Name: "login"}, {Name: "test"}}, doc.Tags)
}

func TestGenerator_BuildWithoutTagFilter(t *testing.T) {
	opts := DefaultOptions(config.Default().Docs)
	opts.IncludeTag = ""

	doc := NewGenerator(opts, nil).Build(sampleRoutes())

	assert.Len(t, doc.Paths, 4)
}

func TestSwaggerPath(t *testing.T) {
	assert.Equal(t, "/items/{id}", swaggerPath("/items/{id:[0-9]+}"))
	assert.Equal(t, "/test/{guid}", swaggerPath("/test/{guid}"))
	assert.Equal(t, "/", swaggerPath("/"))
}

func TestGenerator_Routes(t *testing.T) {
	host := &fakeHost{routes: sampleRoutes(), renderer: templates.New(Templates())}
	routes := newGenerator(t).Routes(host)
	require.Len(t, routes, 3)

	byPath := make(map[string]server.Route)
	for _, rt := range routes {
		byPath[rt.Path] = rt
		assert.Empty(t, rt.Tags, "doc routes must not document themselves")
	}

	t.Run("json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/swagger.json", nil)
		resp, ok := byPath["/swagger.json"].Handler(req).Ok()
		require.True(t, ok)
		assert.Equal(t, "application/json", resp.ContentType)

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal(resp.Body, &doc))
		assert.Equal(t, "example.com", doc["host"])
		paths := doc["paths"].(map[string]interface{})
		assert.Contains(t, paths, "/test/{guid}")
		assert.Contains(t, string(resp.Body), `"security":[{"jwt":[]}]`)
	})

	t.Run("yaml", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/swagger.yaml", nil)
		resp, ok := byPath["/swagger.yaml"].Handler(req).Ok()
		require.True(t, ok)
		assert.Equal(t, "application/yaml", resp.ContentType)

		var doc Swagger
		require.NoError(t, yaml.Unmarshal(resp.Body, &doc))
		assert.Equal(t, "Test API Documentation", doc.Info.Title)
		assert.Len(t, doc.Paths, 3)
	})

	t.Run("documentation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documentation", nil)
		resp, ok := byPath["/documentation"].Handler(req).Ok()
		require.True(t, ok)
		assert.Contains(t, string(resp.Body), "<title>Test API Documentation</title>")
		assert.Contains(t, string(resp.Body), `data-spec-url="/swagger.json"`)
		assert.Contains(t, string(resp.Body), "/swaggerui/docs.js")
	})
}

func TestAssets(t *testing.T) {
	for _, name := range []string{"docs.js", "docs.css"} {
		_, err := fs.Stat(Assets(), name)
		assert.NoError(t, err, name)
	}
	_, err := fs.Stat(Templates(), "documentation.html")
	assert.NoError(t, err)
}
