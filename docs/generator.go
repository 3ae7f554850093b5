package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"sort"
	"strings"

	"github.com/upb/api-scaffold/config"
	"github.com/upb/api-scaffold/reply"
	"github.com/upb/api-scaffold/server"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed web/*
var content embed.FS

// DocumentationView is the template the UI route renders.
const DocumentationView = "documentation"

// Options configures the generated document and where it is served.
type Options struct {
	Title       string
	Description string
	Version     string

	// Host is written into the document. Empty uses the request's Host.
	Host    string
	Schemes []string

	JSONPath          string
	YAMLPath          string
	DocumentationPath string
	AssetsPath        string

	// IncludeTag selects the routes that are documented.
	IncludeTag string

	SecurityDefinitions map[string]SecurityScheme
}

// DefaultOptions returns the stock paths and a "jwt" apiKey definition read
// from the Authorization header.
func DefaultOptions(cfg config.DocsConfig) Options {
	return Options{
		Title:             cfg.Title,
		Description:       cfg.Description,
		Version:           cfg.Version,
		Schemes:           []string{"http"},
		JSONPath:          "/swagger.json",
		YAMLPath:          "/swagger.yaml",
		DocumentationPath: "/documentation",
		AssetsPath:        "/swaggerui/",
		IncludeTag:        "api",
		SecurityDefinitions: map[string]SecurityScheme{
			"jwt": {Type: "apiKey", Name: "Authorization", In: "header"},
		},
	}
}

// Generator builds Swagger documents from a server's route table.
type Generator struct {
	opts   Options
	logger *zap.Logger
}

// NewGenerator creates a generator.
func NewGenerator(opts Options, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{opts: opts, logger: logger}
}

// Options returns the generator's options.
func (g *Generator) Options() Options {
	return g.opts
}

// Build produces the document for routes. Authenticated routes get a
// security requirement on every configured definition.
func (g *Generator) Build(routes []server.RouteInfo) *Swagger {
	doc := &Swagger{
		Swagger: "2.0",
		Info: Info{
			Title:       g.opts.Title,
			Description: g.opts.Description,
			Version:     g.opts.Version,
		},
		Host:                g.opts.Host,
		Schemes:             g.opts.Schemes,
		Paths:               make(map[string]PathItem),
		SecurityDefinitions: g.opts.SecurityDefinitions,
	}

	tags := make(map[string]struct{})
	for _, rt := range routes {
		if g.opts.IncludeTag != "" && !rt.HasTag(g.opts.IncludeTag) {
			continue
		}

		path := swaggerPath(rt.Path)
		op := &Operation{
			Summary:     rt.Description,
			Description: rt.Notes,
			OperationID: operationID(rt.Method, path),
			Responses:   map[string]Response{"default": {Description: "Successful"}},
		}

		if group := firstSegment(path); group != "" {
			op.Tags = []string{group}
			tags[group] = struct{}{}
		}

		for _, p := range rt.Params {
			typ := p.Type
			if typ == "" {
				typ = "string"
			}
			op.Parameters = append(op.Parameters, Parameter{
				Name:        p.Name,
				In:          "path",
				Type:        typ,
				Required:    true,
				Description: p.Description,
			})
		}

		if rt.Strategy != "" {
			for name := range g.opts.SecurityDefinitions {
				op.Security = append(op.Security, map[string][]string{name: {}})
			}
			sort.Slice(op.Security, func(i, j int) bool {
				return firstKey(op.Security[i]) < firstKey(op.Security[j])
			})
		}

		item, ok := doc.Paths[path]
		if !ok {
			item = make(PathItem)
			doc.Paths[path] = item
		}
		item[strings.ToLower(rt.Method)] = op
	}

	for name := range tags {
		doc.Tags = append(doc.Tags, Tag{Name: name})
	}
	sort.Slice(doc.Tags, func(i, j int) bool { return doc.Tags[i].Name < doc.Tags[j].Name })

	return doc
}

// Routes implements server.DocGenerator. The document is rebuilt from the
// host's route table on every request, so routes installed after the
// generator are still documented.
func (g *Generator) Routes(host server.Host) []server.Route {
	return []server.Route{
		{
			Method: http.MethodGet,
			Path:   g.opts.JSONPath,
			Auth:   server.NoAuth,
			Handler: func(r *http.Request) reply.Result {
				return reply.JSON(http.StatusOK, g.document(host, r))
			},
		},
		{
			Method: http.MethodGet,
			Path:   g.opts.YAMLPath,
			Auth:   server.NoAuth,
			Handler: func(r *http.Request) reply.Result {
				body, err := yaml.Marshal(g.document(host, r))
				if err != nil {
					return reply.Fail(fmt.Errorf("encoding swagger yaml: %w", err))
				}
				return reply.Ok(reply.Response{
					Status:      http.StatusOK,
					ContentType: "application/yaml",
					Body:        body,
				})
			},
		},
		{
			Method: http.MethodGet,
			Path:   g.opts.DocumentationPath,
			Auth:   server.NoAuth,
			Handler: func(r *http.Request) reply.Result {
				return host.View(DocumentationView, map[string]string{
					"Title":      g.opts.Title,
					"JSONPath":   g.opts.JSONPath,
					"AssetsPath": g.opts.AssetsPath,
				})
			},
		},
	}
}

func (g *Generator) document(host server.Host, r *http.Request) *Swagger {
	doc := g.Build(host.Routes())
	if doc.Host == "" {
		doc.Host = r.Host
	}
	g.logger.Debug("swagger document built",
		zap.Int("paths", len(doc.Paths)),
		zap.String("host", doc.Host))
	return doc
}

// Assets returns the UI's static files.
func Assets() fs.FS {
	sub, err := fs.Sub(content, "web/swaggerui")
	if err != nil {
		panic(fmt.Sprintf("docs: failed to load embedded assets: %v", err))
	}
	return sub
}

// Templates returns the UI's templates.
func Templates() fs.FS {
	sub, err := fs.Sub(content, "web/templates")
	if err != nil {
		panic(fmt.Sprintf("docs: failed to load embedded templates: %v", err))
	}
	return sub
}

// swaggerPath strips chi regexp constraints: /items/{id:[0-9]+} -> /items/{id}.
func swaggerPath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if idx := strings.Index(seg, ":"); idx > 0 {
				segments[i] = seg[:idx] + "}"
			}
		}
	}
	return strings.Join(segments, "/")
}

func firstSegment(path string) string {
	for _, seg := range strings.Split(path, "/") {
		if seg != "" && !strings.HasPrefix(seg, "{") {
			return seg
		}
	}
	return ""
}

// operationID builds getTestGuid from GET /test/{guid}.
func operationID(method, path string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for _, seg := range strings.Split(path, "/") {
		seg = strings.Trim(seg, "{}")
		if seg == "" {
			continue
		}
		b.WriteString(strings.ToUpper(seg[:1]))
		b.WriteString(seg[1:])
	}
	return b.String()
}

func firstKey(m map[string][]string) string {
	for k := range m {
		return k
	}
	return ""
}
