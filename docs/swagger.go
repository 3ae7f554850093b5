package docs

// Swagger is the root of a Swagger 2.0 document.
type Swagger struct {
	Swagger             string                    `json:"swagger" yaml:"swagger"`
	Info                Info                      `json:"info" yaml:"info"`
	Host                string                    `json:"host,omitempty" yaml:"host,omitempty"`
	BasePath            string                    `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	Schemes             []string                  `json:"schemes,omitempty" yaml:"schemes,omitempty"`
	Tags                []Tag                     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Paths               map[string]PathItem       `json:"paths" yaml:"paths"`
	SecurityDefinitions map[string]SecurityScheme `json:"securityDefinitions,omitempty" yaml:"securityDefinitions,omitempty"`
}

// Info is the document metadata block.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// Tag groups operations in the UI.
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem maps a lower-case HTTP method to its operation.
type PathItem map[string]*Operation

// Operation describes one method on a path.
type Operation struct {
	Summary     string                `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string                `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Tags        []string              `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []Parameter           `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses   map[string]Response   `json:"responses" yaml:"responses"`
	Security    []map[string][]string `json:"security,omitempty" yaml:"security,omitempty"`
}

// Parameter describes one operation input; path params are always required.
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	In          string `json:"in" yaml:"in"`
	Type        string `json:"type" yaml:"type"`
	Required    bool   `json:"required" yaml:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Response describes one status code an operation can return.
type Response struct {
	Description string `json:"description" yaml:"description"`
}

// SecurityScheme is a Swagger 2.0 security definition.
type SecurityScheme struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	In   string `json:"in,omitempty" yaml:"in,omitempty"`
}
