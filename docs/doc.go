// Package docs generates a Swagger 2.0 description of the routes installed on
// a server and serves it together with a small browser UI.
//
// The generator only documents routes tagged "api". It contributes its own
// routes through server.DocGenerator:
//
//	GET /swagger.json   the document as JSON
//	GET /swagger.yaml   the document as YAML
//	GET /documentation  the HTML UI, rendered through the server's templates
//
// The UI's static assets are exposed through Assets and are meant to be
// registered with server.RegisterStaticFiles under Options.AssetsPath.
package docs
