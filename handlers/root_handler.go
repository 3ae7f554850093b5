package handlers

import (
	"net/http"

	"github.com/upb/api-scaffold/reply"
)

// HandleRoot handles GET /
func HandleRoot(r *http.Request) reply.Result {
	return reply.Text("1337 test")
}
