// Package reply defines the tagged result every route produces.
//
// A Result is either Ok(Response) or Err(ErrorDetail). Handlers, the auth
// step, parameter validation and routing failures all produce Results, and
// response hooks branch on the arm rather than inspecting payload types.
package reply
