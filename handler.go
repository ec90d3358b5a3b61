package endpoints

import "context"

// Void is used as a type parameter when a request has no parameters/body
// or a response has no body (results in 204 No Content).
type Void struct{}

// Handler is the func-style typed handler signature. The package owns
// serialization — handlers never see http.ResponseWriter or *http.Request.
//
// Endpoint types implement one of the four handler-shape interfaces in
// endpoint.go instead; Handler exists for routes that are plain functions.
type Handler[Req, Resp any] func(ctx context.Context, req *Req) (*Resp, error)

// SelfValidator is implemented by request types that validate themselves.
type SelfValidator interface {
	Validate() error
}

// Validator validates any request.
type Validator interface {
	Validate(req any) error
}
