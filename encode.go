package endpoints

import (
	"encoding/json"
	"net/http"
)

// HeaderSetter is optionally implemented by response types to set response
// headers.
type HeaderSetter interface {
	SetHeaders(h http.Header)
}

// encodeResponse writes a handler result to the http.ResponseWriter.
// nil and *Void results write the status only; a StatusCoder result picks
// its own status; everything else is JSON at the default status.
func encodeResponse(w http.ResponseWriter, res any, defaultStatus int) {
	if res == nil {
		w.WriteHeader(defaultStatus)
		return
	}
	if _, ok := res.(*Void); ok {
		w.WriteHeader(defaultStatus)
		return
	}

	if hs, ok := res.(HeaderSetter); ok {
		hs.SetHeaders(w.Header())
	}

	status := defaultStatus
	if sc, ok := res.(StatusCoder); ok {
		status = sc.StatusCode()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
	json.NewEncoder(w).Encode(res)
}

// writeErrorResponse writes an error as an RFC 9457 problem details response.
func writeErrorResponse(w http.ResponseWriter, err error) {
	status := ErrorStatus(err)

	problem := asProblemDetail(err)
	if problem == nil {
		problem = &ProblemDetail{
			Type:   "about:blank",
			Title:  http.StatusText(status),
			Status: status,
			Detail: err.Error(),
		}
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
	json.NewEncoder(w).Encode(problem)
}
