package response

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

// WriteError will reply to the request with the Error's status code and
// an {"error": ...} JSON body
func WriteError(w http.ResponseWriter, r *http.Request, e *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	json.NewEncoder(w).Encode(errorBody{
		Error: e.Message,
	})
}

// WriteResponse will reply to the request with 200 and the given result as JSON
func WriteResponse(w http.ResponseWriter, r *http.Request, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// WriteMessage will reply to the request with 200 and a {"message": ...} JSON body
func WriteMessage(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messageBody{
		Message: msg,
	})
}
