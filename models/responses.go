package models

// Response is the uniform success envelope returned by every JSON
// endpoint: the HTTP status code repeated in the body plus the payload.
type Response struct {
	Code    int `json:"code"`
	Message any `json:"message"`
}

// ErrorResponse is the uniform error envelope. Error carries the error
// kind name ("Not Found", "Bad Request", ...), Message the human text.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
