package serverutils

// ApiResponse is the common envelope for non-chat endpoints.
type ApiResponse[T any] struct {
	StatusCode int    `json:"statusCode"`
	Msg        string `json:"msg"`
	Data       T      `json:"data,omitempty"`
}

func SuccessResponse[T any](msg string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		StatusCode: 200,
		Msg:        msg,
		Data:       data,
	}
}

func ErrorResponse(code int, msg string) ApiResponse[any] {
	return ApiResponse[any]{
		StatusCode: code,
		Msg:        msg,
	}
}
