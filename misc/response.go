package misc

// Response is the uniform body of every API response, success or failure.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func Ok(data interface{}) *Response {
	return &Response{Success: true, Data: data}
}

func OkWithMessage(message string, data interface{}) *Response {
	return &Response{Success: true, Message: message, Data: data}
}

func Failure(message string) *Response {
	return &Response{Success: false, Message: message}
}
