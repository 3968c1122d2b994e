package response

type ResponseCode int

// Response 统一响应结构
// 列表接口 data 为数组；简单失败只带 message
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ResponseOptions func(*Response)

func WithSuccess(success bool) ResponseOptions {
	return func(r *Response) {
		r.Success = success
	}
}

func WithMessage(message string) ResponseOptions {
	return func(r *Response) {
		r.Message = message
	}
}

func WithData(data any) ResponseOptions {
	return func(r *Response) {
		r.Data = data
	}
}

func CustomResponse(opts ...ResponseOptions) Response {
	response := Response{}
	for _, opt := range opts {
		opt(&response)
	}
	return response
}

func SuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

func ErrorResponse(msg string) Response {
	return Response{
		Success: false,
		Message: msg,
	}
}
