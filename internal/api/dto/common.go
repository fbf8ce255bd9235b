package dto

// Response 统一响应包装
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PageReq 通用分页查询参数
type PageReq struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// Normalize 归一化非法分页参数
func (p *PageReq) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 50 {
		p.PageSize = 20
	}
}
