package models

type SearchRequest struct {
	Type string `uri:"type" binding:"required"`
}

type SearchQuery struct {
	Search     string `form:"search"`
	PageNumber int    `form:"page[number],default=1" binding:"omitempty,min=1"`
	PageSize   int    `form:"page[size],default=25" binding:"omitempty,min=1,max=1000"`
	Ordering   string `form:"ordering"`
}

type SearchResponse struct {
	Total uint64        `json:"total"`
	Hits  []interface{} `json:"hits"`
}

type ReindexRequest struct {
	Type string `uri:"type" binding:"required"`
}

type ReindexResponse struct {
	Type    string `json:"type"`
	Indexed int    `json:"indexed"`
}
