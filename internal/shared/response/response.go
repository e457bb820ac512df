package response

import (
	"github.com/gin-gonic/gin"
)

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

func NewPagination(total int64, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		// ceil(total / limit)
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}

type Envelope struct {
	Data      any    `json:"data,omitempty"`
	Succeeded bool   `json:"succeeded"`
	Message   string `json:"message"`
}

func Success(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{
		Data:      data,
		Succeeded: true,
		Message:   message,
	})
}

// Error writes the failure shape: a bare message, nothing else.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
