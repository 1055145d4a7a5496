package router

import "github.com/gin-gonic/gin"

// Module is one feature's route table. Register receives the /api group and
// attaches the feature's endpoints, including any per-group middleware.
type Module interface {
	Register(rg *gin.RouterGroup)
}
