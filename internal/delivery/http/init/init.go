package http_init

import (
	"log"
	"net"

	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// ControllerPool mounts every controller under the shared API prefix
// and runs the single gin engine they all share.
type ControllerPool struct {
	pool   []Controller
	rg     *gin.RouterGroup
	engine *gin.Engine
}

func NewControllerPool() *ControllerPool {
	engine := gin.Default()
	rg := engine.Group(apiPrefix)
	return &ControllerPool{
		rg:     rg,
		engine: engine,
	}
}

func (pool *ControllerPool) Add(c Controller) {
	pool.pool = append(pool.pool, c)
}

func (pool *ControllerPool) Register() {
	for _, c := range pool.pool {
		c.RegisterRoutes(pool.rg)
	}
}

func (pool *ControllerPool) RunAll(host, port string) {
	if err := pool.engine.Run(net.JoinHostPort(host, port)); err != nil {
		log.Fatalf("failed to run HTTP server: %v", err)
	}
}
