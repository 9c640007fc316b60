package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler 提供 prometheus 抓取
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
