package router

import (
	"nutrirec-go-worker/controllers/check"
	"nutrirec-go-worker/controllers/metrics"
	"nutrirec-go-worker/controllers/readProbe"

	"github.com/gin-gonic/gin"
)

func Router() *gin.Engine {
	route := gin.Default()

	route.GET("/read-probe", readProbe.Probe)
	route.GET("/check-live", check.CheckAlive)
	route.GET("/metrics", metrics.Handler())

	return route
}
