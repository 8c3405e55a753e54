package middleware

import (
	"expvar"
	"strconv"

	"github.com/gin-gonic/gin"
)

var (
	requestsTotal   = expvar.NewInt("http_requests_total")
	requestsByClass = expvar.NewMap("http_responses_by_class")
)

// Metrics counts requests and response status classes in expvar (served at /api/debug/vars).
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		requestsTotal.Add(1)
		requestsByClass.Add(strconv.Itoa(c.Writer.Status()/100)+"xx", 1)
	}
}
