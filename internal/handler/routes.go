package handler

import "github.com/gin-gonic/gin"

// Handlers groups everything Register mounts.
type Handlers struct {
	Students  *StudentHandler
	Addresses *AddressHandler
	Roster    *RosterHandler
	Metrics   *MetricsHandler
}

// Register mounts the probes at the root and the record endpoints under prefix.
func Register(r *gin.Engine, prefix string, h Handlers) {
	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		r.GET("/ready", h.Metrics.Ready)
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	api := r.Group(prefix)

	students := api.Group("/students")
	students.GET("", h.Students.List)
	students.POST("", h.Students.Create)
	if h.Roster != nil {
		students.GET("/export", h.Roster.Export)
	}
	students.GET("/:id", h.Students.Get)
	students.PUT("/:id", h.Students.Update)
	students.DELETE("/:id", h.Students.Delete)
	students.GET("/:id/addresses", h.Addresses.ListForStudent)
	students.POST("/:id/addresses", h.Addresses.CreateForStudent)
	students.DELETE("/:id/addresses/:addressId", h.Addresses.DeleteForStudent)

	addresses := api.Group("/addresses")
	addresses.GET("", h.Addresses.List)
	addresses.POST("", h.Addresses.Create)
	addresses.GET("/student/:studentId", h.Addresses.ListByStudent)
	addresses.GET("/:id", h.Addresses.Get)
	addresses.PUT("/:id", h.Addresses.Update)
	addresses.DELETE("/:id", h.Addresses.Delete)
}
