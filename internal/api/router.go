package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"dorm-management-backend/config"
	"dorm-management-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router. Authorization
// (student vs admin) happens in the gateway in front of this service;
// the route split here mirrors that so each group can be firewalled.
func NewRouter(h *Handler, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Public room inventory, cacheable.
		api.GET("/rooms", caching, h.ListRooms)
		api.GET("/rooms/:room_id", caching, h.GetRoom)

		student := api.Group("/student")
		{
			student.GET("/me", h.GetMyProfile)
			student.PATCH("/me", h.UpdateMyProfile)

			student.POST("/reservations", h.CreateReservation)
			student.GET("/reservations", h.ListMyReservations)
			student.DELETE("/reservations/:reservation_id", h.CancelReservation)

			student.GET("/contracts", h.ListMyContracts)

			student.GET("/invoices", h.ListMyInvoices)
			student.PUT("/invoices/:invoice_id/pay", h.PayInvoice)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/rooms", h.CreateRoom)
			admin.PUT("/rooms/:room_id", h.UpdateRoom)
			admin.PATCH("/rooms/:room_id/active", h.SetRoomActive)

			admin.GET("/reservations", h.ListReservations)
			admin.PUT("/reservations/:reservation_id/status", h.DecideReservation)

			admin.GET("/contracts/expiring", h.ListExpiringContracts)
			admin.GET("/contracts/:contract_id", h.GetContract)
			admin.PUT("/contracts/:contract_id/extend", h.ExtendContract)

			admin.POST("/invoices/generate", h.GenerateInvoices)
			admin.GET("/invoices", h.ListInvoices)
			admin.GET("/invoices/stats", h.InvoiceStats)
		}
	}

	return r
}
