package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"resort-backend/controllers"
	"resort-backend/middleware"
	"resort-backend/models"
)

// Controllers groups everything the router dispatches to.
type Controllers struct {
	Resources *controllers.ResourceController
	Bookings  *controllers.BookingController
	Guests    *controllers.GuestController
	Payments  *controllers.PaymentController
	Occupancy *controllers.OccupancyController
	Admins    *controllers.AdminController
	Auth      *controllers.AuthController
	Settings  *controllers.SettingsController
	Reviews   *controllers.ReviewController
}

type Options struct {
	CORSOrigins      []string
	AllowCredentials bool
	RequestTimeout   time.Duration
}

// SetupRouter mounts the public guest API under /api and the staff API under
// /api/admin behind bearer auth and per-area permissions.
func SetupRouter(ctl Controllers, auth middleware.Authority, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: opts.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))
	if opts.RequestTimeout > 0 {
		r.Use(middleware.RequestTimeout(opts.RequestTimeout))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", ctl.Resources.ListRooms)
			// must stay before /:id
			rooms.GET("/available", ctl.Resources.ListAvailableRooms)
			rooms.GET("/:id", ctl.Resources.GetRoom)
			rooms.GET("/:id/quote", ctl.Resources.QuoteRoom)
			rooms.GET("/:id/availability", ctl.Resources.RoomAvailability)
			rooms.GET("/:id/reviews", ctl.Reviews.RoomReviews)
			rooms.POST("/:id/reviews", ctl.Reviews.AddRoomReview)
		}

		svcs := api.Group("/services")
		{
			svcs.GET("", ctl.Resources.ListServices)
			svcs.GET("/:id", ctl.Resources.GetService)
			svcs.GET("/:id/quote", ctl.Resources.QuoteService)
			svcs.GET("/:id/slots", ctl.Resources.ServiceSlots)
		}

		guests := api.Group("/guests")
		{
			guests.POST("", ctl.Guests.Register)
			guests.GET("/external/:externalId", ctl.Guests.GetGuestByExternalID)
			guests.GET("/:id", ctl.Guests.GetGuest)
			guests.GET("/:id/bookings", ctl.Guests.GuestBookings)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("/rooms", ctl.Bookings.CreateRoomBooking)
			bookings.GET("/rooms/:id", ctl.Bookings.GetRoomBooking)
			bookings.POST("/rooms/:id/cancel", ctl.Bookings.CancelRoomBooking)
			bookings.POST("/services", ctl.Bookings.CreateServiceBooking)
			bookings.GET("/services/:id", ctl.Bookings.GetServiceBooking)
			bookings.POST("/services/:id/cancel", ctl.Bookings.CancelServiceBooking)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", ctl.Payments.ListPayments)
			payments.POST("", ctl.Payments.CreatePayment)
			payments.GET("/:id", ctl.Payments.GetPayment)
		}

		api.GET("/settings", ctl.Settings.GetSettings)
		api.POST("/auth/login", ctl.Auth.Login)
	}

	staff := api.Group("/admin", middleware.RequireAdmin(auth))
	{
		staff.GET("/me", ctl.Auth.Me)

		rooms := staff.Group("/rooms", middleware.RequirePermission(auth, models.PermissionRooms))
		{
			rooms.POST("", ctl.Resources.CreateRoom)
			rooms.PUT("/:id", ctl.Resources.UpdateRoom)
			rooms.PATCH("/:id/availability", ctl.Resources.SetRoomAvailability)
			rooms.DELETE("/:id", ctl.Resources.DeleteRoom)
		}

		svcs := staff.Group("/services", middleware.RequirePermission(auth, models.PermissionServices))
		{
			svcs.POST("", ctl.Resources.CreateService)
			svcs.PUT("/:id", ctl.Resources.UpdateService)
			svcs.PATCH("/:id/availability", ctl.Resources.SetServiceAvailability)
			svcs.DELETE("/:id", ctl.Resources.DeleteService)
		}

		bookings := staff.Group("", middleware.RequirePermission(auth, models.PermissionBookings))
		{
			bookings.PATCH("/bookings/rooms/:id/status", ctl.Bookings.SetRoomBookingStatus)
			bookings.PATCH("/bookings/services/:id/status", ctl.Bookings.SetServiceBookingStatus)
			bookings.PATCH("/payments/:id/status", ctl.Payments.UpdatePaymentStatus)

			bookings.GET("/occupancy/rooms", ctl.Occupancy.AllRooms)
			bookings.GET("/occupancy/rooms/:id", ctl.Occupancy.Room)
			bookings.GET("/occupancy/services/:id", ctl.Occupancy.Service)
			bookings.GET("/arrivals", ctl.Occupancy.Arrivals)
			bookings.GET("/departures", ctl.Occupancy.Departures)
			bookings.GET("/stats", ctl.Occupancy.Stats)
		}

		admins := staff.Group("/admins", middleware.RequirePermission(auth, models.PermissionAdmins))
		{
			admins.GET("", ctl.Admins.GetAdmins)
			admins.POST("", ctl.Admins.CreateAdmin)
			admins.DELETE("/:id", ctl.Admins.DeleteAdmin)
			admins.PUT("/:id/permissions/:permission", ctl.Admins.GrantPermission)
			admins.DELETE("/:id/permissions/:permission", ctl.Admins.RevokePermission)
		}

		staff.PUT("/settings", middleware.RequirePermission(auth, models.PermissionAdmins), ctl.Settings.UpdateSettings)
	}

	return r
}
