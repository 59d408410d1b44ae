package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-floor/controllers"
	"github.com/yeremiapane/restaurant-floor/display"
	"github.com/yeremiapane/restaurant-floor/middlewares"
	"github.com/yeremiapane/restaurant-floor/services"
)

type Options struct {
	Engine        *services.Engine
	Hub           *display.Hub
	Clashes       *services.ClashLog
	TableDefaults services.TableDefaults
	CORSOrigin    string
	LoginLimiter  *middlewares.RateLimiter
}

func SetupRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())

	if opts.LoginLimiter == nil {
		opts.LoginLimiter = middlewares.NewRateLimiter(1, 5)
	}

	authCtrl := controllers.NewAuthController(opts.Engine)
	tableCtrl := controllers.NewTableController(opts.Engine, opts.TableDefaults)
	bookingCtrl := controllers.NewBookingController(opts.Engine)
	staffCtrl := controllers.NewStaffController(opts.Engine)
	floorCtrl := controllers.NewFloorController(opts.Engine, opts.Hub, opts.Clashes)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.POST("/login", opts.LoginLimiter.RateLimit(), authCtrl.Login)

	// ----------------------------------------------------------------
	//                      STAFF ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.POST("/logout", authCtrl.Logout)
	auth.GET("/profile", authCtrl.GetProfile)

	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.GET("/tables/:table_id", tableCtrl.GetTable)
	auth.PATCH("/tables/:table_id/ping", tableCtrl.SetPing)

	auth.GET("/bookings", bookingCtrl.GetBookings)
	auth.POST("/bookings", bookingCtrl.CreateBooking)
	auth.GET("/bookings/:booking_id", bookingCtrl.GetBooking)
	auth.PUT("/bookings/:booking_id", bookingCtrl.UpdateBooking)
	auth.DELETE("/bookings/:booking_id", bookingCtrl.DeleteBooking)
	auth.PATCH("/bookings/:booking_id/status", bookingCtrl.SetStatus)
	auth.POST("/bookings/:booking_id/next", bookingCtrl.NextStatus)

	auth.GET("/staff", staffCtrl.GetAllStaff)
	auth.PATCH("/staff/:staff_id", staffCtrl.UpdateStaff)
	auth.PATCH("/staff/:staff_id/presence", staffCtrl.SetPresence)

	auth.GET("/clashes", floorCtrl.GetClashes)
	auth.GET("/ws/floor", floorCtrl.FloorSocket)

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES (floor plan editing)
	// ----------------------------------------------------------------
	admin := auth.Group("/")
	admin.Use(middlewares.AdminOnly())

	admin.POST("/tables", tableCtrl.CreateTable)
	admin.PATCH("/tables/:table_id/position", tableCtrl.MoveTable)
	admin.PATCH("/tables/:table_id/size", tableCtrl.ResizeTable)
	admin.PATCH("/tables/:table_id/shape", tableCtrl.SetShape)
	admin.PATCH("/tables/:table_id/capacity", tableCtrl.SetCapacity)
	admin.PATCH("/tables/:table_id/number", tableCtrl.SetNumber)
	admin.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	admin.POST("/staff", staffCtrl.CreateStaff)

	return r
}
