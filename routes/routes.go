package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-booking-backend/controllers"
	"hotel-booking-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controllers onto the route tree. Public routes carry
// the booking flow; everything administrative sits behind the admin token.
func SetupRouter(
	av *controllers.AvailabilityController,
	rsv *controllers.ReservationController,
	rcc *controllers.RoomClassController,
	ric *controllers.RoomInstanceController,
	jwtSecret string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/auth/login", controllers.Login(jwtSecret))

		public := api.Group("/public")
		{
			public.GET("/room-classes", rcc.GetPublicRoomClasses)
			public.POST("/availability", av.CheckAvailability)
		}

		// Booking submission and confirmation lookup are guest-facing.
		api.POST("/reservations", rsv.CreateReservation)
		api.GET("/reservations/lookup", rsv.LookupReservation)

		admin := api.Group("")
		admin.Use(middleware.RequireAdmin(jwtSecret))
		{
			reservations := admin.Group("/reservations")
			{
				reservations.GET("", rsv.GetReservations)
				reservations.GET("/:id", rsv.GetReservationDetails)
				reservations.POST("/:id/transition", rsv.TransitionReservation)
				reservations.POST("/:id/checkout", rsv.CheckoutReservation)
			}

			roomClasses := admin.Group("/room-classes")
			{
				roomClasses.GET("", rcc.GetRoomClasses)
				roomClasses.GET("/:id", rcc.GetRoomClass)
				roomClasses.POST("", rcc.CreateRoomClass)
				roomClasses.PATCH("/:id", rcc.UpdateRoomClass)
				roomClasses.DELETE("/:id", rcc.DeleteRoomClass)
			}

			roomInstances := admin.Group("/room-instances")
			{
				roomInstances.GET("", ric.GetRoomInstances)
				roomInstances.POST("", ric.CreateRoomInstance)
				roomInstances.PATCH("/:id", ric.UpdateRoomInstance)
				roomInstances.PATCH("/:id/status", ric.UpdateRoomInstanceStatus)
				roomInstances.DELETE("/:id", ric.DeleteRoomInstance)
			}
		}
	}

	return r
}
