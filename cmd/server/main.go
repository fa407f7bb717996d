package main

import (
	"log"
	"net/http"
	"os"

	"github.com/Copycatmax/autoScheduler/pkg/auth"
	"github.com/Copycatmax/autoScheduler/pkg/database"
	"github.com/Copycatmax/autoScheduler/pkg/handlers"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if it exists; try root and parent directories
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)
	h := &handlers.Handler{DB: db}

	r := gin.Default()

	// Admin interface - serve static files from embedded FS
	r.StaticFS("/static", h.GetStaticFS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Staff Auto-Scheduler API",
			"version": "1.0.0",
		})
	})

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	// Admin endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Scheduler endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/schedule", h.ScheduleJSON)
		api.POST("/validate", h.ValidateInput)
		api.POST("/check", h.CheckAssignments)
		api.GET("/usage", h.GetMyUsage)

		// Stored roster workflow
		store := api.Group("/store")
		{
			store.GET("/staff", h.ListStaff)
			store.POST("/staff", h.CreateStaff)
			store.PUT("/staff/:id", h.UpdateStaff)
			store.DELETE("/staff/:id", h.DeleteStaff)

			store.GET("/shifts", h.ListShifts)
			store.POST("/shifts", h.CreateShift)
			store.PUT("/shifts/:id", h.UpdateShift)
			store.DELETE("/shifts/:id", h.DeleteShift)
			store.PUT("/shifts/:id/assignments", h.SetAssignments)

			store.GET("/conflicts", h.ListConflicts)
			store.POST("/conflicts", h.CreateConflict)
			store.DELETE("/conflicts/:id", h.DeleteConflict)

			store.POST("/schedule", h.ScheduleStored)
			store.GET("/schedule/csv", h.ExportScheduleCSV)
			store.POST("/assignments/clear", h.ClearAssignments)
			store.POST("/sample", h.LoadSampleData)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
