package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/ksrlabs/resource-booking/internal/audit"
	"github.com/ksrlabs/resource-booking/internal/config"
	domainBooking "github.com/ksrlabs/resource-booking/internal/domain/booking"
	"github.com/ksrlabs/resource-booking/internal/handlers"
	infraRepo "github.com/ksrlabs/resource-booking/internal/infra/repository"
	"github.com/ksrlabs/resource-booking/internal/middleware"
	"github.com/ksrlabs/resource-booking/internal/models"
	ucBooking "github.com/ksrlabs/resource-booking/internal/usecase/booking"
	ucDashboard "github.com/ksrlabs/resource-booking/internal/usecase/dashboard"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cache *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	policy := buildPolicy(cfg)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, policy, auditDispatcher)
	approveBookingUC := ucBooking.NewApproveBooking(bookingRepo, policy, auditDispatcher)
	rejectBookingUC := ucBooking.NewRejectBooking(bookingRepo, policy, auditDispatcher)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, policy, auditDispatcher)
	updateBookingUC := ucBooking.NewUpdateBooking(bookingRepo, policy, auditDispatcher)
	listForUserUC := ucBooking.NewListBookingsForUser(bookingRepo)
	listActiveUC := ucBooking.NewListActiveBookings(bookingRepo)
	findConflictsUC := ucBooking.NewFindConflicts(bookingRepo, policy)

	statsUC := ucDashboard.NewGetStats(bookingRepo, cache)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, auditDispatcher)
	userHandler := handlers.NewUserHandler(db)
	resourceHandler := handlers.NewResourceHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(statsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		bookingRepo,
		createBookingUC,
		approveBookingUC,
		rejectBookingUC,
		cancelBookingUC,
		updateBookingUC,
		listForUserUC,
		listActiveUC,
		findConflictsUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/resources", resourceHandler.List)
			secured.GET("/resources/:id", resourceHandler.Get)

			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings/mine", bookingHandler.ListMine)
			secured.GET("/bookings/conflicts", bookingHandler.Conflicts)
			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.DELETE("/bookings/:id", bookingHandler.Cancel)

			// ------------------------------
			// REVIEW
			// ------------------------------
			// Gated by the policy table's CanReview column, not a fixed
			// role list, so deployment knobs reach the router.
			review := secured.Group("/")
			review.Use(middleware.RequireRole(reviewerRoles(policy)...))
			{
				review.GET("/bookings", bookingHandler.ListActive)
				review.PATCH("/bookings/:id/approve", bookingHandler.Approve)
				review.PATCH("/bookings/:id/reject", bookingHandler.Reject)
				review.PUT("/bookings/:id", bookingHandler.Update)
			}

			// ------------------------------
			// ADMINISTRATION
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/resources", resourceHandler.Create)
				admin.PATCH("/resources/:id", resourceHandler.Update)
				admin.DELETE("/resources/:id", resourceHandler.Delete)

				admin.GET("/users", userHandler.List)
				admin.GET("/users/:id", userHandler.Get)
				admin.POST("/users", userHandler.Create)
				admin.PATCH("/users/:id", userHandler.Update)
				admin.DELETE("/users/:id", userHandler.Delete)

				admin.GET("/dashboard", dashboardHandler.Stats)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}

// buildPolicy applies the deployment knobs on top of the default
// role table.
func buildPolicy(cfg *config.Config) domainBooking.Policy {
	policy := domainBooking.DefaultPolicy()
	policy.PendingBlocksSlot = cfg.PendingBlocksSlot

	if cfg.StaffCanReview {
		rp := policy.Roles[models.RoleStaff]
		rp.CanReview = true
		policy.Roles[models.RoleStaff] = rp
	}

	return policy
}

// reviewerRoles is the CanReview column of the policy table, in the
// shape RequireRole wants.
func reviewerRoles(p domainBooking.Policy) []models.Role {
	var roles []models.Role
	for role, rp := range p.Roles {
		if rp.CanReview {
			roles = append(roles, role)
		}
	}
	return roles
}
