package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talenthub/jobboard-be/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(h *handler.Handlers, logger *slog.Logger) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger))
	r.Use(CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "jobboard-api",
		})
	})

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.GET("", h.User.ListUsers)
			users.POST("", h.User.CreateUser)
			users.GET("/:id", h.User.GetUser)
			users.GET("/:id/conversations", h.Messaging.ListUserConversations)
			users.GET("/:id/applications", h.Application.ListUserApplications)
			users.GET("/:id/notifications", h.Notification.ListUserNotifications)
		}

		companies := v1.Group("/companies")
		{
			companies.GET("", h.Company.ListCompanies)
			companies.POST("", h.Company.CreateCompany)
			companies.GET("/slug/:slug", h.Company.GetCompanyBySlug)
			companies.GET("/:id", h.Company.GetCompany)
			companies.PUT("/:id", h.Company.UpdateCompany)
			companies.DELETE("/:id", h.Company.DeleteCompany)
			companies.PUT("/:id/verify", h.Company.VerifyCompany)
			companies.PUT("/:id/logo", h.Company.UpdateCompanyLogo)
			companies.GET("/:id/stats", h.Company.GetCompanyStats)

			companies.GET("/:id/users", h.CompanyUser.ListCompanyUsers)
			companies.POST("/:id/users", h.CompanyUser.CreateCompanyUser)

			companies.GET("/:id/job-postings", h.JobPosting.ListCompanyJobPostings)
			companies.POST("/:id/job-postings", h.JobPosting.CreateJobPosting)

			companies.GET("/:id/conversations", h.Messaging.ListCompanyConversations)

			companies.GET("/:id/events", h.Event.ListCompanyEvents)
			companies.POST("/:id/events", h.Event.CreateEvent)

			companies.GET("/:id/invoices", h.Invoice.ListCompanyInvoices)
			companies.POST("/:id/invoices", h.Invoice.CreateInvoice)

			companies.GET("/:id/reviews", h.Review.ListCompanyReviews)
			companies.POST("/:id/reviews", h.Review.CreateReview)

			companies.GET("/:id/media", h.Media.ListCompanyMedia)
			companies.POST("/:id/media", h.Media.CreateMedia)

			companies.GET("/:id/notifications", h.Notification.ListCompanyNotifications)
		}

		companyUsers := v1.Group("/company-users")
		{
			companyUsers.GET("/:id", h.CompanyUser.GetCompanyUser)
			companyUsers.PUT("/:id", h.CompanyUser.UpdateCompanyUser)
			companyUsers.DELETE("/:id", h.CompanyUser.DeleteCompanyUser)
		}

		jobPostings := v1.Group("/job-postings")
		{
			jobPostings.GET("", h.JobPosting.ListJobPostings)
			jobPostings.GET("/slug/:slug", h.JobPosting.GetJobPostingBySlug)
			jobPostings.GET("/:id", h.JobPosting.GetJobPosting)
			jobPostings.PUT("/:id", h.JobPosting.UpdateJobPosting)
			jobPostings.DELETE("/:id", h.JobPosting.DeleteJobPosting)
			jobPostings.PUT("/:id/publish", h.JobPosting.PublishJobPosting)
			jobPostings.PUT("/:id/unpublish", h.JobPosting.UnpublishJobPosting)
			jobPostings.GET("/:id/stats", h.JobPosting.GetJobPostingStats)
			jobPostings.GET("/:id/applications", h.Application.ListPostingApplications)
			jobPostings.POST("/:id/applications", h.Application.CreateApplication)
		}

		applications := v1.Group("/applications")
		{
			applications.GET("", h.Application.ListApplications)
			applications.GET("/:id", h.Application.GetApplication)
			applications.PUT("/:id/status", h.Application.UpdateApplicationStatus)
			applications.GET("/:id/activities", h.Application.ListActivities)
			applications.POST("/:id/activities", h.Application.CreateActivity)
			applications.PUT("/:id/archive", h.Application.ArchiveApplication)
			applications.PUT("/:id/unarchive", h.Application.UnarchiveApplication)
		}

		conversations := v1.Group("/conversations")
		{
			conversations.POST("", h.Messaging.CreateConversation)
			conversations.GET("/:id", h.Messaging.GetConversation)
			conversations.GET("/:id/messages", h.Messaging.ListMessages)
			conversations.POST("/:id/messages", h.Messaging.SendMessage)
			conversations.PUT("/:id/read", h.Messaging.MarkConversationRead)
			conversations.PUT("/:id/archive", h.Messaging.ArchiveConversation)
			conversations.PUT("/:id/unarchive", h.Messaging.UnarchiveConversation)
		}

		messages := v1.Group("/messages")
		{
			messages.PUT("/:id/read", h.Messaging.MarkMessageRead)
		}

		eventsGroup := v1.Group("/events")
		{
			eventsGroup.GET("/:id", h.Event.GetEvent)
			eventsGroup.PUT("/:id", h.Event.UpdateEvent)
			eventsGroup.DELETE("/:id", h.Event.DeleteEvent)
			eventsGroup.PUT("/:id/publish", h.Event.PublishEvent)
			eventsGroup.GET("/:id/registrations", h.Event.ListRegistrations)
			eventsGroup.POST("/:id/registrations", h.Event.CreateRegistration)
		}

		registrations := v1.Group("/registrations")
		{
			registrations.PUT("/:id/status", h.Event.UpdateRegistrationStatus)
			registrations.PUT("/:id/cancel", h.Event.CancelRegistration)
		}

		invoices := v1.Group("/invoices")
		{
			invoices.GET("/:id", h.Invoice.GetInvoice)
			invoices.PUT("/:id/pay", h.Invoice.PayInvoice)
			invoices.PUT("/:id/cancel", h.Invoice.CancelInvoice)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.PUT("/:id/approve", h.Review.ApproveReview)
			reviews.DELETE("/:id", h.Review.DeleteReview)
		}

		media := v1.Group("/media")
		{
			media.PUT("/:id", h.Media.UpdateMedia)
			media.DELETE("/:id", h.Media.DeleteMedia)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.PUT("/:id/read", h.Notification.MarkNotificationRead)
		}
	}

	return r
}
