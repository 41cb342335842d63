package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/orderdesk/orderdesk-api/internal/application/approval"
	"github.com/orderdesk/orderdesk-api/internal/application/auth"
	"github.com/orderdesk/orderdesk-api/internal/application/documents"
	"github.com/orderdesk/orderdesk-api/internal/application/importer"
	"github.com/orderdesk/orderdesk-api/internal/application/ordering"
	"github.com/orderdesk/orderdesk-api/internal/application/usecase"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

// RouterDeps wires the router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	CompanyUC      *usecase.CompanyUseCase
	ManufacturerUC *usecase.ManufacturerUseCase
	CustomerUC     *usecase.CustomerUseCase
	ItemUC         *usecase.ItemUseCase
	ProfileUC      *usecase.ProfileUseCase
	PaymentUC      *usecase.PaymentUseCase
	IssuerUC       *usecase.IssuerSettingUseCase
	Ordering       *ordering.Service
	Approvals      *approval.Service
	Documents      *documents.Service
	Importer       *importer.Importer

	Profiles      repository.UserProfileRepository
	Manufacturers repository.ManufacturerRepository
	AccessLogs    repository.AccessLogRepository

	JWTSecret string
	Log       zerolog.Logger
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AccessLogMiddleware(deps.AccessLogs, deps.Log))

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Profiles)
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Profiles))

	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.Get)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Deactivate)

	importHandler := NewImportHandler(deps.Importer)
	companies.Post("/:id/imports/customers", importHandler.Customers)
	companies.Post("/:id/imports/items", importHandler.Items)
	companies.Post("/:id/imports/assignments", importHandler.Assignments)

	manufacturers := protected.Group("/manufacturers")
	manufacturerHandler := NewManufacturerHandler(deps.ManufacturerUC)
	manufacturers.Get("/", manufacturerHandler.List)
	manufacturers.Post("/", manufacturerHandler.Create)
	manufacturers.Get("/:id", manufacturerHandler.Get)
	manufacturers.Put("/:id", manufacturerHandler.Update)

	documentHandler := NewDocumentHandler(deps.Documents, deps.Manufacturers)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.Get)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Deactivate)
	customers.Get("/:id/receiving-centers", customerHandler.ListReceivingCenters)
	customers.Get("/:id/invoice", documentHandler.Invoice)
	customers.Get("/:id/statement", documentHandler.Statement)

	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.Get)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Deactivate)
	items.Post("/:id/visibility", itemHandler.GrantVisibility)
	items.Delete("/:id/visibility/:company_id", itemHandler.RevokeVisibility)

	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.Ordering)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/export", orderHandler.ExportCSV)
	orders.Get("/:id", orderHandler.Get)
	orders.Put("/:id", orderHandler.Update)
	orders.Post("/:id/ship", orderHandler.Ship)
	orders.Post("/:id/deliver", orderHandler.Deliver)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	shipments := protected.Group("/shipment-requests")
	shipments.Get("/", orderHandler.ListShipmentRequests)
	shipments.Get("/document", documentHandler.ShippingRequest)
	shipments.Post("/:order_id/ship", orderHandler.RegisterShipment)

	approvals := protected.Group("/approvals")
	approvalHandler := NewApprovalHandler(deps.Approvals)
	approvals.Get("/memberships", approvalHandler.ListMemberships)
	approvals.Get("/memberships/:id", approvalHandler.GetMembership)
	approvals.Post("/memberships/:id/approve", approvalHandler.ApproveMembership)
	approvals.Post("/memberships/:id/reject", approvalHandler.RejectMembership)
	approvals.Get("/orders", approvalHandler.ListOrderApprovals)
	approvals.Get("/orders/:id", approvalHandler.GetOrderApproval)
	approvals.Post("/orders/:id/approve", approvalHandler.ApproveOrder)
	approvals.Post("/orders/:id/reject", approvalHandler.RejectOrder)

	profiles := protected.Group("/profiles")
	profileHandler := NewProfileHandler(deps.ProfileUC)
	profiles.Get("/me", profileHandler.Me)
	profiles.Get("/", profileHandler.List)
	profiles.Get("/:id", profileHandler.Get)
	profiles.Put("/:id", profileHandler.Update)

	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Get("/", paymentHandler.List)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/:id", paymentHandler.Get)
	payments.Put("/:id", paymentHandler.Update)
	payments.Delete("/:id", paymentHandler.Delete)

	issuerHandler := NewIssuerHandler(deps.IssuerUC)
	protected.Get("/issuer-setting", issuerHandler.Get)
	protected.Put("/issuer-setting", issuerHandler.Update)
}
