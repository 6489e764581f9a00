package main

import (
	"log"
	"strings"

	"pronajem-backend/internal/attachment"
	"pronajem-backend/internal/audit"
	"pronajem-backend/internal/auth"
	"pronajem-backend/internal/catalog"
	"pronajem-backend/internal/config"
	"pronajem-backend/internal/contract"
	"pronajem-backend/internal/database"
	"pronajem-backend/internal/export"
	"pronajem-backend/internal/invite"
	"pronajem-backend/internal/logger"
	"pronajem-backend/internal/models"
	"pronajem-backend/internal/prefs"
	"pronajem-backend/internal/property"
	"pronajem-backend/internal/proxy"
	"pronajem-backend/internal/reftype"
	"pronajem-backend/internal/section"
	"pronajem-backend/internal/storage"
	"pronajem-backend/internal/subject"
	"pronajem-backend/internal/unit"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	database.Init(cfg)

	store, err := storage.NewDiskStore(cfg.StorageRoot, cfg.StorageBucket, cfg.JWTSecret, zlog)
	if err != nil {
		zlog.Fatal("uloziste se nepodarilo inicializovat", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // prilohy
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			zlog.Error("neocekavana chyba", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Neocekavana chyba serveru",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Verejne routy
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/accept-invite", auth.AcceptInviteHandler(cfg))
	api.Get("/files/signed", storage.ServeSignedFileHandler(store))

	// Chranene routy
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Administrace
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/invites", invite.CreateInviteHandler())
	adminRoutes.Get("/invites", invite.ListInvitesHandler())

	// Subjekty
	protected.Get("/subjects", subject.ListSubjectsHandler())
	protected.Post("/subjects", subject.CreateSubjectHandler())
	protected.Get("/subjects/:id", subject.GetSubjectHandler())
	protected.Put("/subjects/:id", subject.UpdateSubjectHandler())
	protected.Delete("/subjects/:id", subject.ArchiveSubjectHandler())
	protected.Post("/subjects/check-duplicates", auth.RequireRole(models.RoleAdmin), subject.CheckDuplicatesHandler())

	protected.Get("/subjects/:id/roles", subject.ListSubjectRolesHandler())
	protected.Post("/subjects/:id/roles", subject.AssignSubjectRoleHandler())
	protected.Delete("/subjects/:id/roles/:code", subject.RemoveSubjectRoleHandler())
	protected.Get("/subjects/:id/permissions", subject.ListSubjectPermissionsHandler())
	protected.Post("/subjects/:id/permissions", subject.AssignSubjectPermissionHandler())
	protected.Delete("/subjects/:id/permissions/:code", subject.RemoveSubjectPermissionHandler())

	protected.Get("/subjects/:id/bank-accounts", subject.ListBankAccountsHandler())
	protected.Post("/subjects/:id/bank-accounts", subject.CreateBankAccountHandler())
	protected.Put("/bank-accounts/:id", subject.UpdateBankAccountHandler())
	protected.Delete("/bank-accounts/:id", subject.ArchiveBankAccountHandler())

	// Nemovitosti
	protected.Get("/properties", property.ListPropertiesHandler())
	protected.Post("/properties", property.CreatePropertyHandler())
	protected.Get("/properties/:id", property.GetPropertyHandler())
	protected.Put("/properties/:id", property.UpdatePropertyHandler())
	protected.Delete("/properties/:id", property.ArchivePropertyHandler())

	protected.Get("/properties/:id/equipment", property.ListPropertyEquipmentHandler())
	protected.Post("/properties/:id/equipment", property.AssignPropertyEquipmentHandler())
	protected.Put("/properties/:id/equipment/:equipmentId", property.UpdatePropertyEquipmentHandler())
	protected.Delete("/properties/:id/equipment/:equipmentId", property.RemovePropertyEquipmentHandler())

	// Jednotky
	protected.Get("/units", unit.ListUnitsHandler())
	protected.Post("/units", unit.CreateUnitHandler())
	protected.Get("/units/:id", unit.GetUnitHandler())
	protected.Put("/units/:id", unit.UpdateUnitHandler())
	protected.Delete("/units/:id", unit.ArchiveUnitHandler())

	protected.Get("/units/:id/equipment", unit.ListUnitEquipmentHandler())
	protected.Post("/units/:id/equipment", unit.AssignUnitEquipmentHandler())
	protected.Put("/units/:id/equipment/:equipmentId", unit.UpdateUnitEquipmentHandler())
	protected.Delete("/units/:id/equipment/:equipmentId", unit.RemoveUnitEquipmentHandler())

	protected.Get("/units/:id/services", unit.ListUnitServicesHandler())
	protected.Post("/units/:id/services", unit.AssignUnitServiceHandler())
	protected.Put("/units/:id/services/:serviceId", unit.UpdateUnitServiceHandler())
	protected.Delete("/units/:id/services/:serviceId", unit.RemoveUnitServiceHandler())

	// Smlouvy
	protected.Get("/contracts", contract.ListContractsHandler())
	protected.Post("/contracts", contract.CreateContractHandler())
	protected.Get("/contracts/:id", contract.GetContractHandler())
	protected.Put("/contracts/:id", contract.UpdateContractHandler())
	protected.Delete("/contracts/:id", contract.ArchiveContractHandler())

	// Katalogy vybaveni a sluzeb
	protected.Get("/equipment-catalog", catalog.ListEquipmentHandler())
	protected.Post("/equipment-catalog", catalog.CreateEquipmentHandler())
	protected.Put("/equipment-catalog/:id", catalog.UpdateEquipmentHandler())
	protected.Delete("/equipment-catalog/:id", catalog.ArchiveEquipmentHandler())

	protected.Get("/service-catalog", catalog.ListServicesHandler())
	protected.Post("/service-catalog", catalog.CreateServiceHandler())
	protected.Put("/service-catalog/:id", catalog.UpdateServiceHandler())
	protected.Delete("/service-catalog/:id", catalog.ArchiveServiceHandler())

	// Ciselniky; zapisy jen pro admina
	adminOnly := auth.RequireRole(models.RoleAdmin)
	protected.Get("/types/:table", reftype.ListTypesHandler())
	protected.Post("/types/:table", adminOnly, reftype.CreateTypeHandler())
	protected.Put("/types/:table/:code", adminOnly, reftype.UpdateTypeHandler())
	protected.Delete("/types/:table/:code", adminOnly, reftype.DeactivateTypeHandler())

	// Sekce detailu
	protected.Get("/modules/:module/sections", section.ResolveSectionsHandler())

	// Prilohy a verze dokumentu
	protected.Get("/attachments", attachment.ListAttachmentsHandler())
	protected.Post("/attachments", attachment.CreateAttachmentHandler(store))
	protected.Get("/attachments/:id/versions", attachment.ListAttachmentVersionsHandler())
	protected.Post("/attachments/:id/versions", attachment.AddAttachmentVersionHandler(store))
	protected.Put("/attachments/:id", attachment.UpdateAttachmentHandler())
	protected.Delete("/attachments/:id", attachment.ArchiveAttachmentHandler())
	protected.Get("/attachments/:id/url", attachment.GetAttachmentSignedURLHandler(store))

	// Proxy na externi sluzby
	protected.Get("/address-search", proxy.AddressSearchHandler(cfg, zlog))
	protected.Get("/place-details", proxy.PlaceDetailsHandler(cfg, zlog))
	protected.Get("/ares", proxy.AresLookupHandler(cfg, zlog))

	// Uzivatelska nastaveni UI
	protected.Get("/prefs", prefs.ListPrefsHandler())
	protected.Get("/prefs/history/:field", prefs.GetHistoryHandler())
	protected.Post("/prefs/history/:field", prefs.AddHistoryHandler())
	protected.Get("/prefs/:key", prefs.GetPrefHandler())
	protected.Put("/prefs/:key", prefs.PutPrefHandler())

	// Exporty
	protected.Get("/export/properties.xlsx", export.ExportPropertiesHandler())
	protected.Get("/export/contracts.xlsx", export.ExportContractsHandler())

	// Auditni zaznamy
	protected.Get("/audit-logs", auth.RequireRole(models.RoleAdmin), audit.ListAuditLogsHandler())

	zlog.Info("server bezi", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		zlog.Fatal("server spadl", zap.Error(err))
	}
}
