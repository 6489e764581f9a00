package database

import (
	"log"

	"pronajem-backend/internal/config"
	"pronajem-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Nepodarilo se pripojit k databazi: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Migrace selhala: %v", err)
	}

	log.Println("Databaze pripojena, migrace dokoncena.")
}

// Migrate provede AutoMigrate vsech modelu, zalozi ciselnikove tabulky
// a read-only pohledy. Vola se i z testu nad sqlite.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Subject{},
		&models.User{},
		&models.UserInvite{},
		&models.Property{},
		&models.Unit{},
		&models.Contract{},
		&models.EquipmentCatalog{},
		&models.UnitEquipment{},
		&models.PropertyEquipment{},
		&models.ServiceCatalog{},
		&models.UnitService{},
		&models.BankAccount{},
		&models.Document{},
		&models.DocumentVersion{},
		&models.SubjectRole{},
		&models.SubjectPermission{},
		&models.UIViewPref{},
		&models.AuditLog{},
	)
	if err != nil {
		return err
	}

	// Ciselniky sdili jeden model, tabulka se dosazuje za behu
	for _, table := range models.RefTypeTables {
		if err := db.Table(table).AutoMigrate(&models.RefType{}); err != nil {
			return err
		}
	}

	return createViews(db)
}

// createViews zaklada read-only pohledy. DROP + CREATE misto CREATE OR
// REPLACE kvuli sqlite v testech.
func createViews(db *gorm.DB) error {
	views := []struct {
		name string
		def  string
	}{
		{
			"v_document_latest_version",
			`SELECT d.id AS document_id, d.entity_type, d.entity_id, d.title,
				d.description, d.is_archived, d.created_at, d.updated_at,
				dv.id AS version_id, dv.version_number, dv.file_name,
				dv.content_type, dv.size_bytes, dv.storage_path,
				dv.created_at AS uploaded_at
			FROM documents d
			JOIN document_versions dv ON dv.document_id = d.id
				AND dv.version_number = (
					SELECT MAX(v2.version_number)
					FROM document_versions v2
					WHERE v2.document_id = d.id)`,
		},
		{
			"v_unit_equipment_list",
			`SELECT ue.id, ue.unit_id, ue.equipment_id,
				ec.name AS equipment_name, ec.equipment_type,
				ue.quantity, ue.state,
				COALESCE(ue.amount, ec.price) AS amount,
				ue.note, ue.is_archived
			FROM unit_equipment ue
			JOIN equipment_catalog ec ON ec.id = ue.equipment_id`,
		},
		{
			"v_property_equipment_list",
			`SELECT pe.id, pe.property_id, pe.equipment_id,
				ec.name AS equipment_name, ec.equipment_type,
				pe.quantity, pe.state,
				COALESCE(pe.amount, ec.price) AS amount,
				pe.note, pe.is_archived
			FROM property_equipment pe
			JOIN equipment_catalog ec ON ec.id = pe.equipment_id`,
		},
		{
			"v_unit_services_list",
			`SELECT us.id, us.unit_id, us.service_id,
				sc.name AS service_name, sc.billing_unit,
				us.quantity,
				COALESCE(us.amount, sc.price) AS amount,
				us.note, us.is_archived
			FROM unit_services us
			JOIN service_catalog sc ON sc.id = us.service_id`,
		},
	}

	for _, v := range views {
		if err := db.Exec("DROP VIEW IF EXISTS " + v.name).Error; err != nil {
			return err
		}
		if err := db.Exec("CREATE VIEW " + v.name + " AS " + v.def).Error; err != nil {
			return err
		}
	}
	return nil
}
