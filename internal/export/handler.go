// Package export generuje XLSX prehledy pro ucetni a reporting.
package export

import (
	"fmt"
	"time"

	"pronajem-backend/internal/database"
	"pronajem-backend/internal/listing"
	"pronajem-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// GET /api/export/properties.xlsx
func ExportPropertiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := listing.Parse(c)

		var properties []models.Property
		q := listing.Scope(database.DB.Model(&models.Property{}), params.IncludeArchived)
		if err := q.Preload("Landlord").Order("name").Find(&properties).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nepodarilo se nacist nemovitosti")
		}

		f := excelize.NewFile()
		defer f.Close()

		header := []interface{}{"ID", "Nazev", "Typ", "Ulice", "Cislo popisne", "Mesto", "PSC",
			"Katastralni uzemi", "Parcelni cislo", "Plocha pozemku", "Zastavena plocha", "Pronajimatel", "Stav"}
		if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Export se nepodarilo sestavit")
		}

		for i, p := range properties {
			landlord := ""
			if p.Landlord != nil {
				landlord = p.Landlord.DisplayName
			}
			row := []interface{}{p.ID, p.Name, p.PropertyType, p.Street, p.HouseNumber, p.City, p.Zip,
				p.CadastreArea, p.ParcelNumber, p.LandArea, p.BuiltArea, landlord, statusLabel(p.IsArchived)}
			cell := fmt.Sprintf("A%d", i+2)
			if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Export se nepodarilo sestavit")
			}
		}

		return sendWorkbook(c, f, "nemovitosti")
	}
}

// GET /api/export/contracts.xlsx
func ExportContractsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := listing.Parse(c)

		var contracts []models.Contract
		q := listing.Scope(database.DB.Model(&models.Contract{}), params.IncludeArchived)
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		err := q.Preload("Landlord").Preload("Tenant").
			Preload("Property").Preload("Unit").
			Order("start_date DESC").Find(&contracts).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nepodarilo se nacist smlouvy")
		}

		f := excelize.NewFile()
		defer f.Close()

		header := []interface{}{"ID", "Cislo smlouvy", "Pronajimatel", "Najemnik", "Nemovitost", "Jednotka",
			"Stav", "Najemne", "Kauce", "Den splatnosti", "Zacatek", "Konec"}
		if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Export se nepodarilo sestavit")
		}

		for i, ct := range contracts {
			row := []interface{}{ct.ID, ct.ContractNumber, ct.Landlord.DisplayName, ct.Tenant.DisplayName,
				ct.Property.Name, ct.Unit.Label, ct.Status, ct.RentAmount, ct.DepositAmount,
				ct.PaymentDay, formatDate(&ct.StartDate), formatDate(ct.EndDate)}
			cell := fmt.Sprintf("A%d", i+2)
			if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Export se nepodarilo sestavit")
			}
		}

		return sendWorkbook(c, f, "smlouvy")
	}
}

func sendWorkbook(c *fiber.Ctx, f *excelize.File, baseName string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Export se nepodarilo zapsat")
	}

	fileName := fmt.Sprintf("%s_%s.xlsx", baseName, time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))
	return c.Send(buf.Bytes())
}

func statusLabel(archived bool) string {
	if archived {
		return "archivovano"
	}
	return "aktivni"
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("02.01.2006")
}
