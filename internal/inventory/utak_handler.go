package inventory

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"kikiks-backend/internal/auth"
	"kikiks-backend/internal/catalog"
	"kikiks-backend/internal/config"
	"kikiks-backend/internal/database"
	"kikiks-backend/internal/models"
	"kikiks-backend/internal/notify"
	"kikiks-backend/internal/utak"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UtakPreviewResponse struct {
	FileName       string                `json:"file_name"`
	DetectedBranch string                `json:"detected_branch"`
	DetectedDate   string                `json:"detected_date"`
	BranchID       *uint                 `json:"branch_id"` // resolved from the detected branch, if it exists
	Matched        []utak.Item           `json:"matched"`
	Unmatched      []utak.Item           `json:"unmatched"`
	Parse          utak.ParseDiagnostics `json:"parse"`
	Dropped        int                   `json:"dropped"` // out-of-domain rows
	Summary        utak.Summary          `json:"summary"`
}

type UtakCommitRequest struct {
	BranchID      uint        `json:"branch_id"`
	FileName      string      `json:"file_name"`
	InventoryDate string      `json:"inventory_date"` // YYYY-MM-DD or empty
	Items         []utak.Item `json:"items"`          // auto-matched plus manually resolved
	TotalRows     int         `json:"total_rows"`
	SkippedCount  int         `json:"skipped_count"` // unmatched rows the operator chose to skip
	DroppedCount  int         `json:"dropped_count"`
}

type UtakCommitResponse struct {
	RunID   string       `json:"run_id"`
	Status  string       `json:"status"`
	Summary utak.Summary `json:"summary"`
	Errors  []string     `json:"errors,omitempty"`
}

// buildDirectory builds the branch directory from branch rows so that Utak
// accounts configured per branch take priority, with the built-in fragments
// as fallback.
func buildDirectory() utak.BranchDirectory {
	dir := utak.DefaultDirectory()

	var branches []models.Branch
	if err := database.DB.Find(&branches).Error; err != nil {
		logrus.WithError(err).Warn("could not load branches for filename detection, using defaults")
		return dir
	}

	accounts := make([]utak.BranchRule, 0, len(branches))
	for _, b := range branches {
		if b.UtakAccount != "" {
			accounts = append(accounts, utak.BranchRule{Match: b.UtakAccount, Branch: b.Name})
		}
	}
	if len(accounts) > 0 {
		dir.Accounts = accounts
	}
	return dir
}

// POST /api/utak/preview  (multipart: file)
// Runs detect -> parse -> classify and returns everything the operator needs
// to resolve unmatched rows before committing. Writes nothing.
func UtakPreviewHandler(cat catalog.Catalog, cfg *config.Config) fiber.Handler {
	matcher := utak.NewMatcher(cat)

	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "A CSV file is required")
		}
		if fileHeader.Size > cfg.MaxUploadMB*1024*1024 {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, "File is too large")
		}

		f, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not open uploaded file")
		}
		defer f.Close()

		content, err := io.ReadAll(f)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file")
		}

		dir := buildDirectory()
		detectedBranch := dir.DetectBranch(fileHeader.Filename)
		detectedDate := utak.DetectDate(fileHeader.Filename)

		var branchID *uint
		if detectedBranch != "" {
			var branch models.Branch
			if err := database.DB.Where("name = ?", detectedBranch).First(&branch).Error; err == nil {
				branchID = &branch.ID
			}
		}

		rows, diag := utak.ParseCSV(string(content))
		cls := matcher.Classify(rows)

		logrus.WithFields(logrus.Fields{
			"file":      fileHeader.Filename,
			"branch":    detectedBranch,
			"rows":      diag.DataRows,
			"matched":   len(cls.Matched),
			"unmatched": len(cls.Unmatched),
			"dropped":   cls.Dropped + diag.DroppedRows,
		}).Info("utak preview")

		return c.JSON(UtakPreviewResponse{
			FileName:       fileHeader.Filename,
			DetectedBranch: detectedBranch,
			DetectedDate:   detectedDate,
			BranchID:       branchID,
			Matched:        cls.Matched,
			Unmatched:      cls.Unmatched,
			Parse:          diag,
			Dropped:        cls.Dropped,
			Summary: utak.Summary{
				Imported:  0, // nothing written yet
				Matched:   len(cls.Matched),
				Unmatched: len(cls.Unmatched),
			},
		})
	}
}

// POST /api/utak/commit
// Validates the finalized item set, reconciles against current stock and
// commits upserts + history + import log in a single transaction. The import
// log is written even when the transaction fails, marked failed, so aborted
// runs stay visible.
func UtakCommitHandler(cfg *config.Config, notifier *notify.Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UtakCommitRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		branchID, err := auth.ResolveBranchID(c, &body.BranchID)
		if err != nil {
			return err
		}

		var branch models.Branch
		if err := database.DB.First(&branch, "id = ?", branchID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Branch not found")
		}

		for i := range body.Items {
			body.Items[i].Code = strings.ToUpper(strings.TrimSpace(body.Items[i].Code))
		}

		validation := utak.Validate(body.Items, branch.Name)
		if !validation.IsValid {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"is_valid": false,
				"errors":   validation.Errors,
			})
		}

		totalRows := body.TotalRows
		if totalRows == 0 {
			totalRows = len(body.Items) + body.SkippedCount
		}

		lookup := func(_ string, code string) int {
			var level models.StockLevel
			if err := database.DB.Where("branch_id = ? AND product_code = ?", branchID, code).
				First(&level).Error; err != nil {
				return 0
			}
			return level.CurrentStock
		}

		now := time.Now()
		result := utak.Reconcile(utak.RunInput{
			Branch:         branch.Name,
			Items:          body.Items,
			TotalRows:      totalRows,
			UnmatchedCount: body.SkippedCount,
			DroppedCount:   body.DroppedCount,
		}, lookup, now)

		runID := uuid.NewString()

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			for _, up := range result.Upserts {
				raw, _ := json.Marshal(up.Raw)

				var level models.StockLevel
				err := tx.Where("branch_id = ? AND product_code = ?", branchID, up.Code).
					First(&level).Error
				if err != nil {
					level = models.StockLevel{BranchID: branchID, ProductCode: up.Code}
				}
				level.CurrentStock = up.CurrentStock
				level.LastSyncSource = up.Source
				level.LastSyncAt = &now
				level.LastSyncRaw = string(raw)
				if err := tx.Save(&level).Error; err != nil {
					return err
				}
			}

			for _, h := range result.History {
				raw, _ := json.Marshal(h.Raw)
				entry := models.StockHistory{
					BranchID:    branchID,
					ProductCode: h.Code,
					Before:      h.Before,
					Change:      h.Change,
					After:       h.After,
					Source:      utak.SourceUtakImport,
					ImportRunID: runID,
					RawRow:      string(raw),
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			}

			return tx.Create(importLogRow(runID, &branch, body, result, models.ImportStatus(result.Log.Status), nil)).Error
		})

		if txErr != nil {
			logrus.WithError(txErr).WithField("run_id", runID).Error("utak commit failed, rolled back")
			// keep a failed log row for the audit trail; best-effort
			failLog := importLogRow(runID, &branch, body, result, models.ImportStatusFailed, []string{txErr.Error()})
			if err := database.DB.Create(failLog).Error; err != nil {
				logrus.WithError(err).Warn("could not write failed import log")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Import failed, no changes were applied")
		}

		logrus.WithFields(logrus.Fields{
			"run_id":   runID,
			"branch":   branch.Name,
			"imported": result.Summary.Imported,
			"status":   result.Log.Status,
		}).Info("utak import committed")

		notifier.SendImportResult(branch.Name, body.InventoryDate,
			result.Summary.Imported, result.Summary.Unmatched, result.Log.Status)

		return c.JSON(UtakCommitResponse{
			RunID:   runID,
			Status:  result.Log.Status,
			Summary: result.Summary,
		})
	}
}

func importLogRow(runID string, branch *models.Branch, body UtakCommitRequest, result utak.ReconcileResult, status models.ImportStatus, errs []string) *models.ImportLog {
	all := append(append([]string{}, result.Log.Errors...), errs...)
	errsJSON, _ := json.Marshal(all)

	return &models.ImportLog{
		RunID:          runID,
		BranchID:       &branch.ID,
		Location:       branch.Name,
		FileName:       body.FileName,
		InventoryDate:  body.InventoryDate,
		TotalRows:      result.Log.TotalRows,
		MatchedCount:   result.Log.MatchedCount,
		UnmatchedCount: result.Log.UnmatchedCount,
		DroppedCount:   result.Log.DroppedCount,
		Status:         status,
		Errors:         string(errsJSON),
	}
}
