package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/palak-raj09/eil-project/internal/models"
	"github.com/palak-raj09/eil-project/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ReportHandler 登录审计导出（仅管理层可用，由路由上的 RequireRole 保证）
type ReportHandler struct {
	DB *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

func (h *ReportHandler) loadAttempts() ([]models.LoginAttempt, error) {
	var attempts []models.LoginAttempt
	err := h.DB.Order("created_at DESC").Limit(10000).Find(&attempts).Error
	return attempts, err
}

// ExportLoginAttemptsCSV 导出登录审计为 CSV
func (h *ReportHandler) ExportLoginAttemptsCSV(c *gin.Context) {
	attempts, err := h.loadAttempts()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"login_attempts_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Identifier", "IP", "Result", "Time"})

	for _, a := range attempts {
		result := "failure"
		if a.Successful {
			result = "success"
		}
		writer.Write([]string{
			a.Email,
			a.IP,
			result,
			a.CreatedAt.Format(time.RFC3339),
		})
	}
}

// ExportLoginAttemptsXLSX 导出登录审计为 XLSX
func (h *ReportHandler) ExportLoginAttemptsXLSX(c *gin.Context) {
	attempts, err := h.loadAttempts()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		return
	}

	f := excelize.NewFile()
	sheetName := "Login Attempts"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		return
	}
	f.SetActiveSheet(index)

	headers := []string{"Identifier", "IP", "Result", "Time"}
	for i, hv := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, hv)
	}

	for idx, a := range attempts {
		row := idx + 2

		result := "failure"
		if a.Successful {
			result = "success"
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), a.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), a.IP)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), result)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), a.CreatedAt.Format(time.RFC3339))
	}

	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "B", 18)
	f.SetColWidth(sheetName, "C", "C", 10)
	f.SetColWidth(sheetName, "D", "D", 24)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"login_attempts_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
	}
}
