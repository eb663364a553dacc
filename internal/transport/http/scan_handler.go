package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vigiliot/vigil-server/internal/service"
)

type ScanHandler struct {
	scans *service.ScanService
	auth  *service.AuthService
}

func RegisterScans(e *echo.Echo, scans *service.ScanService, auth *service.AuthService) {
	handler := &ScanHandler{scans: scans, auth: auth}

	e.POST("/save-scan", handler.saveScan)
	e.GET("/scan-reports/:user_id", handler.listReports)
	e.GET("/scan-reports/:report_id/devices", handler.listDevices)
	e.DELETE("/delete-scan/:id", handler.deleteScan)
}

func (h *ScanHandler) saveScan(c echo.Context) error {
	var req SaveScanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failure("Invalid request body!"))
	}

	ownerID := req.UserID
	if ownerID <= 0 {
		// older wizard builds omit user_id and rely on the session
		if user, err := h.auth.CheckSession(c.Request().Context(), sessionToken(c)); err == nil {
			ownerID = user.UserID
		}
	}

	input := service.SaveScanInput{
		OwnerID:          ownerID,
		Title:            req.Title,
		Targets:          req.Targets,
		Exclusions:       req.Exclusions,
		DetectionOptions: req.DetectionOptions,
	}
	if req.ScannedAt != "" {
		ts, err := parseScannedAt(req.ScannedAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, failure("Invalid scanned_at timestamp!"))
		}
		input.ScannedAt = ts
	}
	for _, d := range req.Devices {
		input.Devices = append(input.Devices, service.DeviceInput{
			Name:             d.DeviceName,
			IPAddress:        d.IPAddress,
			Services:         d.Services,
			ProtocolWarnings: d.ProtocolWarnings,
			Notes:            d.Notes,
			RemediationTips:  d.RemediationTips,
		})
	}

	reportID, err := h.scans.SaveScan(c.Request().Context(), input)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, Envelope{"success": true, "report_id": reportID})
	case errors.Is(err, service.ErrMissingField):
		return c.JSON(http.StatusBadRequest, failure("Missing required fields!"))
	case errors.Is(err, service.ErrInvalidTarget):
		return c.JSON(http.StatusBadRequest, failure(err.Error()))
	default:
		c.Logger().Errorf("save-scan: %v", err)
		return c.JSON(http.StatusInternalServerError, failure("Failed to save scan report."))
	}
}

func (h *ScanHandler) listReports(c echo.Context) error {
	ownerID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || ownerID <= 0 {
		return c.JSON(http.StatusBadRequest, failure("Invalid user id!"))
	}

	reports, err := h.scans.ListScans(c.Request().Context(), ownerID)
	if err != nil {
		c.Logger().Errorf("scan-reports: %v", err)
		return c.JSON(http.StatusInternalServerError, failure("Failed to load scan reports."))
	}

	payload := make([]ReportResponse, 0, len(reports))
	for _, report := range reports {
		payload = append(payload, buildReportResponse(report))
	}
	return c.JSON(http.StatusOK, Envelope{"success": true, "reports": payload})
}

func (h *ScanHandler) listDevices(c echo.Context) error {
	reportID, err := strconv.ParseInt(c.Param("report_id"), 10, 64)
	if err != nil || reportID <= 0 {
		return c.JSON(http.StatusBadRequest, failure("Invalid report id!"))
	}

	devices, err := h.scans.ListDevices(c.Request().Context(), reportID)
	if err != nil {
		c.Logger().Errorf("scan-report devices: %v", err)
		return c.JSON(http.StatusInternalServerError, failure("Failed to load devices."))
	}

	payload := make([]DeviceResponse, 0, len(devices))
	for _, device := range devices {
		payload = append(payload, buildDeviceResponse(device))
	}
	return c.JSON(http.StatusOK, Envelope{"success": true, "devices": payload})
}

func (h *ScanHandler) deleteScan(c echo.Context) error {
	reportID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reportID <= 0 {
		return c.JSON(http.StatusBadRequest, failure("Invalid report id!"))
	}

	err = h.scans.DeleteScan(c.Request().Context(), reportID)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, Envelope{"success": true, "message": "Scan report deleted successfully!"})
	case errors.Is(err, service.ErrReportNotFound):
		return c.JSON(http.StatusNotFound, failure("Report not found"))
	default:
		c.Logger().Errorf("delete-scan: %v", err)
		return c.JSON(http.StatusInternalServerError, failure("Failed to delete scan report."))
	}
}
