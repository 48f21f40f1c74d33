package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmlink/farm-marketplace/internal/model"
	"github.com/farmlink/farm-marketplace/internal/repository"
	"github.com/farmlink/farm-marketplace/internal/utils"
)

type FarmStore interface {
	List(ctx context.Context, ownerID string) ([]model.Farm, error)
	GetByID(ctx context.Context, id string) (model.Farm, error)
	Create(ctx context.Context, f *model.Farm) error
}

type CropStore interface {
	ListByFarm(ctx context.Context, farmID string) ([]model.Crop, error)
	Create(ctx context.Context, c *model.Crop) error
}

type SoilRecordStore interface {
	LatestByFarm(ctx context.Context, farmID string) (model.SoilRecord, error)
	Create(ctx context.Context, s *model.SoilRecord) error
}

type EquipmentStore interface {
	ListByFarm(ctx context.Context, farmID string) ([]model.Equipment, error)
	Create(ctx context.Context, e *model.Equipment) error
}

// FarmHandler bundles the farm-scoped stores: farms plus their child
// records (crops, soil records, equipment).
type FarmHandler struct {
	Farms FarmStore
	Crops CropStore
	Soil  SoilRecordStore
	Equip EquipmentStore
}

func NewFarmHandler(f FarmStore, c CropStore, s SoilRecordStore, e EquipmentStore) *FarmHandler {
	return &FarmHandler{Farms: f, Crops: c, Soil: s, Equip: e}
}

// List handles GET /api/farm/ with an optional owner_id filter.
func (h *FarmHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	farms, err := h.Farms.List(ctx, c.QueryParam("owner_id"))
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "could not list farms")
	}
	out := make([]model.FarmView, 0, len(farms))
	for _, f := range farms {
		out = append(out, f.View())
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/farm/:id.
func (h *FarmHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	f, err := h.Farms.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, "Farm not found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	return c.JSON(http.StatusOK, f.View())
}

// Create handles POST /api/farm/.
func (h *FarmHandler) Create(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if err := utils.RequireFields(payload, "name", "location", "size", "owner_id"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}

	f := model.Farm{}
	if f.Name, err = utils.StringField(payload, "name"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if f.Location, err = utils.StringField(payload, "location"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if f.Size, err = utils.FloatField(payload, "size"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if f.Size <= 0 {
		return errJSON(c, http.StatusBadRequest, "size must be a positive number")
	}
	if f.OwnerID, err = utils.StringField(payload, "owner_id"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Farms.Create(ctx, &f); err != nil {
		if errors.Is(err, repository.ErrMissingParent) {
			return errJSON(c, http.StatusNotFound, "User not found")
		}
		return errJSON(c, http.StatusInternalServerError, "could not create farm")
	}
	return c.JSON(http.StatusCreated, f.View())
}

// resolveFarm checks the :id path segment against the farms table so
// nested routes can 404 before touching child tables. When ok is false
// the response has already been written and err is what the handler
// should return.
func (h *FarmHandler) resolveFarm(ctx context.Context, c echo.Context) (farmID string, ok bool, err error) {
	farmID = c.Param("id")
	if _, lookupErr := h.Farms.GetByID(ctx, farmID); lookupErr != nil {
		if errors.Is(lookupErr, repository.ErrNotFound) {
			return "", false, errJSON(c, http.StatusNotFound, "Farm not found")
		}
		return "", false, errJSON(c, http.StatusInternalServerError, "db error")
	}
	return farmID, true, nil
}

// ListCrops handles GET /api/farm/:id/crops.
func (h *FarmHandler) ListCrops(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	farmID, ok, err := h.resolveFarm(ctx, c)
	if !ok {
		return err
	}
	crops, err := h.Crops.ListByFarm(ctx, farmID)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "could not list crops")
	}
	out := make([]model.CropView, 0, len(crops))
	for _, cr := range crops {
		out = append(out, cr.View())
	}
	return c.JSON(http.StatusOK, out)
}

// CreateCrop handles POST /api/farm/:id/crops.
func (h *FarmHandler) CreateCrop(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	farmID, ok, err := h.resolveFarm(ctx, c)
	if !ok {
		return err
	}
	payload, err := bindPayload(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if err := utils.RequireFields(payload, "name", "area"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}

	cr := model.Crop{FarmID: farmID, Status: "Planning"}
	if cr.Name, err = utils.StringField(payload, "name"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if cr.Area, err = utils.FloatField(payload, "area"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if v, ok := payload["status"]; ok && v != nil {
		if cr.Status, err = utils.StringField(payload, "status"); err != nil {
			return errJSON(c, http.StatusBadRequest, err.Error())
		}
	}
	if cr.PlantedDate, err = utils.ParseDate(payload["planted_date"], "planted_date"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if cr.HarvestDate, err = utils.ParseDate(payload["harvest_date"], "harvest_date"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}

	if err := h.Crops.Create(ctx, &cr); err != nil {
		if errors.Is(err, repository.ErrMissingParent) {
			return errJSON(c, http.StatusNotFound, "Farm not found")
		}
		return errJSON(c, http.StatusInternalServerError, "could not create crop")
	}
	return c.JSON(http.StatusCreated, cr.View())
}

// GetSoil handles GET /api/farm/:id/soil and returns the latest record.
func (h *FarmHandler) GetSoil(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	farmID, ok, err := h.resolveFarm(ctx, c)
	if !ok {
		return err
	}
	s, err := h.Soil.LatestByFarm(ctx, farmID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, "No soil records found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	return c.JSON(http.StatusOK, s.View())
}

// CreateSoil handles POST /api/farm/:id/soil.
func (h *FarmHandler) CreateSoil(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	farmID, ok, err := h.resolveFarm(ctx, c)
	if !ok {
		return err
	}
	payload, err := bindPayload(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if err := utils.RequireFields(payload, "ph", "nitrogen", "phosphorus", "potassium", "organic_matter"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}

	s := model.SoilRecord{FarmID: farmID}
	if s.PH, err = utils.FloatField(payload, "ph"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if s.Nitrogen, err = utils.FloatField(payload, "nitrogen"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if s.Phosphorus, err = utils.FloatField(payload, "phosphorus"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if s.Potassium, err = utils.FloatField(payload, "potassium"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if s.OrganicMatter, err = utils.FloatField(payload, "organic_matter"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	recordDate, err := utils.ParseDate(payload["record_date"], "record_date")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if recordDate != nil {
		s.RecordDate = *recordDate
	}

	if err := h.Soil.Create(ctx, &s); err != nil {
		if errors.Is(err, repository.ErrMissingParent) {
			return errJSON(c, http.StatusNotFound, "Farm not found")
		}
		return errJSON(c, http.StatusInternalServerError, "could not create soil record")
	}
	return c.JSON(http.StatusCreated, s.View())
}

// ListEquipment handles GET /api/farm/:id/equipment.
func (h *FarmHandler) ListEquipment(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	farmID, ok, err := h.resolveFarm(ctx, c)
	if !ok {
		return err
	}
	items, err := h.Equip.ListByFarm(ctx, farmID)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "could not list equipment")
	}
	out := make([]model.EquipmentView, 0, len(items))
	for _, e := range items {
		out = append(out, e.View())
	}
	return c.JSON(http.StatusOK, out)
}

// CreateEquipment handles POST /api/farm/:id/equipment.
func (h *FarmHandler) CreateEquipment(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	farmID, ok, err := h.resolveFarm(ctx, c)
	if !ok {
		return err
	}
	payload, err := bindPayload(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if err := utils.RequireFields(payload, "name"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}

	e := model.Equipment{FarmID: farmID, Status: "Operational"}
	if e.Name, err = utils.StringField(payload, "name"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if v, ok := payload["status"]; ok && v != nil {
		if e.Status, err = utils.StringField(payload, "status"); err != nil {
			return errJSON(c, http.StatusBadRequest, err.Error())
		}
	}
	if e.LastMaintenance, err = utils.ParseDate(payload["last_maintenance"], "last_maintenance"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if e.NextMaintenance, err = utils.ParseDate(payload["next_maintenance"], "next_maintenance"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}

	if err := h.Equip.Create(ctx, &e); err != nil {
		if errors.Is(err, repository.ErrMissingParent) {
			return errJSON(c, http.StatusNotFound, "Farm not found")
		}
		return errJSON(c, http.StatusInternalServerError, "could not create equipment")
	}
	return c.JSON(http.StatusCreated, e.View())
}
