package model

import "time"

// Farm mirrors the 'farms' table. Every farm belongs to a single owner
// and is the parent of crops, soil records and equipment.
type Farm struct {
	ID        string
	Name      string
	Location  string
	Size      float64
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type FarmView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	Size      float64 `json:"size"`
	OwnerID   string  `json:"owner_id"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func (f Farm) View() FarmView {
	return FarmView{
		ID:        f.ID,
		Name:      f.Name,
		Location:  f.Location,
		Size:      f.Size,
		OwnerID:   f.OwnerID,
		CreatedAt: Timestamp(f.CreatedAt),
		UpdatedAt: Timestamp(f.UpdatedAt),
	}
}

// Crop mirrors the 'crops' table. The two date fields are optional and
// stay nil until the crop is actually planted or scheduled for harvest.
type Crop struct {
	ID          string
	FarmID      string
	Name        string
	Area        float64
	Status      string
	PlantedDate *time.Time
	HarvestDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CropView struct {
	ID          string  `json:"id"`
	FarmID      string  `json:"farm_id"`
	Name        string  `json:"name"`
	Area        float64 `json:"area"`
	Status      string  `json:"status"`
	PlantedDate *string `json:"planted_date"`
	HarvestDate *string `json:"harvest_date"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func (c Crop) View() CropView {
	return CropView{
		ID:          c.ID,
		FarmID:      c.FarmID,
		Name:        c.Name,
		Area:        c.Area,
		Status:      c.Status,
		PlantedDate: DateString(c.PlantedDate),
		HarvestDate: DateString(c.HarvestDate),
		CreatedAt:   Timestamp(c.CreatedAt),
		UpdatedAt:   Timestamp(c.UpdatedAt),
	}
}

// SoilRecord mirrors the 'soil_records' table. Records are append-only
// measurements, so there is no updated_at column.
type SoilRecord struct {
	ID            string
	FarmID        string
	PH            float64
	Nitrogen      float64
	Phosphorus    float64
	Potassium     float64
	OrganicMatter float64
	RecordDate    time.Time
	CreatedAt     time.Time
}

type SoilRecordView struct {
	ID            string  `json:"id"`
	FarmID        string  `json:"farm_id"`
	PH            float64 `json:"ph"`
	Nitrogen      float64 `json:"nitrogen"`
	Phosphorus    float64 `json:"phosphorus"`
	Potassium     float64 `json:"potassium"`
	OrganicMatter float64 `json:"organic_matter"`
	RecordDate    string  `json:"record_date"`
	CreatedAt     string  `json:"created_at"`
}

func (s SoilRecord) View() SoilRecordView {
	return SoilRecordView{
		ID:            s.ID,
		FarmID:        s.FarmID,
		PH:            s.PH,
		Nitrogen:      s.Nitrogen,
		Phosphorus:    s.Phosphorus,
		Potassium:     s.Potassium,
		OrganicMatter: s.OrganicMatter,
		RecordDate:    s.RecordDate.Format(dateLayout),
		CreatedAt:     Timestamp(s.CreatedAt),
	}
}

// Equipment mirrors the 'equipment' table.
type Equipment struct {
	ID              string
	FarmID          string
	Name            string
	Status          string
	LastMaintenance *time.Time
	NextMaintenance *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type EquipmentView struct {
	ID              string  `json:"id"`
	FarmID          string  `json:"farm_id"`
	Name            string  `json:"name"`
	Status          string  `json:"status"`
	LastMaintenance *string `json:"last_maintenance"`
	NextMaintenance *string `json:"next_maintenance"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func (e Equipment) View() EquipmentView {
	return EquipmentView{
		ID:              e.ID,
		FarmID:          e.FarmID,
		Name:            e.Name,
		Status:          e.Status,
		LastMaintenance: DateString(e.LastMaintenance),
		NextMaintenance: DateString(e.NextMaintenance),
		CreatedAt:       Timestamp(e.CreatedAt),
		UpdatedAt:       Timestamp(e.UpdatedAt),
	}
}
