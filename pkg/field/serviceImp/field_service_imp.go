package serviceImp

import (
	"fmt"
	"log"
	"strings"

	"cropwater/entities"
	"cropwater/pkg/apierr"
	repo "cropwater/pkg/field/repository"
	"cropwater/pkg/field/service"
	"cropwater/pkg/reference"
	"cropwater/pkg/waterbalance"
)

type fieldSvc struct {
	r      repo.FieldRepository
	tables *reference.Tables
}

func NewFieldService(r repo.FieldRepository, t *reference.Tables) service.FieldService {
	return &fieldSvc{r: r, tables: t}
}

// CreateField stores canonical crop and soil names. Names the tables do not
// know are kept as given; planning substitutes the defaults and says so.
func (s *fieldSvc) CreateField(f *entities.Field) (*entities.Field, error) {
	if _, err := waterbalance.ParseDate(f.PlantingDate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(f.CropType) == "" || strings.TrimSpace(f.SoilType) == "" {
		return nil, fmt.Errorf("%w: crop_type and soil_type are required", apierr.ErrBadRequest)
	}
	if f.AreaAcres < 0 {
		return nil, fmt.Errorf("%w: area_acres must not be negative", apierr.ErrBadRequest)
	}
	if f.Latitude != nil && (*f.Latitude < -90 || *f.Latitude > 90) {
		return nil, fmt.Errorf("%w: latitude %.4f out of range", apierr.ErrBadRequest, *f.Latitude)
	}
	var ok bool
	if f.CropType, ok = s.tables.CanonicalCrop(f.CropType); !ok {
		log.Printf("[field] unknown crop %q for user %s", f.CropType, f.UserID)
	}
	if f.SoilType, ok = s.tables.CanonicalSoil(f.SoilType); !ok {
		log.Printf("[field] unknown soil %q for user %s", f.SoilType, f.UserID)
	}
	if err := s.r.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *fieldSvc) GetFieldByID(id uint, uid string) (*entities.Field, error) {
	return s.r.FindByID(id, uid)
}

func (s *fieldSvc) ListFields(uid string) ([]entities.Field, error) {
	return s.r.ListByUser(uid)
}
