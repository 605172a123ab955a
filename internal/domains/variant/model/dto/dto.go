package dto

import (
	"github.com/google/uuid"

	"bookit/internal/domains/variant/model"
	gDto "bookit/shared/dto"
	gModel "bookit/shared/model"
	"bookit/shared/timezone"
)

type CreateVariantRequest struct {
	Name            string  `json:"name"             validate:"required,max=100"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=1,max=1439"`
	Price           float64 `json:"price"            validate:"min=0"`
	Active          *bool   `json:"active"           validate:"omitempty"`
}

func (c *CreateVariantRequest) ToModel(storeID, roomID, user string) model.Variant {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Variant{
		ID:              uuid.NewString(),
		StoreID:         storeID,
		RoomID:          roomID,
		Name:            c.Name,
		DurationMinutes: c.DurationMinutes,
		Price:           c.Price,
		Active:          active,
		Metadata:        gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateVariantRequest struct {
	Name            string   `db:"name"             json:"name"             validate:"omitempty,max=100"`
	DurationMinutes int      `db:"duration_minutes" json:"duration_minutes" validate:"omitempty,min=1,max=1439"`
	Price           *float64 `db:"price"            json:"price"            validate:"omitempty,min=0"`
	Active          *bool    `db:"active"           json:"active"           validate:"omitempty"`
}

type VariantResponse struct {
	ID              string  `json:"id"`
	RoomID          string  `json:"room_id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	Active          bool    `json:"active"`
	gDto.Metadata
}

func (r *VariantResponse) FromModel(model model.Variant) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.Name = model.Name
	r.DurationMinutes = model.DurationMinutes
	r.Price = model.Price
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetVariantsResponse struct {
	Variants []VariantResponse `json:"variants"`
}

func (r *GetVariantsResponse) FromModels(models []model.Variant) {
	r.Variants = make([]VariantResponse, len(models))
	for i, mod := range models {
		r.Variants[i].FromModel(mod)
	}
}

// CategoryVariantResponse is the public view of a merged category variant.
type CategoryVariantResponse struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

type GetCategoryVariantsResponse struct {
	CategoryID string                    `json:"category_id"`
	Variants   []CategoryVariantResponse `json:"variants"`
}

func (r *GetCategoryVariantsResponse) FromModels(categoryID string, models []model.Variant) {
	r.CategoryID = categoryID

	r.Variants = make([]CategoryVariantResponse, len(models))
	for i, mod := range models {
		r.Variants[i] = CategoryVariantResponse{
			Name:            mod.Name,
			DurationMinutes: mod.DurationMinutes,
			Price:           mod.Price,
		}
	}
}
