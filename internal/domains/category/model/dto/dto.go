package dto

import (
	"github.com/google/uuid"

	"bookit/internal/domains/category/model"
	"bookit/shared"
	gDto "bookit/shared/dto"
	gModel "bookit/shared/model"
	"bookit/shared/timezone"
)

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (c *CreateCategoryRequest) ToModel(storeID, user string) model.Category {
	return model.Category{
		ID:       uuid.NewString(),
		StoreID:  storeID,
		Name:     c.Name,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateCategoryRequest struct {
	Name string `db:"name" json:"name" validate:"required,max=100"`
}

type CategoryResponse struct {
	ID      string `json:"id"`
	StoreID string `json:"store_id"`
	Name    string `json:"name"`
	gDto.Metadata
}

func (r *CategoryResponse) FromModel(model model.Category) {
	r.ID = model.ID
	r.StoreID = model.StoreID
	r.Name = model.Name
	r.Metadata.FromModel(model.Metadata)
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetCategoriesResponse) FromModels(models []model.Category, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Categories = make([]CategoryResponse, len(models))
	for i, mod := range models {
		r.Categories[i].FromModel(mod)
	}
}
