package repository

//go:generate go run go.uber.org/mock/mockgen -source=./product.go -destination=../mocks/product_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"bookit/infras/otel"
	"bookit/infras/postgres"
	"bookit/internal/domains/booking/model"
	gDto "bookit/shared/dto"
	gRepo "bookit/shared/repository"
)

type Product interface {
	Insert(ctx context.Context, model model.Product) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Product, error)
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type productRepositoryImpl struct {
	gRepo.Repository[model.Product]
}

func NewProduct(db *postgres.Connection, otel otel.Otel) Product {
	return &productRepositoryImpl{
		Repository: gRepo.NewRepository[model.Product](model.ProductEntityName, model.ProductTableName, model.FieldID, db, otel),
	}
}
