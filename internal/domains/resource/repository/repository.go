package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"carshare/infras/otel"
	"carshare/infras/postgres"
	"carshare/internal/domains/resource/model"
	"carshare/shared/constant"
	gDto "carshare/shared/dto"
	"carshare/shared/failure"
	"carshare/shared/logger"
	gRepo "carshare/shared/repository"
)

type Resource interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Resource, error)
	AppendImage(ctx context.Context, id, url string, modifiedAt time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Resource]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Resource {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Resource](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// AppendImage adds url to the end of the resource's image list.
func (r *repositoryImpl) AppendImage(ctx context.Context, id, url string, modifiedAt time.Time) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".resource.AppendImage")
	defer scope.End()

	query := fmt.Sprintf("UPDATE %s SET %s = array_append(%s, :url), %s = :modified_at WHERE %s = :id",
		model.TableName, model.FieldImages, model.FieldImages, constant.FieldModifiedAt, model.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := r.db.Write.NamedExecContext(ctx, query, map[string]any{
		"id":          id,
		"url":         url,
		"modified_at": modifiedAt,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to append image (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	if affected == 0 {
		return failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	return nil
}
