package resource

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"carshare/infras/otel"
	"carshare/internal/domains/resource/model/dto"
	"carshare/internal/domains/resource/service"
	"carshare/shared/constant"
	"carshare/shared/failure"
	"carshare/transport/http/middleware"
	"carshare/transport/http/response"
)

type Handler struct {
	service service.Resource
	otel    otel.Otel
}

func New(service service.Resource, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/resources", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}/rent-info", handler.GetRentInfo)
		routerGroup.Post("/{id}/images", handler.AddImage)
	})
}

// GetRentInfo returns price, availability window and committed ranges of a resource.
// @Summary Get rent info
// @Tags Resource
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} response.Data[dto.RentInfo]
// @Failure 404 {object} response.Error
// @Router /v1/resources/{id}/rent-info [get]
// @Security BearerAuth
func (handler *Handler) GetRentInfo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRentInfo")
	defer scope.End()

	res, err := handler.service.GetRentInfo(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rent info")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// AddImage uploads an image and appends it to the resource.
// @Summary Add a resource image
// @Tags Resource
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Resource ID"
// @Param file formData file true "Image file to upload"
// @Success 201 {object} response.Data[dto.AddImageResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/resources/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) AddImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddImage")
	defer scope.End()

	userID, err := middleware.UserID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, failure.BadRequest(err))

		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read uploaded file")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.AddImageRequest{
		ResourceID:  chi.URLParam(r, constant.RequestParamID),
		UserID:      userID,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}

	res, err := handler.service.AddImage(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Image " + fileHeader.Filename + " added by user " + userID)

	response.WithJSON(w, http.StatusCreated, res)
}
