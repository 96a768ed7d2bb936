package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"carshare/infras/otel"
	"carshare/internal/domains/booking/model/dto"
	"carshare/internal/domains/booking/service"
	"carshare/shared/constant"
	"carshare/shared/validator"
	"carshare/transport/http/middleware"
	"carshare/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/booking-sessions", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.StartSession)
		routerGroup.Get("/{id}", handler.GetSession)
		routerGroup.Put("/{id}/dates", handler.SelectDates)
		routerGroup.Put("/{id}/insurance", handler.SelectInsurance)
		routerGroup.Put("/{id}/payment", handler.SelectPayment)
		routerGroup.Post("/{id}/submit", handler.Submit)
		routerGroup.Delete("/{id}", handler.CancelSession)
	})
}

// StartSession opens a booking attempt for a resource.
// @Summary Start a booking session
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.StartSessionRequest true "Start Session Request"
// @Success 201 {object} response.Data[dto.SessionResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/booking-sessions [post]
// @Security BearerAuth
func (handler *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartSession")
	defer scope.End()

	userID, err := middleware.UserID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.StartSessionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Start(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start booking session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking session " + res.ID + " started by user " + userID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetSession returns the session snapshot with its recent events.
// @Summary Get a booking session
// @Tags Booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Data[dto.SessionResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/booking-sessions/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSession")
	defer scope.End()

	userID, err := middleware.UserID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Get(ctx, userID, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking session")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SelectDates sets the candidate range.
// @Summary Select booking dates
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SelectDatesRequest true "Select Dates Request"
// @Success 200 {object} response.Data[dto.SessionResponse]
// @Failure 400 {object} response.Error
// @Failure 412 {object} response.Error
// @Router /v1/booking-sessions/{id}/dates [put]
// @Security BearerAuth
func (handler *Handler) SelectDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SelectDates")
	defer scope.End()

	userID, err := middleware.UserID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.SelectDatesRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SelectDates(ctx, userID, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to select dates")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SelectInsurance sets the insurance tier.
// @Summary Select insurance
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SelectInsuranceRequest true "Select Insurance Request"
// @Success 200 {object} response.Data[dto.SessionResponse]
// @Failure 400 {object} response.Error
// @Failure 412 {object} response.Error
// @Router /v1/booking-sessions/{id}/insurance [put]
// @Security BearerAuth
func (handler *Handler) SelectInsurance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SelectInsurance")
	defer scope.End()

	userID, err := middleware.UserID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.SelectInsuranceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SelectInsurance(ctx, userID, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to select insurance")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SelectPayment sets the payment method.
// @Summary Select payment method
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SelectPaymentRequest true "Select Payment Request"
// @Success 200 {object} response.Data[dto.SessionResponse]
// @Failure 400 {object} response.Error
// @Failure 412 {object} response.Error
// @Router /v1/booking-sessions/{id}/payment [put]
// @Security BearerAuth
func (handler *Handler) SelectPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SelectPayment")
	defer scope.End()

	userID, err := middleware.UserID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.SelectPaymentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SelectPayment(ctx, userID, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to select payment method")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Submit starts the reservation and payment. Progress is read back through GetSession.
// @Summary Submit a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 202 {object} response.Data[dto.SessionResponse]
// @Failure 412 {object} response.Error
// @Router /v1/booking-sessions/{id}/submit [post]
// @Security BearerAuth
func (handler *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Submit")
	defer scope.End()

	userID, err := middleware.UserID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Submit(ctx, userID, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to submit booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking " + res.ReservationID + " submitted by user " + userID)

	response.WithJSON(w, http.StatusAccepted, res)
}

// CancelSession disposes the attempt and cancels in-flight calls.
// @Summary Cancel a booking session
// @Tags Booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/booking-sessions/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelSession")
	defer scope.End()

	userID, err := middleware.UserID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Cancel(ctx, userID, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking session")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking session cancelled")
}
