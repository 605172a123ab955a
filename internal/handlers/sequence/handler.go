package sequence

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"bookit/infras/otel"
	"bookit/internal/domains/sequence"
	"bookit/shared/actor"
	"bookit/shared/constant"
	"bookit/shared/validator"
	"bookit/transport/http/response"
)

type Handler struct {
	issuer sequence.Issuer
	otel   otel.Otel
}

func New(issuer sequence.Issuer, otel otel.Otel) Handler {
	return Handler{
		issuer: issuer,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/sequences/{kind}", handler.Issue)
}

// Issue hands out the next expense or income identifier of a store.
// @Summary Issue an identifier
// @Tags Sequence
// @Produce json
// @Param storeID path string true "Store ID"
// @Param kind path string true "expense or income"
// @Param date query string false "Business date (YYYY-MM-DD), defaults to today"
// @Success 201 {object} response.Data[sequence.IssueResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/stores/{storeID}/sequences/{kind} [post]
// @Security BearerAuth
func (handler *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Issue")
	defer scope.End()

	req := sequence.IssueRequest{Date: r.URL.Query().Get(constant.RequestParamDate)}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	kind := sequence.Kind(chi.URLParam(r, constant.RequestParamKind))

	res, err := handler.issuer.Issue(ctx, actor.ScopeOf(ctx, chi.URLParam(r, constant.RequestParamStoreID)), kind, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("kind", string(kind)).Msg("failed to issue identifier")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}
