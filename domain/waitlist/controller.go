package waitlist

import (
	"net/http"

	"github.com/postie/waitlist/config/router"
	"github.com/postie/waitlist/internal/log"
	"github.com/postie/waitlist/pkg/constants"
	apperrors "github.com/postie/waitlist/pkg/errors"
)

func NewWaitlistController(
	repository WaitlistRepository,
	logger *log.Logger,
) *router.RESTController {

	return router.NewRESTController(
		"WaitlistController",
		constants.WaitlistPath,
		func(rs *router.RouterService, c *router.RESTController) {
			service := NewWaitlistService(logger, repository)
			metrics := newSubmissionMetrics(rs.MetricsRegisterer())

			rs.AddPostHandler(c, "", joinWaitlistHandler(service, metrics))
		},
	)
}

func joinWaitlistHandler(service WaitlistService, metrics *submissionMetrics) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req JoinWaitlistRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Warn("Invalid waitlist payload", "error", err, "fields", apperrors.FormatValidationErrors(err, &req))
			metrics.observe(OutcomeInvalid)
			return errorBody(http.StatusBadRequest, constants.WaitlistInvalidEmailMessage)
		}

		response, err := service.Join(ctx.Request.Context(), req.Email)
		metrics.observe(outcomeFor(err))
		if err != nil {
			return resultForJoinError(err)
		}

		return router.BodyResult(http.StatusOK, response)
	}
}

// resultForJoinError maps join failures onto the endpoint's wire contract.
// Rejections carry their own wire text; store faults never expose their cause.
func resultForJoinError(err error) *router.ServiceResult {
	status := apperrors.HTTPStatusCode(err)
	if status >= http.StatusInternalServerError {
		return errorBody(status, constants.WaitlistFailureMessage)
	}

	return errorBody(status, apperrors.GetHumanReadableMessage(err))
}

func errorBody(status int, message string) *router.ServiceResult {
	return router.BodyResult(status, ErrorResponse{Error: message})
}
