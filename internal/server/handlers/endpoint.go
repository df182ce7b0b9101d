package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vzahanych/wx-gateway/internal/server/utils"
	"github.com/vzahanych/wx-gateway/internal/server/validate"
	"github.com/vzahanych/wx-gateway/pkg/telemetry"
)

// ProcessFunc is the endpoint-specific business logic, invoked only after the
// request has passed validation. Its return value becomes the 200 JSON body.
type ProcessFunc func(c *gin.Context) (interface{}, error)

// Endpoint runs the shared request lifecycle around a process function:
// method check, then auth, then required parameters, each short-circuiting
// with its own status. Process failures become the uniform 500 envelope.
// The ordering is a contract: a request failing both the method and auth
// checks reports the method failure.
type Endpoint struct {
	name           string
	apiToken       string
	requiredParams []string
	process        ProcessFunc
	logger         *zap.Logger
	tele           *telemetry.Telemetry
}

func NewEndpoint(name string, apiToken string, requiredParams []string, process ProcessFunc, logger *zap.Logger, tele *telemetry.Telemetry) *Endpoint {
	return &Endpoint{
		name:           name,
		apiToken:       apiToken,
		requiredParams: requiredParams,
		process:        process,
		logger:         logger,
		tele:           tele,
	}
}

func (e *Endpoint) Handle(c *gin.Context) {
	if verr := validate.Method(c.Request.Method); verr != nil {
		c.JSON(verr.Status, ErrorResponse{Error: verr.Message})
		return
	}

	if verr := validate.Auth(c.Request.Header, e.apiToken); verr != nil {
		c.JSON(verr.Status, ErrorResponse{Error: verr.Message})
		return
	}

	if len(e.requiredParams) > 0 {
		if verr := validate.Params(c.Request.URL.Query(), e.requiredParams); verr != nil {
			c.JSON(verr.Status, ErrorResponse{Error: verr.Message})
			return
		}
	}

	data, err := e.process(c)
	if err != nil {
		e.logger.Error("Endpoint processing failed",
			zap.String("endpoint", e.name),
			zap.String("request_id", utils.GetRequestIDFromGinContext(c)),
			zap.Error(err))

		e.tele.RecordError(utils.GetContextFromGinContext(c), err, map[string]interface{}{
			"endpoint": e.name,
		})

		message := err.Error()
		if message == "" {
			message = "Unknown error"
		}

		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal server error",
			Message: message,
		})
		return
	}

	c.JSON(http.StatusOK, data)
}
