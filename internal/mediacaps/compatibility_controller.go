package mediacaps

import (
	"log/slog"
	"net/http"

	echo "github.com/labstack/echo/v4"
	"go.uber.org/fx"

	globalprotocol "github.com/harshil753/overcast-sub001/pkg/protocol"
)

type compatibilityResponse struct {
	Report           Report     `json:"report"`
	IsFullySupported bool       `json:"isFullySupported"`
	BestMimeType     *string    `json:"bestMimeType"`
	Validation       Validation `json:"validation"`
}

type compatibilityController struct {
	probe  Probe
	logger *slog.Logger
}

// CompatibilityControllerAssess reports recording support for the calling
// client, assessed fresh on every request against its User-Agent header.
func (ctrl *compatibilityController) CompatibilityControllerAssess(ctx echo.Context) error {
	assessor := NewAssessor(NewAssessorParams{
		Probe:     ctrl.probe,
		UserAgent: ctx.Request().UserAgent(),
		Logger:    ctrl.logger,
	})

	response := compatibilityResponse{
		Report:           assessor.Assess(),
		IsFullySupported: assessor.IsFullySupported(),
		Validation:       assessor.ValidateRequirements(),
	}
	if best, ok := assessor.SelectBestMimeType(); ok {
		response.BestMimeType = &best
	}

	return ctx.JSON(http.StatusOK, response)
}

func (ctrl *compatibilityController) Resolve(router globalprotocol.HttpRouter) error {
	router.GET("/compatibility", ctrl.CompatibilityControllerAssess)
	return nil
}

var _ globalprotocol.HttpResolvable = (*compatibilityController)(nil)

type newCompatibilityController_Params struct {
	fx.In

	Probe  Probe
	Logger *slog.Logger
}

func NewCompatibilityController(params newCompatibilityController_Params) *compatibilityController {
	return &compatibilityController{
		probe:  params.Probe,
		logger: params.Logger,
	}
}
