package catalog

import (
	"errors"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/rokola-web/catalog-api/pkg/catalog/handler"
	"github.com/rokola-web/catalog-api/pkg/catalog/helpers/apperr"
	"github.com/wI2L/fizz"
	"github.com/wI2L/fizz/openapi"
)

func init() {
	// Every failure leaves the process as {"error": <message>} with the
	// matching status; the 500 body carries the raw diagnostic on purpose.
	tonic.SetErrorHook(func(c *gin.Context, err error) (int, interface{}) {
		var be tonic.BindError
		if errors.As(err, &be) {
			bad := apperr.NewBadRequest(be.Error())
			return bad.Status, bad
		}

		var apiErr apperr.APIError
		if errors.As(err, &apiErr) {
			return apiErr.Status, apiErr
		}

		internal := apperr.NewInternalServerError(err.Error())
		return internal.Status, internal
	})
}

func NewRouter(controller *handler.SongsController) *fizz.Fizz {
	g := gin.Default()

	// CORS abierto: el frontend de la rokola vive en otro origen y la
	// respuesta no lleva credenciales.
	g.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET"},
		AllowHeaders:    []string{"Content-Type"},
	}))

	f := fizz.NewFromEngine(g)

	info := &openapi.Info{
		Title:       "Rokola catalog API",
		Description: "API de consulta del catálogo musical (rokola-web)",
		Version:     "1.0.0",
	}

	root := f.Group("/v1", "Catálogo", "Consulta del catálogo musical")
	root.GET("/songs",
		[]fizz.OperationOption{
			fizz.Summary("Buscar canciones por id, artista, título o texto libre"),
		},
		tonic.Handler(controller.SearchSongs, 200),
	)

	f.GET("/v1/openapi.json", []fizz.OperationOption{}, f.OpenAPI(info, "json"))

	return f
}
