package router

import (
	"net/http"
	"net/url"

	docs "github.com/cycle-ledger/backend/api"
	"github.com/cycle-ledger/backend/internal/controllers"
	"github.com/cycle-ledger/backend/internal/httputil"
	"github.com/cycle-ledger/backend/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time.
var version = "0.0.0"

// Options are the optional features of the router.
type Options struct {
	CORSOrigins []string // CORS is only enabled if at least one origin is set
	EnablePprof bool
}

// Config creates the engine with all middlewares, templates and static files.
//
// The returned teardown function must be called when the engine is not
// used anymore.
func Config(url *url.URL, opts Options) (*gin.Engine, func(), error) {
	teardown := func() {
		unregisterPrometheusMetrics()
	}

	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	if err := registerPrometheusMetrics(); err != nil {
		return nil, teardown, err
	}

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, httputil.HTTPError{Error: "This HTTP method is not allowed for the endpoint you called"})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if len(opts.CORSOrigins) > 0 {
		log.Debug().Strs("CORS Allowed Origins", opts.CORSOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	tmpl, err := web.Templates(templateFuncs)
	if err != nil {
		return nil, teardown, err
	}
	r.SetHTMLTemplate(tmpl)

	static, err := web.Static()
	if err != nil {
		return nil, teardown, err
	}
	r.StaticFS("/static", http.FS(static))

	// pprof performance profiles
	if opts.EnablePprof {
		pprof.Register(r)
	}

	log.Debug().Str("Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "Cycle Ledger"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "JSON API of Cycle Ledger, a finance tracker that groups transactions by billing cycle."

	return r, teardown, nil
}

// AttachRoutes attaches all routes to the router group that is passed in.
func AttachRoutes(co controllers.Controller, group *gin.RouterGroup) {
	group.GET("/healthz", controllers.GetHealthz)
	group.OPTIONS("/healthz", controllers.OptionsHealthz)
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))
	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	group.GET("", co.OptionalUser, co.Index)
	co.RegisterAuthRoutes(group.Group("/auth", co.OptionalUser))

	pages := group.Group("", co.RequireUser)
	{
		pages.GET("/dashboard", co.Dashboard)
		co.RegisterLedgerRoutes(pages.Group("/ledgers"))
	}

	co.RegisterAPIRoutes(group.Group("/api"))
}
