package command

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/frantjc/genplist/internal/api"
	xslice "github.com/frantjc/x/slice"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// Serve runs genplist until ctx is done or a server fails.
func Serve(ctx context.Context, cfg *Config) error {
	lis, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	defer lis.Close()

	var metricsLis net.Listener
	if cfg.MetricsAddr != "" {
		if metricsLis, err = net.Listen("tcp", cfg.MetricsAddr); err != nil {
			return err
		}
		defer metricsLis.Close()
	}

	return serve(ctx, cfg, lis, metricsLis)
}

func serve(ctx context.Context, cfg *Config, lis, metricsLis net.Listener) error {
	var (
		log = logr.FromContextOrDiscard(ctx)
		reg = prometheus.NewRegistry()
	)

	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return err
	}

	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return err
	}

	handler, err := api.NewHandler(&api.Opts{
		Logger:     log,
		Registerer: reg,
	})
	if err != nil {
		return err
	}

	var (
		newServer = func(handler http.Handler) *http.Server {
			return &http.Server{
				ReadHeaderTimeout: cfg.ReadHeaderTimeout,
				BaseContext: func(_ net.Listener) context.Context {
					return ctx
				},
				Handler: handler,
			}
		}
		srvs        = []*http.Server{newServer(handler)}
		eg, egctx   = errgroup.WithContext(ctx)
		serveListen = func(srv *http.Server, lis net.Listener, msg string) func() error {
			return func() error {
				log.Info(msg + lis.Addr().String())
				if err := srv.Serve(lis); !errors.Is(err, http.ErrServerClosed) {
					return err
				}

				return nil
			}
		}
	)

	eg.Go(serveListen(srvs[0], lis, "listening on "))

	if metricsLis != nil {
		srvs = append(srvs, newServer(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
		eg.Go(serveListen(srvs[1], metricsLis, "serving metrics on "))
	}

	eg.Go(func() error {
		<-egctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()

		return errors.Join(xslice.Map(srvs, func(srv *http.Server, _ int) error {
			return srv.Shutdown(shutdownCtx)
		})...)
	})

	if err := eg.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}
