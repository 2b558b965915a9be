package controllers

import (
	"net/http"

	"github.com/Ms-You/emmerce-api-sub000/api/responses"
	"github.com/Ms-You/emmerce-api-sub000/pkg/config"
	pkgerrors "github.com/Ms-You/emmerce-api-sub000/pkg/errors"
	"github.com/Ms-You/emmerce-api-sub000/pkg/logger"
	"github.com/Ms-You/emmerce-api-sub000/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Emmerce-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and redis before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbPinger redis.Pinger, redisPinger redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Emmerce-Env", cfg.App.Env)

		if dbPinger != nil {
			if err := dbPinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database not ready"))
				return
			}
		}
		if redisPinger != nil {
			if err := redisPinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis not ready"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
