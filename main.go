package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/moneta-labs/security-api/checks"
	"github.com/moneta-labs/security-api/clients"
	"github.com/moneta-labs/security-api/configs"
	"github.com/moneta-labs/security-api/datastore/gorm"
	"github.com/moneta-labs/security-api/handlers"
	"github.com/moneta-labs/security-api/handlers/middleware"
	"github.com/moneta-labs/security-api/mail"
	"github.com/moneta-labs/security-api/security"
	"github.com/moneta-labs/security-api/tokens"
	"github.com/moneta-labs/security-api/users"
	"github.com/moneta-labs/security-api/wallets"
)

const version = "0.1.0"

var (
	sha1ver   string // sha1 revision used to build the program
	buildTime string // when the executable was built
)

func main() {
	var printVersion bool

	// If we should just print the version number and exit
	flag.BoolVar(&printVersion, "version", false, "if true, print version and exit")
	flag.Parse()

	if printVersion {
		fmt.Printf("v%s build on %s from sha1 %s\n", version, buildTime, sha1ver)
		os.Exit(0)
	}

	cfg, err := configs.Parse()
	if err != nil {
		panic(err)
	}

	runServer(cfg)

	os.Exit(0)
}

func runServer(cfg *configs.Config) {
	configs.ConfigureLogger(cfg.LogLevel)

	log.Info("Starting server")

	// Database
	db, err := gorm.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer gorm.Close(db)

	// Mail sender
	sender := mail.NewSender(cfg)

	// Services
	securityService := security.NewService(
		cfg,
		users.NewGormStore(db),
		wallets.NewGormStore(db),
		checks.NewGormStore(db),
		tokens.NewGormStore(db),
		clients.NewGormStore(db),
		sender,
	)

	// HTTP handling
	securityHandler := handlers.NewSecurity(securityService)

	r := mux.NewRouter()

	// Catch the api version
	rv := r.PathPrefix("/{apiVersion}").Subrouter()

	// Debug
	rv.Handle("/debug", handlers.Debug("https://github.com/moneta-labs/security-api", sha1ver, buildTime)).Methods(http.MethodGet)

	// Health
	rv.Handle("/health/ready", handlers.Ready(db)).Methods(http.MethodGet)
	rv.Handle("/health/liveness", handlers.Liveness(db)).Methods(http.MethodGet)

	// Account flows
	rv.Handle("/signup", securityHandler.Signup()).Methods(http.MethodPost)
	rv.Handle("/forgot", securityHandler.Forgot()).Methods(http.MethodPost)
	rv.Handle("/passwd", securityHandler.Passwd()).Methods(http.MethodPost)
	rv.Handle("/confirm", securityHandler.Confirm()).Methods(http.MethodPost)
	rv.Handle("/recover", securityHandler.Recover()).Methods(http.MethodPost)

	// Credentials
	rv.Handle("/login", securityHandler.Login()).Methods(http.MethodPost)
	rv.Handle("/oauth/token", securityHandler.Client()).Methods(http.MethodPost)
	rv.Handle("/token", securityHandler.Token()).Methods(http.MethodGet)
	rv.Handle("/logout", securityHandler.Logout()).Methods(http.MethodPost)

	h := http.TimeoutHandler(r, cfg.ServerRequestTimeout, "request timed out")
	h = handlers.UseCors(h)
	h = middleware.RequestLogger(h)
	h = handlers.UseCompress(h)

	// Setup idempotency key middleware if it's enabled
	if !cfg.DisableIdempotencyMiddleware {
		var is handlers.IdempotencyStore
		switch cfg.IdempotencyMiddlewareDatabaseType {
		// Shared SQL/Gorm store (same as for main app)
		case handlers.IdempotencyStoreTypeShared.String():
			is = handlers.NewIdempotencyStoreGorm(db)
		// Redis, separate from app db
		case handlers.IdempotencyStoreTypeRedis.String():
			if cfg.IdempotencyMiddlewareRedisURL == "" {
				log.Fatal("idempotency middleware db set to redis but Redis URL is empty")
			}
			pool := &redis.Pool{
				MaxIdle:   80,
				MaxActive: 12000,
				Dial: func() (redis.Conn, error) {
					c, err := redis.DialURL(cfg.IdempotencyMiddlewareRedisURL)
					if err != nil {
						panic(err.Error())
					}
					return c, err
				},
			}

			client := pool.Get()

			defer func() {
				log.Info("Closing Redis client..")
				if err := client.Close(); err != nil {
					log.Warn(err)
				}
			}()

			is = handlers.NewIdempotencyStoreRedis(client)
		case handlers.IdempotencyStoreTypeLocal.String():
			is = handlers.NewIdempotencyStoreLocal()
		}

		h = handlers.UseIdempotency(h, handlers.IdempotencyHandlerOptions{
			Expiry: 1 * time.Hour,
			// Token lookups and logouts are keyed by the bearer header
			IgnorePaths: []string{"/v1/logout"},
		}, is)
	}

	// Server boilerplate
	srv := &http.Server{
		Handler:      h,
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		WriteTimeout: 0, // Disabled, set cfg.ServerRequestTimeout instead
		ReadTimeout:  0, // Disabled, set cfg.ServerRequestTimeout instead
	}

	// Run our server in a goroutine so that it doesn't block.
	go func() {
		log.
			WithFields(log.Fields{
				"host": cfg.Host,
				"port": cfg.Port,
			}).
			Info("Server listening")
		if err := srv.ListenAndServe(); err != nil {
			log.Warn(err)
		}
	}()

	// Trap interupt or sigterm and gracefully shutdown the server
	c := make(chan os.Signal, 1)
	// We'll accept graceful shutdowns when quit via SIGINT (Ctrl+C)
	// SIGKILL, SIGQUIT or SIGTERM (Ctrl+/) will not be caught.
	signal.Notify(c, os.Interrupt)

	// Block until we receive our signal.
	sig := <-c

	log.Infof("Got signal: %s. Shutting down..", sig)

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("Error in server shutdown: %s", err)
	}
}
