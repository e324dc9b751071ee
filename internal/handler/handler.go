package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/opsdesk-dev/status-board/backend/internal/config"
	"github.com/opsdesk-dev/status-board/backend/internal/domain"
	"github.com/opsdesk-dev/status-board/backend/internal/repository"
	"github.com/opsdesk-dev/status-board/backend/internal/schedule"
	"github.com/opsdesk-dev/status-board/backend/internal/timegrid"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	amqpChannel *amqp.Channel
	redisClient *redis.Client
	quantizer   *timegrid.Quantizer
	statuses    schedule.StatusSet
	available   schedule.StatusSet

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, ch *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	available := make(schedule.StatusSet, len(cfg.Schedule.AvailableStatuses))
	for _, s := range cfg.Schedule.AvailableStatuses {
		available[s] = true
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		amqpChannel: ch,
		redisClient: rdb,
		quantizer:   timegrid.NewQuantizer(cfg.Schedule.UTCOffsetMinutes),
		statuses:    schedule.NewStatusSet(cfg.Schedule.ExtraStatuses),
		available:   available,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// everything below requires a logged-in actor
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.myInfo)

		r.Get("/board", h.GetBoard)

		r.Route("/entries", func(r chi.Router) {
			r.Post("/", h.CreateEntry)
			r.Post("/drag", h.QuantizeDrag)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.entryInfo)
				r.Patch("/", h.UpdateEntry)
				r.Delete("/", h.DeleteEntry)
				r.Post("/move", h.MoveEntry)
			})
		})

		r.Route("/imports", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleLeader, domain.RoleAdmin}))
			r.Post("/", h.ImportRows)
			r.Post("/workbook", h.ImportWorkbook)
			r.Route("/{batchID}", func(r chi.Router) {
				r.Get("/", h.GetImportBatch)
				r.Post("/rollback", h.RollbackImport)
			})
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/available-now", h.GetAvailableNow)
			r.Get("/histogram", h.GetHistogram)
		})

		r.Get("/snapshots/{date}", h.GetSnapshot)

		r.Route("/directory/sync", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Post("/plan", h.PlanDirectorySync)
			r.Post("/apply", h.ApplyDirectorySync)
		})
	})
}
