package handler

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/cs-Nikhil/msdproject/internal/booking"
	"github.com/cs-Nikhil/msdproject/internal/store"
)

type Handler struct {
	svc      *booking.Service
	store    *store.Store
	secret   string
	log      *zap.Logger
	validate *validator.Validate
}

func New(svc *booking.Service, st *store.Store, secret string, log *zap.Logger) *Handler {
	return &Handler{
		svc:      svc,
		store:    st,
		secret:   secret,
		log:      log,
		validate: validator.New(),
	}
}
