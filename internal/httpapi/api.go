package httpapi

import (
	"go.uber.org/zap"

	"lang-portal/internal/studysession"
)

type API struct {
	service *studysession.Service
	log     *zap.Logger
}

func NewAPI(service *studysession.Service, log *zap.Logger) *API {
	if log == nil {
		log = zap.NewNop()
	}
	return &API{
		service: service,
		log:     log,
	}
}
