package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/suistake/bridge-saga-service/internal/config"
	"github.com/suistake/bridge-saga-service/internal/services"
	"github.com/suistake/bridge-saga-service/internal/types"
)

type Handler struct {
	config   *config.Config
	services *services.Services
}

type paginationResponse struct {
	NextKey string `json:"next_key"`
}

type PublicResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination *paginationResponse `json:"pagination,omitempty"`
}

type Result struct {
	Data   interface{}
	Status int
}

// NewResultWithPagination returns a 200 result. An empty pageToken means the last page.
func NewResultWithPagination[T any](data T, pageToken string) *Result {
	res := &PublicResponse[T]{Data: data, Pagination: &paginationResponse{NextKey: pageToken}}
	return &Result{Data: res, Status: http.StatusOK}
}

func NewResult[T any](data T) *Result {
	res := &PublicResponse[T]{Data: data}
	return &Result{Data: res, Status: http.StatusOK}
}

// NewAcceptedResult is returned for requests processed asynchronously.
func NewAcceptedResult[T any](data T) *Result {
	res := &PublicResponse[T]{Data: data}
	return &Result{Data: res, Status: http.StatusAccepted}
}

func New(
	ctx context.Context, cfg *config.Config, services *services.Services,
) (*Handler, error) {
	return &Handler{
		config:   cfg,
		services: services,
	}, nil
}

func parseRequiredQuery(request *http.Request, name string) (string, *types.Error) {
	value := request.URL.Query().Get(name)
	if value == "" {
		return "", types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, name+" is required")
	}
	return value, nil
}

func parsePaginationQuery(request *http.Request) string {
	return request.URL.Query().Get("pagination_key")
}

func parsePayload[T any](request *http.Request) (*T, *types.Error) {
	payload := new(T)
	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, types.NewErrorWithMsg(
				http.StatusRequestEntityTooLarge, types.BadRequest, "request payload too large",
			)
		}
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid request payload")
	}
	return payload, nil
}
