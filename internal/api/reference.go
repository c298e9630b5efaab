package api

import (
	"context"
	"net/http"

	"github.com/skybi/rendezvous/internal/api/schema"
	"github.com/skybi/rendezvous/internal/api/validation"
	"github.com/skybi/rendezvous/internal/reference"
)

// EndpointGetRegions handles the 'GET /v1/regions' endpoint
func (service *Service) EndpointGetRegions(writer http.ResponseWriter, request *http.Request) {
	writeList(service, writer, request, service.Reference.GetRegions)
}

// EndpointGetRegion handles the 'GET /v1/regions/{id}' endpoint
func (service *Service) EndpointGetRegion(writer http.ResponseWriter, request *http.Request) {
	writeSingle(service, writer, request, service.Reference.GetRegion)
}

// EndpointGetRegionCities handles the 'GET /v1/regions/{id}/cities' endpoint
func (service *Service) EndpointGetRegionCities(writer http.ResponseWriter, request *http.Request) {
	id, validationErr := validation.PathID(request, "id")
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	region, err := service.Reference.GetRegion(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if region == nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	writeList(service, writer, request, func(ctx context.Context) ([]*reference.City, error) {
		return service.Reference.GetCities(ctx, &id)
	})
}

// EndpointGetCities handles the 'GET /v1/cities' endpoint
func (service *Service) EndpointGetCities(writer http.ResponseWriter, request *http.Request) {
	writeList(service, writer, request, func(ctx context.Context) ([]*reference.City, error) {
		return service.Reference.GetCities(ctx, nil)
	})
}

// EndpointGetCity handles the 'GET /v1/cities/{id}' endpoint
func (service *Service) EndpointGetCity(writer http.ResponseWriter, request *http.Request) {
	writeSingle(service, writer, request, service.Reference.GetCity)
}

// EndpointGetGenders handles the 'GET /v1/genders' endpoint
func (service *Service) EndpointGetGenders(writer http.ResponseWriter, request *http.Request) {
	writeList(service, writer, request, service.Reference.GetGenders)
}

// EndpointGetGender handles the 'GET /v1/genders/{id}' endpoint
func (service *Service) EndpointGetGender(writer http.ResponseWriter, request *http.Request) {
	writeSingle(service, writer, request, service.Reference.GetGender)
}

// EndpointGetStatuses handles the 'GET /v1/statuses' endpoint
func (service *Service) EndpointGetStatuses(writer http.ResponseWriter, request *http.Request) {
	writeList(service, writer, request, service.Reference.GetStatuses)
}

// EndpointGetStatus handles the 'GET /v1/statuses/{id}' endpoint
func (service *Service) EndpointGetStatus(writer http.ResponseWriter, request *http.Request) {
	writeSingle(service, writer, request, service.Reference.GetStatus)
}

func writeList[T any](service *Service, writer http.ResponseWriter, request *http.Request, list func(context.Context) ([]*T, error)) {
	objs, err := list(request.Context())
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if objs == nil {
		objs = []*T{}
	}
	service.writer.WriteJSON(writer, objs)
}

func writeSingle[T any](service *Service, writer http.ResponseWriter, request *http.Request, get func(context.Context, int64) (*T, error)) {
	id, validationErr := validation.PathID(request, "id")
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	obj, err := get(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}
	service.writer.WriteJSON(writer, obj)
}
