package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/servio/internal/app"
	"github.com/neomorfeo/servio/internal/domain"
)

// The wire contract is legacy-compatible: domain-level failures (not_found,
// invalid_name) come back as 200 responses with a discriminating status
// field, exactly as the original API behaved. Only auth failures use an
// HTTP error status.

// ServerSummary is the list representation of a server.
type ServerSummary struct {
	ID     int64  `json:"id" doc:"Unique identifier"`
	Name   string `json:"name" doc:"Caller-supplied label"`
	Status string `json:"status" doc:"Provisioning state"`
}

// dateFormat is the wire format for date_created (date precision only).
const dateFormat = "2006-01-02"

// --- Health ---

type HealthOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

// --- List Servers ---

type ListServersInput struct {
	Tenant int64 `path:"tenant" doc:"Tenant ID"`
}

type ListServersOutput struct {
	Body struct {
		Servers []ServerSummary `json:"servers" doc:"Servers in ascending id order"`
	}
}

// --- Get Server ---

type GetServerInput struct {
	Tenant int64 `path:"tenant" doc:"Tenant ID"`
	ID     int64 `path:"id" doc:"Server ID"`
}

type GetServerOutput struct {
	Body struct {
		ID          int64  `json:"id,omitempty"`
		Name        string `json:"name,omitempty"`
		Status      string `json:"status" doc:"Provisioning state, or not_found"`
		DateCreated string `json:"date_created,omitempty"`
	}
}

// --- Delete Server ---

type DeleteServerInput struct {
	Tenant int64 `path:"tenant" doc:"Tenant ID"`
	ID     int64 `path:"id" doc:"Server ID"`
}

type DeleteServerOutput struct {
	Body struct {
		ID     int64  `json:"id,omitempty"`
		Status string `json:"status" doc:"deleted, or not_found"`
	}
}

// --- Create Server ---

type CreateServerInput struct {
	Tenant  int64  `path:"tenant" doc:"Tenant ID"`
	RawBody []byte `contentType:"application/x-www-form-urlencoded" doc:"Form body: name=<string>"`
}

type CreateServerOutput struct {
	Body struct {
		ID     int64  `json:"id,omitempty"`
		Name   string `json:"name,omitempty"`
		Status string `json:"status" doc:"pending, or invalid_name"`
	}
}

// Register adds all server API routes to the Huma API. Every tenant-scoped
// operation carries the token-auth middleware, which rejects the request
// before the handler (and any store access) runs.
func Register(api huma.API, svc *app.ServerService, authToken string) {
	auth := NewAuthMiddleware(authToken)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Service health probe",
		Tags:        []string{"Health"},
	}, func(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
		out := &HealthOutput{}
		out.Body.Status = "test"
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-servers",
		Method:      http.MethodGet,
		Path:        "/{tenant}/servers/",
		Summary:     "List a tenant's servers",
		Tags:        []string{"Servers"},
		Middlewares: huma.Middlewares{auth},
	}, func(ctx context.Context, input *ListServersInput) (*ListServersOutput, error) {
		servers, err := svc.List(ctx, input.Tenant)
		if err != nil {
			return nil, huma.Error500InternalServerError("internal server error")
		}

		out := &ListServersOutput{}
		out.Body.Servers = make([]ServerSummary, len(servers))
		for i, s := range servers {
			out.Body.Servers[i] = ServerSummary{
				ID:     s.ID,
				Name:   s.Name,
				Status: string(s.Status),
			}
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-server",
		Method:      http.MethodGet,
		Path:        "/{tenant}/servers/{id}",
		Summary:     "Get one server",
		Tags:        []string{"Servers"},
		Middlewares: huma.Middlewares{auth},
	}, func(ctx context.Context, input *GetServerInput) (*GetServerOutput, error) {
		out := &GetServerOutput{}

		server, err := svc.Get(ctx, input.Tenant, input.ID)
		if errors.Is(err, domain.ErrServerNotFound) {
			out.Body.Status = "not_found"
			return out, nil
		}
		if err != nil {
			return nil, huma.Error500InternalServerError("internal server error")
		}

		out.Body.ID = server.ID
		out.Body.Name = server.Name
		out.Body.Status = string(server.Status)
		out.Body.DateCreated = server.DateCreated.Format(dateFormat)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-server",
		Method:      http.MethodDelete,
		Path:        "/{tenant}/servers/{id}",
		Summary:     "Delete a server",
		Tags:        []string{"Servers"},
		Middlewares: huma.Middlewares{auth},
	}, func(ctx context.Context, input *DeleteServerInput) (*DeleteServerOutput, error) {
		out := &DeleteServerOutput{}

		err := svc.Delete(ctx, input.Tenant, input.ID)
		if errors.Is(err, domain.ErrServerNotFound) {
			out.Body.Status = "not_found"
			return out, nil
		}
		if err != nil {
			return nil, huma.Error500InternalServerError("internal server error")
		}

		out.Body.ID = input.ID
		out.Body.Status = "deleted"
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-server",
		Method:      http.MethodPost,
		Path:        "/{tenant}/servers/create",
		Summary:     "Create a server and start provisioning it",
		Tags:        []string{"Servers"},
		Middlewares: huma.Middlewares{auth},
	}, func(ctx context.Context, input *CreateServerInput) (*CreateServerOutput, error) {
		out := &CreateServerOutput{}

		form, err := url.ParseQuery(string(input.RawBody))
		if err != nil {
			out.Body.Status = "invalid_name"
			return out, nil
		}

		server, err := svc.Create(ctx, input.Tenant, form.Get("name"))
		var nameErr *domain.NameLengthError
		if errors.As(err, &nameErr) {
			out.Body.Status = "invalid_name"
			return out, nil
		}
		if err != nil {
			return nil, huma.Error500InternalServerError("internal server error")
		}

		out.Body.ID = server.ID
		out.Body.Name = server.Name
		out.Body.Status = string(server.Status)
		return out, nil
	})
}
