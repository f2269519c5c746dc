package handler

import (
	"context"
	"net/http"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/response"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
	"github.com/sandeepkv93/storefront-admin-api/internal/service"
)

type reader[V any] interface {
	Get(ctx context.Context, id uint) (*V, error)
}

type creator[T any] interface {
	Create(ctx context.Context, actor domain.Identity, payload service.Payload) (*T, error)
}

type updater[T any] interface {
	Update(ctx context.Context, actor domain.Identity, id uint, payload service.Payload) (*T, error)
}

type deleter interface {
	Delete(ctx context.Context, actor domain.Identity, id uint) error
}

// getByID serves GET /{id} for any resource.
func getByID[V any](svc reader[V]) Func {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, err := parsePathID(r, "id")
		if err != nil {
			return err
		}
		rec, err := svc.Get(r.Context(), id)
		if err != nil {
			return err
		}
		response.JSON(w, r, http.StatusOK, rec)
		return nil
	}
}

func createRecord[T any, P interface {
	*T
	domain.Record
}](resource string, svc creator[T]) Func {
	return func(w http.ResponseWriter, r *http.Request) error {
		identity, err := actor(r)
		if err != nil {
			return err
		}
		payload, err := decodePayload(r)
		if err != nil {
			return err
		}
		rec, err := svc.Create(r.Context(), identity, payload)
		if err != nil {
			audit(r, resource, "create", 0, err)
			return err
		}
		audit(r, resource, "create", P(rec).RecordID(), nil)
		response.JSON(w, r, http.StatusCreated, rec)
		return nil
	}
}

func updateRecord[T any](resource string, svc updater[T]) Func {
	return func(w http.ResponseWriter, r *http.Request) error {
		identity, err := actor(r)
		if err != nil {
			return err
		}
		id, err := parsePathID(r, "id")
		if err != nil {
			return err
		}
		payload, err := decodePayload(r)
		if err != nil {
			return err
		}
		rec, err := svc.Update(r.Context(), identity, id, payload)
		audit(r, resource, "update", id, err)
		if err != nil {
			return err
		}
		response.JSON(w, r, http.StatusOK, rec)
		return nil
	}
}

func deleteRecord(resource string, svc deleter) Func {
	return func(w http.ResponseWriter, r *http.Request) error {
		identity, err := actor(r)
		if err != nil {
			return err
		}
		id, err := parsePathID(r, "id")
		if err != nil {
			return err
		}
		err = svc.Delete(r.Context(), identity, id)
		audit(r, resource, "delete", id, err)
		if err != nil {
			return err
		}
		response.JSON(w, r, http.StatusOK, map[string]uint{"id": id})
		return nil
	}
}

func writePage[T any](w http.ResponseWriter, r *http.Request, page repository.Page[T]) {
	response.Paginated(w, r, page.Items, page.Total, page.Limit, page.Offset)
}
