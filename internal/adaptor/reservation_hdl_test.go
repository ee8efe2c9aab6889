package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"table-reservation/internal/dto/request"
	"table-reservation/internal/dto/response"
	"table-reservation/pkg/apperr"
	"table-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubReservationService struct {
	createFn   func(ctx context.Context, req *request.CreateReservationRequest) (*response.CreateReservationResponse, error)
	checkInFn  func(ctx context.Context, id string, req *request.CheckInRequest) (*response.CheckInResponse, error)
	checkOutFn func(ctx context.Context, id string, req *request.CheckOutRequest) (*response.CheckOutResponse, error)
	cancelFn   func(ctx context.Context, id string, req *request.CancelRequest) (*response.CancelResponse, error)
	activeFn   func(ctx context.Context, userID string) (*response.ReservationResponse, error)
	historyFn  func(ctx context.Context, userID string) ([]*response.ReservationResponse, error)
}

func (s *stubReservationService) Create(ctx context.Context, req *request.CreateReservationRequest) (*response.CreateReservationResponse, error) {
	return s.createFn(ctx, req)
}

func (s *stubReservationService) CheckIn(ctx context.Context, id string, req *request.CheckInRequest) (*response.CheckInResponse, error) {
	return s.checkInFn(ctx, id, req)
}

func (s *stubReservationService) CheckOut(ctx context.Context, id string, req *request.CheckOutRequest) (*response.CheckOutResponse, error) {
	return s.checkOutFn(ctx, id, req)
}

func (s *stubReservationService) Cancel(ctx context.Context, id string, req *request.CancelRequest) (*response.CancelResponse, error) {
	return s.cancelFn(ctx, id, req)
}

func (s *stubReservationService) GetActiveForUser(ctx context.Context, userID string) (*response.ReservationResponse, error) {
	return s.activeFn(ctx, userID)
}

func (s *stubReservationService) GetHistoryForUser(ctx context.Context, userID string) ([]*response.ReservationResponse, error) {
	return s.historyFn(ctx, userID)
}

func newReservationRouter(stub *stubReservationService) *chi.Mux {
	handler := NewReservationHandler(stub, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/reservation", handler.Create)
	r.Route("/api/reservation/{id}", func(r chi.Router) {
		r.Post("/checkin", handler.CheckIn)
		r.Post("/checkout", handler.CheckOut)
		r.Post("/cancel", handler.Cancel)
	})
	r.Get("/api/reservation/active/{user_id}", handler.GetActive)
	r.Get("/api/reservation/history/{user_id}", handler.GetHistory)
	return r
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body any) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()

	var reader bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reader).Encode(body))
	}
	req := httptest.NewRequest(method, path, &reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestCreateHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		stub := &stubReservationService{
			createFn: func(ctx context.Context, req *request.CreateReservationRequest) (*response.CreateReservationResponse, error) {
				assert.Equal(t, "u-100", req.UserID)
				assert.Equal(t, []int{5, 6}, req.TableIDs)
				return &response.CreateReservationResponse{ReservationID: "res-1", Status: "PENDING"}, nil
			},
		}
		router := newReservationRouter(stub)

		rec, envelope := doJSON(t, router, http.MethodPost, "/api/reservation", map[string]any{
			"user_id":     "u-100",
			"timeslot_id": 1,
			"party_size":  4,
			"table_ids":   []int{5, 6},
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, envelope.Status)
		assert.Equal(t, "Reservation created successfully", envelope.Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		router := newReservationRouter(&stubReservationService{})

		req := httptest.NewRequest(http.MethodPost, "/api/reservation", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("conflict propagates details", func(t *testing.T) {
		stub := &stubReservationService{
			createFn: func(ctx context.Context, req *request.CreateReservationRequest) (*response.CreateReservationResponse, error) {
				return nil, apperr.Conflict("you already have an active reservation").WithDetails(map[string]any{
					"existing_reservation_id": "res-9",
				})
			},
		}
		router := newReservationRouter(stub)

		rec, envelope := doJSON(t, router, http.MethodPost, "/api/reservation", map[string]any{"user_id": "u-100"})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.False(t, envelope.Status)
		assert.Equal(t, "you already have an active reservation", envelope.Message)

		details, ok := envelope.Errors.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "res-9", details["existing_reservation_id"])
	})

	t.Run("internal cause is masked", func(t *testing.T) {
		stub := &stubReservationService{
			createFn: func(ctx context.Context, req *request.CreateReservationRequest) (*response.CreateReservationResponse, error) {
				return nil, apperr.Internal("create reservation", assert.AnError)
			},
		}
		router := newReservationRouter(stub)

		rec, envelope := doJSON(t, router, http.MethodPost, "/api/reservation", map[string]any{"user_id": "u-100"})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", envelope.Message)
		assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	})
}

func TestLifecycleHandlers(t *testing.T) {
	t.Run("check-in accepts empty body", func(t *testing.T) {
		stub := &stubReservationService{
			checkInFn: func(ctx context.Context, id string, req *request.CheckInRequest) (*response.CheckInResponse, error) {
				assert.Equal(t, "res-1", id)
				assert.Empty(t, req.UserID)
				return &response.CheckInResponse{CheckinID: "ci-1", ReservationID: id, Status: "CHECKED_IN"}, nil
			},
		}
		router := newReservationRouter(stub)

		req := httptest.NewRequest(http.MethodPost, "/api/reservation/res-1/checkin", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("check-in forwards user id", func(t *testing.T) {
		stub := &stubReservationService{
			checkInFn: func(ctx context.Context, id string, req *request.CheckInRequest) (*response.CheckInResponse, error) {
				assert.Equal(t, "u-100", req.UserID)
				return &response.CheckInResponse{CheckinID: "ci-1", ReservationID: id, Status: "CHECKED_IN"}, nil
			},
		}
		router := newReservationRouter(stub)

		rec, _ := doJSON(t, router, http.MethodPost, "/api/reservation/res-1/checkin", map[string]any{"user_id": "u-100"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("forbidden maps to 403", func(t *testing.T) {
		stub := &stubReservationService{
			checkOutFn: func(ctx context.Context, id string, req *request.CheckOutRequest) (*response.CheckOutResponse, error) {
				return nil, apperr.Forbidden("reservation belongs to another user")
			},
		}
		router := newReservationRouter(stub)

		rec, envelope := doJSON(t, router, http.MethodPost, "/api/reservation/res-1/checkout", map[string]any{"user_id": "u-200"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "reservation belongs to another user", envelope.Message)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		stub := &stubReservationService{
			cancelFn: func(ctx context.Context, id string, req *request.CancelRequest) (*response.CancelResponse, error) {
				return nil, apperr.NotFoundWithID("reservation", id)
			},
		}
		router := newReservationRouter(stub)

		rec, _ := doJSON(t, router, http.MethodPost, "/api/reservation/res-404/cancel", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("cancel forwards explicit canceller", func(t *testing.T) {
		stub := &stubReservationService{
			cancelFn: func(ctx context.Context, id string, req *request.CancelRequest) (*response.CancelResponse, error) {
				require.NotNil(t, req.CancelledBy)
				assert.Equal(t, "staff-7", *req.CancelledBy)
				return &response.CancelResponse{ReservationID: id, Status: "CANCELLED"}, nil
			},
		}
		router := newReservationRouter(stub)

		rec, _ := doJSON(t, router, http.MethodPost, "/api/reservation/res-1/cancel", map[string]any{"cancelled_by": "staff-7"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestGetActiveHandler(t *testing.T) {
	t.Run("no active reservation is still 200", func(t *testing.T) {
		stub := &stubReservationService{
			activeFn: func(ctx context.Context, userID string) (*response.ReservationResponse, error) {
				return nil, nil
			},
		}
		router := newReservationRouter(stub)

		rec, envelope := doJSON(t, router, http.MethodGet, "/api/reservation/active/u-100", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, envelope.Status)
		assert.Equal(t, "No active reservation found for this user", envelope.Message)
		assert.Nil(t, envelope.Data)
	})

	t.Run("active reservation returned", func(t *testing.T) {
		stub := &stubReservationService{
			activeFn: func(ctx context.Context, userID string) (*response.ReservationResponse, error) {
				assert.Equal(t, "u-100", userID)
				return &response.ReservationResponse{ReservationID: "res-1", UserID: userID, Status: "PENDING"}, nil
			},
		}
		router := newReservationRouter(stub)

		rec, envelope := doJSON(t, router, http.MethodGet, "/api/reservation/active/u-100", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		data, ok := envelope.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "res-1", data["reservation_id"])
	})
}

func TestGetHistoryHandler(t *testing.T) {
	stub := &stubReservationService{
		historyFn: func(ctx context.Context, userID string) ([]*response.ReservationResponse, error) {
			return []*response.ReservationResponse{
				{ReservationID: "res-1", UserID: userID, Status: "CANCELLED"},
				{ReservationID: "res-2", UserID: userID, Status: "CHECKED_OUT"},
			}, nil
		},
	}
	router := newReservationRouter(stub)

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/reservation/history/u-100", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	items, ok := envelope.Data.([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestGetHistoryHandlerLimit(t *testing.T) {
	stub := &stubReservationService{
		historyFn: func(ctx context.Context, userID string) ([]*response.ReservationResponse, error) {
			return []*response.ReservationResponse{
				{ReservationID: "res-1", UserID: userID, Status: "CANCELLED"},
				{ReservationID: "res-2", UserID: userID, Status: "CHECKED_OUT"},
				{ReservationID: "res-3", UserID: userID, Status: "EXPIRED"},
			}, nil
		},
	}
	router := newReservationRouter(stub)

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/reservation/history/u-100?limit=2", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	items, ok := envelope.Data.([]any)
	require.True(t, ok)
	require.Len(t, items, 2)

	first, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "res-1", first["reservation_id"], "newest entries kept")
}
