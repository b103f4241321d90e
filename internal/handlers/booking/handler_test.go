package booking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMocks "rentdesk/infras/otel/mocks"
	"rentdesk/internal/domains/booking/model/dto"
	serviceMocks "rentdesk/internal/domains/booking/service/mocks"
	"rentdesk/internal/handlers/booking"
	"rentdesk/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const unitID = "0199e0a0-0000-7000-8000-000000000001"

func setup(t *testing.T) (*serviceMocks.MockBooking, chi.Router) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockService := serviceMocks.NewMockBooking(ctrl)

	handler := booking.New(mockService, otelMocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return mockService, router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder
}

func TestQuoteBooking(t *testing.T) {
	t.Run("returns the nightly breakdown", func(t *testing.T) {
		mockService, router := setup(t)

		mockService.EXPECT().
			Quote(gomock.Any(), dto.QuoteRequest{UnitID: unitID, CheckIn: "2025-10-02", CheckOut: "2025-10-04"}).
			Return(dto.QuoteResponse{UnitID: unitID, Total: 650, Currency: "SAR", Available: true}, nil)

		recorder := serve(router, http.MethodPost, "/bookings/quote",
			`{"unit_id":"`+unitID+`","check_in":"2025-10-02","check_out":"2025-10-04"}`)

		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Data dto.QuoteResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.InDelta(t, 650, body.Data.Total, 0.001)
		assert.True(t, body.Data.Available)
	})

	t.Run("rejects a malformed date before reaching the service", func(t *testing.T) {
		_, router := setup(t)

		recorder := serve(router, http.MethodPost, "/bookings/quote",
			`{"unit_id":"`+unitID+`","check_in":"02/10/2025","check_out":"2025-10-04"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestCreateBooking(t *testing.T) {
	payload := `{"client_name":"Sara","client_phone":"0500000000","unit_id":"` + unitID +
		`","check_in":"2025-10-02","check_out":"2025-10-05"}`

	t.Run("responds 201 with the stored booking", func(t *testing.T) {
		mockService, router := setup(t)

		mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{ID: "b-1"}, nil)

		recorder := serve(router, http.MethodPost, "/bookings", payload)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"b-1"`)
	})

	t.Run("maps an overlapping stay to 409", func(t *testing.T) {
		mockService, router := setup(t)

		mockService.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(dto.BookingResponse{}, failure.Conflict("unit is already booked for the selected dates"))

		recorder := serve(router, http.MethodPost, "/bookings", payload)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "already booked")
	})

	t.Run("rejects a body without the guest phone", func(t *testing.T) {
		_, router := setup(t)

		recorder := serve(router, http.MethodPost, "/bookings",
			`{"client_name":"Sara","unit_id":"`+unitID+`","check_in":"2025-10-02","check_out":"2025-10-05"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetBookings(t *testing.T) {
	t.Run("passes the parsed filter through", func(t *testing.T) {
		mockService, router := setup(t)

		mockService.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ any, filter dto.ListFilter) (dto.GetBookingsResponse, error) {
				assert.Equal(t, unitID, filter.UnitID)
				require.NotNil(t, filter.From)
				assert.Equal(t, "2025-10-01", filter.From.Format("2006-01-02"))

				return dto.GetBookingsResponse{}, nil
			})

		recorder := serve(router, http.MethodGet, "/bookings?unit_id="+unitID+"&from=2025-10-01", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("rejects an unparsable date", func(t *testing.T) {
		_, router := setup(t)

		recorder := serve(router, http.MethodGet, "/bookings?from=yesterday", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestCancelBooking(t *testing.T) {
	mockService, router := setup(t)

	mockService.EXPECT().Cancel(gomock.Any(), "b-1").Return(failure.NotFound("booking"))

	recorder := serve(router, http.MethodPost, "/bookings/b-1/cancel", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
