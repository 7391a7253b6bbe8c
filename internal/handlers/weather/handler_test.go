package weather_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/weatherops/weather-automation-api/internal/handlers/weather"
	"github.com/weatherops/weather-automation-api/internal/models"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) GetByCity(ctx context.Context, city string) models.WeatherSnapshot {
	args := m.Called(ctx, city)
	snapshot, _ := args.Get(0).(models.WeatherSnapshot)
	return snapshot
}

func TestGetWeather_NoCity(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	m := &mockResolver{}

	t.Cleanup(func() {
		m.AssertNumberOfCalls(t, "GetByCity", 0)
	})

	req, err := http.NewRequest(http.MethodGet, "/weather", nil)
	require.NoError(t, err)
	c.Request = req

	weather.NewHandler(m).GetWeather(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"city query parameter is required"}`, rec.Body.String())
}

func TestGetWeather_Success(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	snapshot := models.WeatherSnapshot{
		City: "Kyiv", Temperature: 21, Condition: "Sunny",
		AirQuality: "Good", AirQualityIndex: 1,
	}

	m := &mockResolver{}
	m.On("GetByCity", mock.Anything, "Kyiv").Return(snapshot).Once()

	t.Cleanup(func() {
		m.AssertExpectations(t)
	})

	req, err := http.NewRequest(http.MethodGet, "/weather?city=Kyiv", nil)
	require.NoError(t, err)
	c.Request = req

	weather.NewHandler(m).GetWeather(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(
		`{"city":"%s","temperature":%d,"condition":"%s","air_quality":"%s","air_quality_index":%d}`,
		snapshot.City, snapshot.Temperature, snapshot.Condition,
		snapshot.AirQuality, snapshot.AirQualityIndex,
	), rec.Body.String())
}
