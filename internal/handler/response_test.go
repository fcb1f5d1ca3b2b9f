package handler

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Circutor/edgex/pkg/clients/logger"
	"github.com/stretchr/testify/assert"

	"github.com/circutor/device-sdk-go/internal/common"
)

func TestMain(m *testing.M) {
	common.LoggingClient = logger.NewClient("handler-test", false, "", "error")
	os.Exit(m.Run())
}

func TestWriteJSONSetsContentTypeAndStatus(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, 201, map[string]string{"name": "thermostat-1"})

	assert.Equal(t, 201, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "thermostat-1", body["name"])
}

func TestWriteJSONNilBodyWritesNoPayload(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, 204, nil)

	assert.Equal(t, 204, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestWriteAppErrorRendersCodeAndMessage(t *testing.T) {
	w := httptest.NewRecorder()
	appErr := common.NewNotFoundError("device thermostat-1 not found", nil)

	writeAppError(w, appErr)

	assert.Equal(t, 404, w.Code)
	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "device thermostat-1 not found", body["message"])
}
