package event

import (
	"net/http/httptest"
	"testing"

	"github.com/angelofallars/htmx-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListen(t *testing.T) {
	attrs := SetErrMessage.Listen("err = $event.detail.value")

	assert.Equal(t, "err = $event.detail.value", attrs["x-on:set-err-message.window"])
}

func TestTriggers(t *testing.T) {
	rec := httptest.NewRecorder()

	err := htmx.NewResponse().
		AddTrigger(TriggerSetErrMessage("boom"), TriggerSetInfoMessage("saved")).
		Write(rec)
	require.NoError(t, err)

	header := rec.Header().Get("HX-Trigger")
	assert.Contains(t, header, "set-err-message")
	assert.Contains(t, header, "boom")
	assert.Contains(t, header, "set-info-message")
	assert.Contains(t, header, "saved")
}
